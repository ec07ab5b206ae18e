// Package ledger é o núcleo de cálculo da caderneta de apostas: funções puras
// que transformam registros de apostas e movimentações de caixa nos números
// exibidos pela aplicação (lucro, ROI, banca efetiva, sequências, rankings).
// Nenhuma função aqui faz I/O, guarda estado ou arredonda valores; formatação
// e persistência são responsabilidade de quem consome o pacote.
package ledger

// Status é o estado de liquidação de uma aposta.
type Status string

const (
	StatusPending Status = "pending"
	StatusWin     Status = "win"
	StatusLoss    Status = "loss"
	StatusVoid    Status = "void"
	StatusCashout Status = "cashout"
)

// Settled indica se a aposta tem resultado realizado (win ou loss).
// Qualquer outro valor, inclusive status desconhecido, conta como não liquidada.
func (s Status) Settled() bool { return s == StatusWin || s == StatusLoss }

// Known informa se o status é um dos cinco valores canônicos.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusWin, StatusLoss, StatusVoid, StatusCashout:
		return true
	}
	return false
}

// Bet é uma aposta registrada na caderneta.
//
// Odds e Stake podem carregar NaN quando o valor original era ilegível; todo
// cálculo do pacote trata registro não-finito como malformado e o exclui das
// somas, nunca como zero.
type Bet struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"` // DD/MM/YYYY
	Event   string  `json:"event"`
	Odds    float64 `json:"odds"`
	Stake   float64 `json:"stake"`
	Book    string  `json:"book"`
	Source  string  `json:"ai,omitempty"` // modelo/consultoria que sugeriu a aposta
	Status  Status  `json:"status"`
	Freebet bool    `json:"isFreebet"`
}

// FlowType é o sentido de uma movimentação de caixa.
type FlowType string

const (
	FlowDeposit  FlowType = "deposit"
	FlowWithdraw FlowType = "withdraw"
)

// CashMovement é uma entrada ou saída de capital independente das apostas.
// Amount é sempre não-negativo; o sinal vem do Type.
type CashMovement struct {
	ID     string   `json:"id"`
	Date   string   `json:"date"`
	Type   FlowType `json:"type"`
	Amount float64  `json:"amount"`
	Note   string   `json:"note,omitempty"`
}
