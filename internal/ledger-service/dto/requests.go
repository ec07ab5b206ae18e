package dto

// SaveBetRequest carrega um registro bruto de aposta, do jeito que o cliente
// (ou uma exportação antiga) o tem. A normalização para a forma canônica
// acontece no handler.
type SaveBetRequest struct {
	Bet map[string]any `json:"bet"`
}

// SaveCashMovementRequest carrega um registro bruto de movimentação.
type SaveCashMovementRequest struct {
	Movement map[string]any `json:"movement"`
}

// SetBankrollRequest é o valor da banca como o usuário digitou no campo
// (formato pt-BR aceito). Valor ilegível limpa a base declarada.
type SetBankrollRequest struct {
	Value string `json:"value"`
}

// SetExtraRequest é o payload opaco de settings/goals/notes.
type SetExtraRequest struct {
	Value string `json:"value"`
}

// SlipImportRequest leva a imagem do bilhete (base64) para o leitor externo.
type SlipImportRequest struct {
	ImageBase64 string `json:"imageBase64"`
}
