package ledger

import "math"

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// wellFormed exclui registros com odd ou stake malformada dos agregados.
func wellFormed(b Bet) bool { return finite(b.Odds) && finite(b.Stake) }

// Profit calcula o lucro realizado de uma única aposta.
//
//	win:  stake * (odds - 1)
//	loss: 0 se freebet (o stake não era dinheiro do usuário), senão -stake
//	pending/void/cashout/desconhecido: 0
//
// Sem arredondamento: isso é responsabilidade da camada de exibição.
func Profit(b Bet) float64 {
	switch b.Status {
	case StatusWin:
		if !wellFormed(b) {
			return 0
		}
		return b.Stake * (b.Odds - 1)
	case StatusLoss:
		if b.Freebet || !finite(b.Stake) {
			return 0
		}
		return -b.Stake
	}
	return 0
}

// PotentialProfit é o retorno líquido caso a aposta ainda aberta seja
// vencedora. Entrada não-finita retorna 0.
func PotentialProfit(stake, odds float64) float64 {
	if !finite(stake) || !finite(odds) {
		return 0
	}
	return stake * (odds - 1)
}

// SettledProfit soma o lucro das apostas liquidadas (win/loss). Apostas
// pendentes, devolvidas ou com cashout não contribuem, então acrescentar uma
// pendente à lista nunca altera o total.
func SettledProfit(bets []Bet) float64 {
	total := 0.0
	for _, b := range bets {
		if b.Status.Settled() {
			total += Profit(b)
		}
	}
	return total
}
