package ledger

// CashFlowTotal soma depósitos e subtrai saques. Tipo desconhecido ou valor
// malformado não contribui.
func CashFlowTotal(flows []CashMovement) float64 {
	total := 0.0
	for _, f := range flows {
		if !finite(f.Amount) {
			continue
		}
		switch f.Type {
		case FlowDeposit:
			total += f.Amount
		case FlowWithdraw:
			total -= f.Amount
		}
	}
	return total
}

// TotalDeposits soma apenas os depósitos.
func TotalDeposits(flows []CashMovement) float64 {
	total := 0.0
	for _, f := range flows {
		if f.Type == FlowDeposit && finite(f.Amount) {
			total += f.Amount
		}
	}
	return total
}

// TotalWithdraws soma apenas os saques (valor positivo).
func TotalWithdraws(flows []CashMovement) float64 {
	total := 0.0
	for _, f := range flows {
		if f.Type == FlowWithdraw && finite(f.Amount) {
			total += f.Amount
		}
	}
	return total
}

// EffectiveBankroll é a banca exibida: base declarada + lucro liquidado +
// fluxo de caixa líquido. Sem base definida retorna nil; a banca efetiva é
// sempre recalculada, nunca armazenada pré-somada.
func EffectiveBankroll(base *float64, bets []Bet, flows []CashMovement) *float64 {
	if base == nil || !finite(*base) {
		return nil
	}
	v := *base + SettledProfit(bets) + CashFlowTotal(flows)
	return &v
}

// RebaseFromDisplayedValue resolve a nova base quando o usuário edita a banca
// exibida: base = digitado - lucro liquidado - fluxo líquido. Esse é o único
// caminho de mutação da base, para que EffectiveBankroll continue devolvendo
// exatamente o valor digitado. Entrada não-finita limpa a base (nil).
func RebaseFromDisplayedValue(entered float64, bets []Bet, flows []CashMovement) *float64 {
	if !finite(entered) {
		return nil
	}
	v := entered - SettledProfit(bets) - CashFlowTotal(flows)
	return &v
}

// PendingStake soma o stake das apostas pendentes, excluindo freebets: stake
// promocional não representa capital em risco.
func PendingStake(bets []Bet) float64 {
	total := 0.0
	for _, b := range bets {
		if b.Status == StatusPending && !b.Freebet && finite(b.Stake) {
			total += b.Stake
		}
	}
	return total
}

// Exposure é a fração da banca comprometida em apostas pendentes.
// Banca zero ou negativa retorna 0.
func Exposure(bets []Bet, bankroll float64) float64 {
	if !finite(bankroll) || bankroll <= 0 {
		return 0
	}
	return PendingStake(bets) / bankroll
}
