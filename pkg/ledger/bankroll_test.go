package ledger_test

import (
	"math"
	"testing"

	"github.com/radieske/caderneta/pkg/ledger"
)

func TestCashFlowTotal(t *testing.T) {
	flows := []ledger.CashMovement{
		{Type: ledger.FlowDeposit, Amount: 200},
		{Type: ledger.FlowWithdraw, Amount: 50},
		{Type: ledger.FlowDeposit, Amount: 30},
		{Type: "bonus", Amount: 999},                   // tipo desconhecido nao soma
		{Type: ledger.FlowDeposit, Amount: math.NaN()}, // malformado nao soma
	}
	if got := ledger.CashFlowTotal(flows); !almostEqual(got, 180) {
		t.Fatalf("CashFlowTotal = %f, want 180", got)
	}
	if got := ledger.TotalDeposits(flows); !almostEqual(got, 230) {
		t.Fatalf("TotalDeposits = %f, want 230", got)
	}
	if got := ledger.TotalWithdraws(flows); !almostEqual(got, 50) {
		t.Fatalf("TotalWithdraws = %f, want 50", got)
	}
}

func TestEffectiveBankroll(t *testing.T) {
	bets := []ledger.Bet{{Odds: 1.5, Stake: 100, Status: ledger.StatusWin}} // lucro +50
	flows := []ledger.CashMovement{{Type: ledger.FlowDeposit, Amount: 200}}

	base := 1000.0
	got := ledger.EffectiveBankroll(&base, bets, flows)
	if got == nil || !almostEqual(*got, 1250) {
		t.Fatalf("EffectiveBankroll = %v, want 1250", got)
	}

	if got := ledger.EffectiveBankroll(nil, bets, flows); got != nil {
		t.Fatalf("sem base deveria retornar nil, veio %v", *got)
	}

	nan := math.NaN()
	if got := ledger.EffectiveBankroll(&nan, bets, flows); got != nil {
		t.Fatalf("base NaN deveria retornar nil, veio %v", *got)
	}
}

func TestRebaseRoundTrip(t *testing.T) {
	bets := []ledger.Bet{
		{Odds: 2.0, Stake: 100, Status: ledger.StatusWin},
		{Odds: 1.8, Stake: 70, Status: ledger.StatusLoss},
		{Odds: 3.0, Stake: 40, Status: ledger.StatusPending},
	}
	flows := []ledger.CashMovement{
		{Type: ledger.FlowDeposit, Amount: 500},
		{Type: ledger.FlowWithdraw, Amount: 120},
	}

	for _, entered := range []float64{0, 123.45, -80, 10000} {
		base := ledger.RebaseFromDisplayedValue(entered, bets, flows)
		if base == nil {
			t.Fatalf("rebase(%f) retornou nil", entered)
		}
		effective := ledger.EffectiveBankroll(base, bets, flows)
		if effective == nil || !almostEqual(*effective, entered) {
			t.Errorf("round-trip rebase(%f) -> effective %v", entered, effective)
		}
	}

	if got := ledger.RebaseFromDisplayedValue(math.NaN(), bets, flows); got != nil {
		t.Fatalf("rebase com valor ilegivel deveria limpar a base")
	}
}

func TestExposure(t *testing.T) {
	bets := []ledger.Bet{
		{Odds: 2.0, Stake: 150, Status: ledger.StatusPending},
		{Odds: 3.0, Stake: 100, Status: ledger.StatusPending, Freebet: true}, // fora do numerador
		{Odds: 2.0, Stake: 500, Status: ledger.StatusWin},                    // liquidada nao expoe
	}

	if got := ledger.PendingStake(bets); !almostEqual(got, 150) {
		t.Fatalf("PendingStake = %f, want 150", got)
	}
	if got := ledger.Exposure(bets, 1000); !almostEqual(got, 0.15) {
		t.Fatalf("Exposure = %f, want 0.15", got)
	}
	if got := ledger.Exposure(bets, 0); got != 0 {
		t.Fatalf("Exposure com banca zero = %f, want 0", got)
	}
	if got := ledger.Exposure(bets, -50); got != 0 {
		t.Fatalf("Exposure com banca negativa = %f, want 0", got)
	}
}
