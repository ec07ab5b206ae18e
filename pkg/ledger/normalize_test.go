package ledger_test

import (
	"math"
	"testing"

	"github.com/radieske/caderneta/pkg/ledger"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want ledger.Status
	}{
		{"Pendente", ledger.StatusPending},
		{"Green", ledger.StatusWin},
		{"Green / Ganhou", ledger.StatusWin},
		{"Red", ledger.StatusLoss},
		{"Red / Perdeu", ledger.StatusLoss},
		{"Void", ledger.StatusVoid},
		{"Devolvida / Void", ledger.StatusVoid},
		{"Cashout", ledger.StatusCashout},
		{"win", ledger.StatusWin},                   // ja canonico passa direto
		{"meio green", ledger.Status("meio green")}, // desconhecido nao e rejeitado
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ledger.NormalizeStatus(tt.raw); got != tt.want {
				t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestUnknownStatusIsNotSettled(t *testing.T) {
	s := ledger.NormalizeStatus("quase ganhou")
	if s.Settled() {
		t.Fatal("status desconhecido nunca deve contar como liquidado")
	}
}

func TestParseLocaleNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1.234,56", 1234.56, true},
		{"2,5", 2.5, true},
		{"100", 100, true},
		{"3.14", 3.14, true}, // forma canonica com ponto decimal
		{"  42,0  ", 42, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12,3,4", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ledger.ParseLocaleNumber(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseLocaleNumber(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && !almostEqual(got, tt.want) {
				t.Errorf("ParseLocaleNumber(%q) = %f, want %f", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeBet(t *testing.T) {
	raw := map[string]any{
		"id":      "abc-123",
		"date":    "05/03/2025",
		"event":   "Flamengo x Palmeiras",
		"odds":    "2,10",
		"stake":   50.0,
		"book":    "BetMax",
		"ai":      "modelo-x",
		"status":  "Green / Ganhou",
		"freebet": true, // nome antigo do campo
	}

	b := ledger.NormalizeBet(raw)
	if b.ID != "abc-123" || b.Event != "Flamengo x Palmeiras" || b.Book != "BetMax" {
		t.Fatalf("campos texto errados: %+v", b)
	}
	if b.Status != ledger.StatusWin {
		t.Errorf("status = %q, want win", b.Status)
	}
	if !almostEqual(b.Odds, 2.10) || !almostEqual(b.Stake, 50) {
		t.Errorf("numericos errados: odds=%f stake=%f", b.Odds, b.Stake)
	}
	if !b.Freebet {
		t.Error("alias legado freebet deveria marcar Freebet")
	}
	if b.Source != "modelo-x" {
		t.Errorf("source = %q, want modelo-x", b.Source)
	}
}

func TestNormalizeBetMalformedNumbers(t *testing.T) {
	b := ledger.NormalizeBet(map[string]any{
		"id":     "x",
		"odds":   "sem odd",
		"status": "win",
	})
	if !math.IsNaN(b.Odds) {
		t.Errorf("odd ilegivel deveria virar NaN, veio %f", b.Odds)
	}
	if !math.IsNaN(b.Stake) {
		t.Errorf("stake ausente deveria virar NaN, veio %f", b.Stake)
	}
	// e o registro marcado nao contamina agregados
	if got := ledger.SettledProfit([]ledger.Bet{b}); got != 0 {
		t.Fatalf("registro malformado vazou para a soma: %f", got)
	}
}

func TestNormalizeCashMovement(t *testing.T) {
	f := ledger.NormalizeCashMovement(map[string]any{
		"id":     "m1",
		"date":   "2025-03-01",
		"type":   "deposit",
		"amount": "1.000,00",
		"note":   "aporte inicial",
	})
	if f.Type != ledger.FlowDeposit || !almostEqual(f.Amount, 1000) || f.Note != "aporte inicial" {
		t.Fatalf("movimentacao errada: %+v", f)
	}
}
