package ledger_test

import (
	"math"
	"testing"
	"time"

	"github.com/radieske/caderneta/pkg/ledger"
)

func TestSummarizeScenario(t *testing.T) {
	bets := []ledger.Bet{
		{Odds: 2.0, Stake: 100, Status: ledger.StatusWin},
		{Odds: 1.5, Stake: 50, Status: ledger.StatusLoss},
	}

	s := ledger.Summarize(bets)
	if s.SettledCount != 2 || s.Wins != 1 || s.Losses != 1 {
		t.Fatalf("contagem errada: %+v", s)
	}
	if !almostEqual(s.TotalProfit, 50) {
		t.Errorf("TotalProfit = %f, want 50", s.TotalProfit)
	}
	if !almostEqual(s.WinRate, 0.5) {
		t.Errorf("WinRate = %f, want 0.5", s.WinRate)
	}
	if !almostEqual(s.ROI, 50.0/150.0) {
		t.Errorf("ROI = %f, want %f", s.ROI, 50.0/150.0)
	}
	if !almostEqual(s.AverageOdds, 1.75) {
		t.Errorf("AverageOdds = %f, want 1.75", s.AverageOdds)
	}
	if !almostEqual(s.AverageStake, 75) {
		t.Errorf("AverageStake = %f, want 75", s.AverageStake)
	}
}

func TestRatiosNeutralOnEmptyInput(t *testing.T) {
	empty := []ledger.Bet{}
	onlyOpen := []ledger.Bet{{Odds: 2.0, Stake: 10, Status: ledger.StatusPending}}

	for name, bets := range map[string][]ledger.Bet{"vazio": empty, "so pendentes": onlyOpen} {
		t.Run(name, func(t *testing.T) {
			if got := ledger.WinRate(bets); got != 0 {
				t.Errorf("WinRate = %f, want 0", got)
			}
			if got := ledger.ROI(bets); got != 0 || math.IsNaN(got) {
				t.Errorf("ROI = %f, want 0", got)
			}
			if got := ledger.AverageOdds(bets); got != 0 {
				t.Errorf("AverageOdds = %f, want 0", got)
			}
			if got := ledger.AverageStake(bets); got != 0 {
				t.Errorf("AverageStake = %f, want 0", got)
			}
		})
	}
}

func TestMalformedRecordsExcludedFromAggregates(t *testing.T) {
	bets := []ledger.Bet{
		{Odds: 2.0, Stake: 100, Status: ledger.StatusWin},
		{Odds: math.NaN(), Stake: 100, Status: ledger.StatusLoss}, // malformada: fora de tudo
	}
	s := ledger.Summarize(bets)
	if s.SettledCount != 1 {
		t.Fatalf("SettledCount = %d, want 1 (malformada excluida, nao zerada)", s.SettledCount)
	}
	if !almostEqual(s.TotalProfit, 100) {
		t.Fatalf("TotalProfit = %f, want 100", s.TotalProfit)
	}
	if math.IsNaN(s.ROI) || math.IsNaN(s.WinRate) {
		t.Fatal("agregados nunca devem propagar NaN")
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name      string
		bets      []ledger.Bet
		wantType  ledger.Status
		wantCount int
	}{
		{
			"duas vitorias recentes",
			[]ledger.Bet{
				{Date: "01/03/2025", Status: ledger.StatusLoss, Odds: 2, Stake: 10},
				{Date: "02/03/2025", Status: ledger.StatusWin, Odds: 2, Stake: 10},
				{Date: "03/03/2025", Status: ledger.StatusWin, Odds: 2, Stake: 10},
			},
			ledger.StatusWin, 2,
		},
		{
			"sequencia de derrotas",
			[]ledger.Bet{
				{Date: "05/03/2025", Status: ledger.StatusLoss, Odds: 2, Stake: 10},
				{Date: "04/03/2025", Status: ledger.StatusLoss, Odds: 2, Stake: 10},
				{Date: "01/03/2025", Status: ledger.StatusWin, Odds: 2, Stake: 10},
			},
			ledger.StatusLoss, 2,
		},
		{
			"pendentes nao interrompem",
			[]ledger.Bet{
				{Date: "03/03/2025", Status: ledger.StatusPending, Odds: 2, Stake: 10},
				{Date: "02/03/2025", Status: ledger.StatusWin, Odds: 2, Stake: 10},
				{Date: "01/03/2025", Status: ledger.StatusWin, Odds: 2, Stake: 10},
			},
			ledger.StatusWin, 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.CurrentStreak(tt.bets)
			if got.Type == nil || *got.Type != tt.wantType || got.Count != tt.wantCount {
				t.Errorf("CurrentStreak = %+v, want {%s %d}", got, tt.wantType, tt.wantCount)
			}
		})
	}
}

func TestCurrentStreakEmpty(t *testing.T) {
	got := ledger.CurrentStreak([]ledger.Bet{{Status: ledger.StatusPending}})
	if got.Type != nil || got.Count != 0 {
		t.Fatalf("sem liquidadas deveria ser {nil 0}, veio %+v", got)
	}
}

// Empates de data (iguais ou ambas ilegiveis) preservam a ordem de entrada:
// a primeira aposta passada e tratada como a mais recente do empate.
func TestCurrentStreakTieBreakIsInputOrder(t *testing.T) {
	sameDay := []ledger.Bet{
		{Date: "02/03/2025", Status: ledger.StatusLoss, Odds: 2, Stake: 10},
		{Date: "02/03/2025", Status: ledger.StatusWin, Odds: 2, Stake: 10},
	}
	got := ledger.CurrentStreak(sameDay)
	if got.Type == nil || *got.Type != ledger.StatusLoss || got.Count != 1 {
		t.Fatalf("empate deveria manter a primeira da entrada na frente, veio %+v", got)
	}

	// datas ilegiveis vao para o fim, nao para a frente
	mixed := []ledger.Bet{
		{Date: "sem data", Status: ledger.StatusLoss, Odds: 2, Stake: 10},
		{Date: "01/03/2025", Status: ledger.StatusWin, Odds: 2, Stake: 10},
	}
	got = ledger.CurrentStreak(mixed)
	if got.Type == nil || *got.Type != ledger.StatusWin || got.Count != 1 {
		t.Fatalf("data ilegivel deveria ordenar por ultimo, veio %+v", got)
	}
}

func TestStakeSince(t *testing.T) {
	now := time.Date(2025, time.March, 12, 15, 30, 0, 0, time.Local) // quarta-feira
	bets := []ledger.Bet{
		{Date: "12/03/2025", Stake: 100, Odds: 2, Status: ledger.StatusPending},
		{Date: "10/03/2025", Stake: 50, Odds: 2, Status: ledger.StatusWin},
		{Date: "01/03/2025", Stake: 30, Odds: 2, Status: ledger.StatusLoss},
		{Date: "20/12/2024", Stake: 500, Odds: 2, Status: ledger.StatusLoss},
		{Date: "rabisco", Stake: 999, Odds: 2, Status: ledger.StatusWin},
	}

	if got := ledger.StakeSince(bets, ledger.StartOfDay(now)); !almostEqual(got, 100) {
		t.Errorf("stake de hoje = %f, want 100", got)
	}
	// semana comeca no domingo 09/03
	if got := ledger.StakeSince(bets, ledger.StartOfWeek(now)); !almostEqual(got, 150) {
		t.Errorf("stake da semana = %f, want 150", got)
	}
	if got := ledger.StakeSince(bets, ledger.StartOfMonth(now)); !almostEqual(got, 180) {
		t.Errorf("stake do mes = %f, want 180", got)
	}
	if got := ledger.StakeSince(bets, ledger.StartOfYear(now)); !almostEqual(got, 180) {
		t.Errorf("stake do ano = %f, want 180", got)
	}
}

// O recorte por periodo nao tem limite superior: uma aposta com data futura
// conta em qualquer balde ja iniciado, inclusive o de hoje. Comportamento
// herdado, fixado aqui de proposito.
func TestStakeSinceCountsFutureDates(t *testing.T) {
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.Local)
	bets := []ledger.Bet{
		{Date: "25/12/2025", Stake: 40, Odds: 2, Status: ledger.StatusPending},
	}
	if got := ledger.StakeSince(bets, ledger.StartOfDay(now)); !almostEqual(got, 40) {
		t.Fatalf("aposta futura deveria contar no balde de hoje, veio %f", got)
	}
}

func TestProfitBuckets(t *testing.T) {
	bets := []ledger.Bet{
		{Date: "05/03/2025", Odds: 2.0, Stake: 100, Status: ledger.StatusWin},   // +100
		{Date: "05/03/2025", Odds: 1.5, Stake: 40, Status: ledger.StatusLoss},   // -40
		{Date: "20/03/2025", Odds: 3.0, Stake: 10, Status: ledger.StatusWin},    // +20
		{Date: "10/04/2025", Odds: 2.0, Stake: 30, Status: ledger.StatusLoss},   // -30
		{Date: "01/01/2024", Odds: 2.0, Stake: 500, Status: ledger.StatusWin},   // outro ano
		{Date: "06/03/2025", Odds: 2.0, Stake: 5, Status: ledger.StatusPending}, // nao liquidada
	}

	day := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.Local)
	if got := ledger.ProfitByDay(bets, day); !almostEqual(got, 60) {
		t.Errorf("ProfitByDay = %f, want 60", got)
	}
	if got := ledger.ProfitByMonth(bets, 2025, time.March); !almostEqual(got, 80) {
		t.Errorf("ProfitByMonth = %f, want 80", got)
	}
	if got := ledger.ProfitByYear(bets, 2025); !almostEqual(got, 50) {
		t.Errorf("ProfitByYear = %f, want 50", got)
	}
	if got := ledger.SettledCountByMonth(bets, 2025, time.March); got != 3 {
		t.Errorf("SettledCountByMonth = %d, want 3", got)
	}
}

func TestProfitSeries(t *testing.T) {
	bets := []ledger.Bet{
		{Date: "03/03/2025", Odds: 2.0, Stake: 50, Status: ledger.StatusLoss}, // -50
		{Date: "01/03/2025", Odds: 2.0, Stake: 100, Status: ledger.StatusWin}, // +100
	}
	points := ledger.ProfitSeries(bets)
	if len(points) != 2 {
		t.Fatalf("len = %d, want 2", len(points))
	}
	if points[0].Date != "01/03/2025" || !almostEqual(points[0].Total, 100) {
		t.Errorf("ponto 0 = %+v", points[0])
	}
	if points[1].Date != "03/03/2025" || !almostEqual(points[1].Total, 50) {
		t.Errorf("ponto 1 = %+v", points[1])
	}
}

func TestWeekStartsOnSunday(t *testing.T) {
	wednesday := time.Date(2025, time.March, 12, 23, 59, 0, 0, time.Local)
	start := ledger.StartOfWeek(wednesday)
	if start.Weekday() != time.Sunday {
		t.Fatalf("semana deveria comecar no domingo, veio %s", start.Weekday())
	}
	if start.Day() != 9 || start.Month() != time.March {
		t.Fatalf("StartOfWeek = %s, want 09/03", start.Format("02/01/2006"))
	}

	sunday := time.Date(2025, time.March, 9, 8, 0, 0, 0, time.Local)
	if got := ledger.StartOfWeek(sunday); got.Day() != 9 {
		t.Fatalf("domingo deveria ser o proprio inicio, veio %s", got.Format("02/01/2006"))
	}
}
