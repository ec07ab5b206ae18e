package ledger

import "time"

// PeriodStakes são os totais apostados nos períodos correntes do calendário.
type PeriodStakes struct {
	Today     float64 `json:"today"`
	ThisWeek  float64 `json:"thisWeek"`
	ThisMonth float64 `json:"thisMonth"`
	ThisYear  float64 `json:"thisYear"`
}

// Dashboard é o painel completo de um perfil: KPIs, sequência corrente,
// banca efetiva, exposição e baldes de período, tudo derivado do snapshot
// de registros recebido. Valores crus, sem formatação nem arredondamento.
type Dashboard struct {
	Summary           Summary       `json:"summary"`
	Streak            Streak        `json:"streak"`
	EffectiveBankroll *float64      `json:"effectiveBankroll"`
	Exposure          float64       `json:"exposure"`
	PendingStake      float64       `json:"pendingStake"`
	TotalDeposits     float64       `json:"totalDeposits"`
	TotalWithdraws    float64       `json:"totalWithdraws"`
	Stakes            PeriodStakes  `json:"stakes"`
	ProfitSeries      []ProfitPoint `json:"profitSeries"`
}

// BuildDashboard monta o painel a partir de um snapshot imutável dos
// registros e de um instante de referência para os baldes de período.
// A exposição usa a banca efetiva quando há base declarada; sem base, fica 0.
func BuildDashboard(bets []Bet, flows []CashMovement, base *float64, now time.Time) Dashboard {
	effective := EffectiveBankroll(base, bets, flows)
	exposure := 0.0
	if effective != nil {
		exposure = Exposure(bets, *effective)
	}
	return Dashboard{
		Summary:           Summarize(bets),
		Streak:            CurrentStreak(bets),
		EffectiveBankroll: effective,
		Exposure:          exposure,
		PendingStake:      PendingStake(bets),
		TotalDeposits:     TotalDeposits(flows),
		TotalWithdraws:    TotalWithdraws(flows),
		Stakes: PeriodStakes{
			Today:     StakeSince(bets, StartOfDay(now)),
			ThisWeek:  StakeSince(bets, StartOfWeek(now)),
			ThisMonth: StakeSince(bets, StartOfMonth(now)),
			ThisYear:  StakeSince(bets, StartOfYear(now)),
		},
		ProfitSeries: ProfitSeries(bets),
	}
}
