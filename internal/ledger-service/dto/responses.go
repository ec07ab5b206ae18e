package dto

import "github.com/radieske/caderneta/pkg/ledger"

type SaveResponse struct {
	ID string `json:"id"`
}

// SummaryResponse é o painel completo do perfil, calculado pelo pkg/ledger
// sobre o snapshot de registros do momento da chamada. O stats-refresh-worker
// grava exatamente a mesma forma no cache.
type SummaryResponse = ledger.Dashboard

// RankingsResponse é a página de ranking: recordes, tops e estatísticas
// por casa, por fonte e por dia da semana.
type RankingsResponse struct {
	Overall   ledger.OverallStats     `json:"overall"`
	ByBook    []ledger.DimensionStats `json:"byBook"`
	BySource  []ledger.DimensionStats `json:"bySource"`
	ByWeekday []ledger.DimensionStats `json:"byWeekday"`
	BestBook  *ledger.DimensionStats  `json:"bestBook"`
	WorstBook *ledger.DimensionStats  `json:"worstBook"`
	TopWins   []ledger.RankedBet      `json:"topWins"`
	TopLosses []ledger.RankedBet      `json:"topLosses"`
	Extremes  ledger.ExtremeSet       `json:"extremes"`
}

type BankrollResponse struct {
	Base      *float64 `json:"base"`
	Effective *float64 `json:"effective"`
}

type ExtraResponse struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}
