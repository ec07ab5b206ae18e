package ledger

import (
	"sort"
	"time"
)

// Summary reúne os KPIs exibidos sobre um conjunto (já filtrado) de apostas.
type Summary struct {
	SettledCount int     `json:"settledCount"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	TotalStake   float64 `json:"totalStake"`
	TotalProfit  float64 `json:"totalProfit"`
	WinRate      float64 `json:"winrate"`
	ROI          float64 `json:"roi"`
	AverageOdds  float64 `json:"avgOdds"`
	AverageStake float64 `json:"avgStake"`
}

// settledWellFormed filtra as apostas liquidadas com campos numéricos válidos,
// a população de todos os agregados financeiros.
func settledWellFormed(bets []Bet) []Bet {
	out := make([]Bet, 0, len(bets))
	for _, b := range bets {
		if b.Status.Settled() && wellFormed(b) {
			out = append(out, b)
		}
	}
	return out
}

// WinRate é a fração de vitórias entre as liquidadas; 0 sem liquidadas.
func WinRate(bets []Bet) float64 {
	settled := settledWellFormed(bets)
	if len(settled) == 0 {
		return 0
	}
	wins := 0
	for _, b := range settled {
		if b.Status == StatusWin {
			wins++
		}
	}
	return float64(wins) / float64(len(settled))
}

// ROI é o lucro liquidado dividido pelo total apostado; 0 quando nada foi
// apostado. Nunca NaN.
func ROI(bets []Bet) float64 {
	settled := settledWellFormed(bets)
	totalStake := 0.0
	totalProfit := 0.0
	for _, b := range settled {
		totalStake += b.Stake
		totalProfit += Profit(b)
	}
	if totalStake <= 0 {
		return 0
	}
	return totalProfit / totalStake
}

// AverageOdds é a média aritmética das odds liquidadas; 0 sem liquidadas.
func AverageOdds(bets []Bet) float64 {
	settled := settledWellFormed(bets)
	if len(settled) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range settled {
		sum += b.Odds
	}
	return sum / float64(len(settled))
}

// AverageStake é o ticket médio das liquidadas; 0 sem liquidadas.
func AverageStake(bets []Bet) float64 {
	settled := settledWellFormed(bets)
	if len(settled) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range settled {
		sum += b.Stake
	}
	return sum / float64(len(settled))
}

// TotalStake soma o stake das liquidadas.
func TotalStake(bets []Bet) float64 {
	sum := 0.0
	for _, b := range settledWellFormed(bets) {
		sum += b.Stake
	}
	return sum
}

// Summarize calcula o painel de KPIs numa única passada sobre as liquidadas.
func Summarize(bets []Bet) Summary {
	settled := settledWellFormed(bets)
	s := Summary{SettledCount: len(settled)}
	for _, b := range settled {
		if b.Status == StatusWin {
			s.Wins++
		} else {
			s.Losses++
		}
		s.TotalStake += b.Stake
		s.TotalProfit += Profit(b)
		s.AverageOdds += b.Odds
	}
	if s.SettledCount > 0 {
		s.WinRate = float64(s.Wins) / float64(s.SettledCount)
		s.AverageOdds /= float64(s.SettledCount)
		s.AverageStake = s.TotalStake / float64(s.SettledCount)
	} else {
		s.AverageOdds = 0
	}
	if s.TotalStake > 0 {
		s.ROI = s.TotalProfit / s.TotalStake
	}
	return s
}

// Streak descreve a sequência corrente de resultados iguais.
// Type é nil quando não há apostas liquidadas.
type Streak struct {
	Type  *Status `json:"type"`
	Count int     `json:"count"`
}

// CurrentStreak ordena as liquidadas por data decrescente e conta quantas,
// a partir da mais recente, repetem o mesmo resultado. Datas ilegíveis vão
// para o fim da ordenação; empates de data preservam a ordem de entrada
// (ordenação estável), então o chamador controla o desempate pela ordem em
// que passa a lista.
func CurrentStreak(bets []Bet) Streak {
	settled := make([]Bet, 0, len(bets))
	for _, b := range bets {
		if b.Status.Settled() {
			settled = append(settled, b)
		}
	}
	sort.SliceStable(settled, func(i, j int) bool {
		di, oki := ParseDate(settled[i].Date)
		dj, okj := ParseDate(settled[j].Date)
		if oki && okj {
			return dj.Before(di)
		}
		return oki && !okj
	})
	if len(settled) == 0 {
		return Streak{}
	}
	first := settled[0].Status
	count := 0
	for _, b := range settled {
		if b.Status != first {
			break
		}
		count++
	}
	return Streak{Type: &first, Count: count}
}

// StakeSince soma o stake das apostas com data >= start, qualquer status.
// O recorte não tem limite superior: aposta com data futura entra em todo
// balde cujo início a precede, inclusive o de "hoje". Comportamento herdado
// da aplicação original, preservado deliberadamente; ver DESIGN.md.
func StakeSince(bets []Bet, start time.Time) float64 {
	total := 0.0
	for _, b := range bets {
		d, ok := ParseDate(b.Date)
		if !ok || d.Before(start) || !finite(b.Stake) {
			continue
		}
		total += b.Stake
	}
	return total
}

// ProfitByDay soma o lucro liquidado das apostas de um dia do calendário.
func ProfitByDay(bets []Bet, day time.Time) float64 {
	total := 0.0
	for _, b := range bets {
		if !b.Status.Settled() {
			continue
		}
		d, ok := ParseDate(b.Date)
		if !ok || !sameDay(d, day) {
			continue
		}
		total += Profit(b)
	}
	return total
}

// ProfitByMonth soma o lucro liquidado de um mês do calendário.
func ProfitByMonth(bets []Bet, year int, month time.Month) float64 {
	total := 0.0
	for _, b := range bets {
		if !b.Status.Settled() {
			continue
		}
		d, ok := ParseDate(b.Date)
		if !ok || d.Year() != year || d.Month() != month {
			continue
		}
		total += Profit(b)
	}
	return total
}

// ProfitByYear soma o lucro liquidado de um ano do calendário.
func ProfitByYear(bets []Bet, year int) float64 {
	total := 0.0
	for _, b := range bets {
		if !b.Status.Settled() {
			continue
		}
		d, ok := ParseDate(b.Date)
		if !ok || d.Year() != year {
			continue
		}
		total += Profit(b)
	}
	return total
}

// SettledCountByMonth conta as liquidadas de um mês, para o cartão do
// calendário anual.
func SettledCountByMonth(bets []Bet, year int, month time.Month) int {
	count := 0
	for _, b := range bets {
		if !b.Status.Settled() {
			continue
		}
		d, ok := ParseDate(b.Date)
		if ok && d.Year() == year && d.Month() == month {
			count++
		}
	}
	return count
}

// ProfitPoint é um ponto da curva de lucro acumulado.
type ProfitPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// ProfitSeries acumula o lucro aposta a aposta em ordem cronológica
// (datas ilegíveis por último, na ordem de entrada).
func ProfitSeries(bets []Bet) []ProfitPoint {
	ordered := make([]Bet, len(bets))
	copy(ordered, bets)
	sort.SliceStable(ordered, func(i, j int) bool {
		di, oki := ParseDate(ordered[i].Date)
		dj, okj := ParseDate(ordered[j].Date)
		if oki && okj {
			return di.Before(dj)
		}
		return oki && !okj
	})
	points := make([]ProfitPoint, 0, len(ordered))
	total := 0.0
	for _, b := range ordered {
		total += Profit(b)
		points = append(points, ProfitPoint{Date: b.Date, Total: total})
	}
	return points
}
