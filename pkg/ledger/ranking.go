package ledger

import (
	"math"
	"sort"
	"strconv"
)

// DimensionStats agrega os resultados de um grupo de apostas liquidadas
// (uma casa, uma fonte, um dia da semana).
type DimensionStats struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"winrate"`
	Profit  float64 `json:"profit"`
	ROI     float64 `json:"roi"`
}

// KeyFunc extrai a dimensão de agrupamento de uma aposta.
type KeyFunc func(Bet) string

// ByBook agrupa pela casa de apostas.
func ByBook(b Bet) string { return b.Book }

// BySource agrupa pela fonte/modelo que sugeriu a aposta.
func BySource(b Bet) string { return b.Source }

// ByWeekday agrupa pelo dia da semana da aposta (0=domingo ... 6=sábado).
// Data ilegível cai no grupo de chave vazia.
func ByWeekday(b Bet) string {
	d, ok := ParseDate(b.Date)
	if !ok {
		return ""
	}
	return strconv.Itoa(int(d.Weekday()))
}

// StatsByDimension agrupa as apostas liquidadas pela chave extraída e calcula
// as estatísticas de cada grupo. Chave ausente forma grupo próprio (chave
// vazia), não é descartada. A ordem dos grupos segue a primeira ocorrência
// na lista de entrada.
func StatsByDimension(bets []Bet, key KeyFunc) []DimensionStats {
	var order []string
	groups := map[string]*DimensionStats{}
	stakes := map[string]float64{}

	for _, b := range settledWellFormed(bets) {
		k := key(b)
		g, ok := groups[k]
		if !ok {
			g = &DimensionStats{Key: k}
			groups[k] = g
			order = append(order, k)
		}
		g.Count++
		if b.Status == StatusWin {
			g.Wins++
		} else {
			g.Losses++
		}
		g.Profit += Profit(b)
		stakes[k] += b.Stake
	}

	out := make([]DimensionStats, 0, len(order))
	for _, k := range order {
		g := groups[k]
		g.WinRate = float64(g.Wins) / float64(g.Count)
		if stakes[k] > 0 {
			g.ROI = g.Profit / stakes[k]
		}
		out = append(out, *g)
	}
	return out
}

// BestAndWorstByProfit escolhe os grupos de maior e menor lucro total entre
// os que têm pelo menos uma aposta. Empate fica com o primeiro encontrado.
// Retorna nil, nil para entrada vazia.
func BestAndWorstByProfit(groups []DimensionStats) (best, worst *DimensionStats) {
	for i := range groups {
		g := &groups[i]
		if g.Count == 0 {
			continue
		}
		if best == nil || g.Profit > best.Profit {
			best = g
		}
		if worst == nil || g.Profit < worst.Profit {
			worst = g
		}
	}
	return best, worst
}

// RankedBet é uma aposta anotada com o lucro calculado, pronta para exibição.
type RankedBet struct {
	Bet
	RealizedProfit float64 `json:"profit"`
}

// TopWins são as n maiores vitórias por lucro decrescente.
func TopWins(bets []Bet, n int) []RankedBet {
	wins := make([]RankedBet, 0)
	for _, b := range bets {
		if b.Status == StatusWin && wellFormed(b) {
			wins = append(wins, RankedBet{Bet: b, RealizedProfit: Profit(b)})
		}
	}
	sort.SliceStable(wins, func(i, j int) bool {
		return wins[i].RealizedProfit > wins[j].RealizedProfit
	})
	if len(wins) > n {
		wins = wins[:n]
	}
	return wins
}

// TopLosses são as n maiores perdas, da mais negativa para a menos negativa.
// Perda de freebet tem lucro 0 e naturalmente fica no fim da fila.
func TopLosses(bets []Bet, n int) []RankedBet {
	losses := make([]RankedBet, 0)
	for _, b := range bets {
		if b.Status == StatusLoss && wellFormed(b) {
			losses = append(losses, RankedBet{Bet: b, RealizedProfit: Profit(b)})
		}
	}
	sort.SliceStable(losses, func(i, j int) bool {
		return losses[i].RealizedProfit < losses[j].RealizedProfit
	})
	if len(losses) > n {
		losses = losses[:n]
	}
	return losses
}

// ExtremeSet são os recordes individuais da caderneta. Cada campo é nil
// quando nenhuma aposta qualifica.
type ExtremeSet struct {
	MaxWin             *RankedBet `json:"maxWin"`
	MaxLoss            *RankedBet `json:"maxLoss"`
	HighestWinningOdds *Bet       `json:"highestWinningOdds"`
	LowestLosingOdds   *Bet       `json:"lowestLosingOdds"`
}

// Extremes varre a lista inteira e extrai maior vitória, maior perda, maior
// odd acertada e menor odd perdida, cada uma com a aposta de origem.
// Vitórias e perdas de valor zero (odd 1.0, perda de freebet) não contam
// como recorde: a caderneta só registra extremos com dinheiro envolvido.
func Extremes(bets []Bet) ExtremeSet {
	var ex ExtremeSet
	maxWinProfit := 0.0
	maxLossAbs := 0.0
	maxOddWin := 0.0
	minOddLoss := math.Inf(1)

	for i := range bets {
		b := bets[i]
		if !wellFormed(b) {
			continue
		}
		switch b.Status {
		case StatusWin:
			p := Profit(b)
			if p > maxWinProfit {
				maxWinProfit = p
				ex.MaxWin = &RankedBet{Bet: b, RealizedProfit: p}
			}
			if b.Odds > maxOddWin {
				maxOddWin = b.Odds
				win := b
				ex.HighestWinningOdds = &win
			}
		case StatusLoss:
			loss := math.Abs(Profit(b))
			if loss > maxLossAbs {
				maxLossAbs = loss
				ex.MaxLoss = &RankedBet{Bet: b, RealizedProfit: Profit(b)}
			}
			if b.Odds < minOddLoss {
				minOddLoss = b.Odds
				lost := b
				ex.LowestLosingOdds = &lost
			}
		}
	}
	return ex
}

// OverallStats é o painel geral da página de ranking.
type OverallStats struct {
	TotalBets    int     `json:"totalBets"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Pending      int     `json:"pending"`
	TotalProfit  float64 `json:"totalProfit"`
	WinRate      float64 `json:"winrate"`
	AverageOdds  float64 `json:"avgOdds"`
	AverageStake float64 `json:"avgStake"`
}

// Overall conta todos os registros por status (inclusive malformados: a
// contagem é só de status) e calcula os agregados financeiros sobre as
// liquidadas bem formadas.
func Overall(bets []Bet) OverallStats {
	st := OverallStats{TotalBets: len(bets)}
	for _, b := range bets {
		switch b.Status {
		case StatusWin:
			st.Wins++
		case StatusLoss:
			st.Losses++
		case StatusPending:
			st.Pending++
		}
	}
	s := Summarize(bets)
	st.TotalProfit = s.TotalProfit
	st.WinRate = s.WinRate
	st.AverageOdds = s.AverageOdds
	st.AverageStake = s.AverageStake
	return st
}
