package ledger

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// legacyStatus mapeia os rótulos antigos (localizados) para o enum canônico.
// Versões anteriores da caderneta gravavam o texto exibido na tela.
var legacyStatus = map[string]Status{
	"Pendente":         StatusPending,
	"Green":            StatusWin,
	"Green / Ganhou":   StatusWin,
	"Red":              StatusLoss,
	"Red / Perdeu":     StatusLoss,
	"Void":             StatusVoid,
	"Devolvida / Void": StatusVoid,
	"Cashout":          StatusCashout,
}

// NormalizeStatus traduz rótulos legados para o enum canônico.
// Valores desconhecidos passam inalterados; quem consome deve tratá-los como
// não liquidados, nunca rejeitá-los.
func NormalizeStatus(raw string) Status {
	if s, ok := legacyStatus[raw]; ok {
		return s
	}
	return Status(raw)
}

// ParseLocaleNumber interpreta números na convenção pt-BR ("1.234,56").
// Também aceita a forma já canônica com ponto decimal.
func ParseLocaleNumber(value string) (float64, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, false
	}
	if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// coerceNumber aceita número ou string localizada; ilegível vira NaN, o
// marcador de campo malformado que os cálculos excluem das somas.
func coerceNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case string:
		if f, ok := ParseLocaleNumber(n); ok {
			return f
		}
	}
	return math.NaN()
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case int:
		return b != 0
	case string:
		return b == "1" || strings.EqualFold(b, "true")
	}
	return false
}

func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

// NormalizeBet converte um registro bruto (mapa chave/valor vindo do storage
// ou de exportação antiga) em uma Bet canônica. Transformação pura: o chamador
// decide se persiste a forma normalizada.
func NormalizeBet(raw map[string]any) Bet {
	b := Bet{
		ID:     stringField(raw, "id"),
		Date:   stringField(raw, "date"),
		Event:  stringField(raw, "event"),
		Book:   stringField(raw, "book"),
		Source: stringField(raw, "ai"),
		Status: NormalizeStatus(stringField(raw, "status")),
		Odds:   coerceNumber(raw["odds"]),
		Stake:  coerceNumber(raw["stake"]),
	}
	if b.Source == "" {
		b.Source = stringField(raw, "source")
	}
	// "freebet" é o nome antigo do campo isFreebet
	b.Freebet = coerceBool(raw["isFreebet"]) || coerceBool(raw["freebet"])
	return b
}

// NormalizeCashMovement converte um registro bruto de fluxo de caixa.
func NormalizeCashMovement(raw map[string]any) CashMovement {
	return CashMovement{
		ID:     stringField(raw, "id"),
		Date:   stringField(raw, "date"),
		Type:   FlowType(stringField(raw, "type")),
		Amount: coerceNumber(raw["amount"]),
		Note:   stringField(raw, "note"),
	}
}

// NormalizeBets aplica NormalizeBet a uma sequência de registros brutos.
func NormalizeBets(raws []map[string]any) []Bet {
	bets := make([]Bet, 0, len(raws))
	for _, raw := range raws {
		bets = append(bets, NormalizeBet(raw))
	}
	return bets
}

// NormalizeCashMovements aplica NormalizeCashMovement a uma sequência.
func NormalizeCashMovements(raws []map[string]any) []CashMovement {
	flows := make([]CashMovement, 0, len(raws))
	for _, raw := range raws {
		flows = append(flows, NormalizeCashMovement(raw))
	}
	return flows
}
