package ledger

import "time"

const (
	dateDisplayLayout = "02/01/2006"
	dateISOLayout     = "2006-01-02"
)

// ParseDate aceita os dois formatos que a caderneta já gravou: DD/MM/YYYY
// (exibição) e YYYY-MM-DD (input de formulário). Data ilegível retorna ok
// falso e o registro fica fora de qualquer cálculo ordenado ou por período.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(dateDisplayLayout, value, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(dateISOLayout, value, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatDateDisplay normaliza qualquer formato aceito para DD/MM/YYYY.
// Entrada irreconhecível vira string vazia.
func FormatDateDisplay(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return ""
	}
	return t.Format(dateDisplayLayout)
}

// StartOfDay trunca para a meia-noite local.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek retorna o domingo da semana de t (semana começa no domingo).
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// StartOfMonth retorna o primeiro dia do mês de t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfYear retorna o primeiro de janeiro do ano de t.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
