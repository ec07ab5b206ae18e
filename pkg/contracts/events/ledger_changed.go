package events

// LedgerChanged é publicado a cada escrita na caderneta de um perfil.
// O stats-refresh-worker usa o evento para reaquecer o resumo cacheado.
type LedgerChanged struct {
	ProfileID string `json:"profileId"`
	Kind      string `json:"kind"` // "bet" | "cashflow" | "bankroll" | "extras"
	Op        string `json:"op"`   // "saved" | "deleted"
	RecordID  string `json:"recordId,omitempty"`
}
