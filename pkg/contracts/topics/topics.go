package topics

// Tópicos Kafka compartilhados entre ledger-service e stats-refresh-worker
const (
	LedgerChanged    = "ledger_changed"
	LedgerChangedDLQ = "ledger_changed_dlq"
)
