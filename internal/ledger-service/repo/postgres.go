package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/radieske/caderneta/pkg/ledger"
)

// Postgres implementa a persistência espelhada da caderneta de um perfil
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório da caderneta
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var ErrNotFound = errors.New("not found")

// ensureProfile garante a linha do perfil antes de qualquer escrita filha
func (p *Postgres) ensureProfile(ctx context.Context, profileID string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name) VALUES ($1, 'Perfil Principal')
		ON CONFLICT (id) DO NOTHING`, profileID)
	return err
}

// UpsertBet grava ou atualiza uma aposta já normalizada. ID vazio ganha um
// uuid novo; o ID efetivo é retornado para o cliente.
func (p *Postgres) UpsertBet(ctx context.Context, profileID string, b ledger.Bet) (string, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := p.ensureProfile(ctx, profileID); err != nil {
		return "", fmt.Errorf("ensure profile: %w", err)
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bets (id, profile_id, date, event, odds, stake, book, ai, status, is_freebet)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			event = EXCLUDED.event,
			odds = EXCLUDED.odds,
			stake = EXCLUDED.stake,
			book = EXCLUDED.book,
			ai = EXCLUDED.ai,
			status = EXCLUDED.status,
			is_freebet = EXCLUDED.is_freebet`,
		b.ID, profileID, b.Date, b.Event, b.Odds, b.Stake, b.Book,
		nullString(b.Source), string(b.Status), b.Freebet,
	)
	if err != nil {
		return "", err
	}
	return b.ID, nil
}

// ListBets carrega todas as apostas de um perfil, mais recentes primeiro.
func (p *Postgres) ListBets(ctx context.Context, profileID string) ([]ledger.Bet, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, date, event, odds, stake, book, COALESCE(ai, ''), status, is_freebet
		FROM bets WHERE profile_id = $1
		ORDER BY date DESC, id`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bets []ledger.Bet
	for rows.Next() {
		var b ledger.Bet
		var status string
		if err := rows.Scan(&b.ID, &b.Date, &b.Event, &b.Odds, &b.Stake, &b.Book, &b.Source, &status, &b.Freebet); err != nil {
			return nil, err
		}
		// registros antigos podem carregar rótulos legados de status
		b.Status = ledger.NormalizeStatus(status)
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

// DeleteBet remove uma aposta do perfil.
func (p *Postgres) DeleteBet(ctx context.Context, profileID, betID string) error {
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM bets WHERE id = $1 AND profile_id = $2`, betID, profileID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertCashMovement grava ou atualiza uma movimentação de caixa.
func (p *Postgres) UpsertCashMovement(ctx context.Context, profileID string, f ledger.CashMovement) (string, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if err := p.ensureProfile(ctx, profileID); err != nil {
		return "", fmt.Errorf("ensure profile: %w", err)
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO cash_flows (id, profile_id, date, type, amount, note)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			type = EXCLUDED.type,
			amount = EXCLUDED.amount,
			note = EXCLUDED.note`,
		f.ID, profileID, f.Date, string(f.Type), f.Amount, nullString(f.Note),
	)
	if err != nil {
		return "", err
	}
	return f.ID, nil
}

// ListCashMovements carrega as movimentações de um perfil.
func (p *Postgres) ListCashMovements(ctx context.Context, profileID string) ([]ledger.CashMovement, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, date, type, amount, COALESCE(note, '')
		FROM cash_flows WHERE profile_id = $1
		ORDER BY date DESC, id`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flows []ledger.CashMovement
	for rows.Next() {
		var f ledger.CashMovement
		var ftype string
		if err := rows.Scan(&f.ID, &f.Date, &ftype, &f.Amount, &f.Note); err != nil {
			return nil, err
		}
		f.Type = ledger.FlowType(ftype)
		flows = append(flows, f)
	}
	return flows, rows.Err()
}

// DeleteCashMovement remove uma movimentação do perfil.
func (p *Postgres) DeleteCashMovement(ctx context.Context, profileID, flowID string) error {
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM cash_flows WHERE id = $1 AND profile_id = $2`, flowID, profileID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetBankrollBase lê a base declarada da banca; nil quando nunca definida
// ou explicitamente limpa.
func (p *Postgres) GetBankrollBase(ctx context.Context, profileID string) (*float64, error) {
	var base sql.NullFloat64
	err := p.db.QueryRowContext(ctx,
		`SELECT bankroll FROM profile_extras WHERE profile_id = $1`, profileID).Scan(&base)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !base.Valid {
		return nil, nil
	}
	v := base.Float64
	return &v, nil
}

// SetBankrollBase persiste a base resolvida por RebaseFromDisplayedValue.
// nil limpa a base (coluna NULL).
func (p *Postgres) SetBankrollBase(ctx context.Context, profileID string, base *float64) error {
	if err := p.ensureProfile(ctx, profileID); err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}
	var v sql.NullFloat64
	if base != nil {
		v = sql.NullFloat64{Float64: *base, Valid: true}
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO profile_extras (profile_id, bankroll) VALUES ($1, $2)
		ON CONFLICT (profile_id) DO UPDATE SET bankroll = EXCLUDED.bankroll`,
		profileID, v)
	return err
}

// GetExtra lê um dos campos opacos do perfil (settings/goals/notes).
func (p *Postgres) GetExtra(ctx context.Context, profileID string, kind ExtraKind) (string, error) {
	var value sql.NullString
	query := fmt.Sprintf(`SELECT %s FROM profile_extras WHERE profile_id = $1`, kind.column())
	err := p.db.QueryRowContext(ctx, query, profileID).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value.String, nil
}

// SetExtra grava um dos campos opacos do perfil.
func (p *Postgres) SetExtra(ctx context.Context, profileID string, kind ExtraKind, value string) error {
	if err := p.ensureProfile(ctx, profileID); err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}
	query := fmt.Sprintf(`
		INSERT INTO profile_extras (profile_id, %[1]s) VALUES ($1, $2)
		ON CONFLICT (profile_id) DO UPDATE SET %[1]s = EXCLUDED.%[1]s`, kind.column())
	_, err := p.db.ExecContext(ctx, query, profileID, value)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
