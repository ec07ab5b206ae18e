package repo

import (
	"context"
	"database/sql"

	"github.com/radieske/caderneta/pkg/ledger"
)

// ReadRepo é a visão somente-leitura da caderneta usada pelo worker de
// recálculo. Nunca escreve no banco.
type ReadRepo struct{ db *sql.DB }

func NewReadRepo(db *sql.DB) *ReadRepo { return &ReadRepo{db: db} }

// LoadProfile carrega o snapshot completo de um perfil numa única chamada:
// apostas, movimentações e base da banca.
func (r *ReadRepo) LoadProfile(ctx context.Context, profileID string) ([]ledger.Bet, []ledger.CashMovement, *float64, error) {
	bets, err := r.listBets(ctx, profileID)
	if err != nil {
		return nil, nil, nil, err
	}
	flows, err := r.listCashMovements(ctx, profileID)
	if err != nil {
		return nil, nil, nil, err
	}
	base, err := r.bankrollBase(ctx, profileID)
	if err != nil {
		return nil, nil, nil, err
	}
	return bets, flows, base, nil
}

func (r *ReadRepo) listBets(ctx context.Context, profileID string) ([]ledger.Bet, error) {
	rows, err := r.db.QueryContext(ctx, `
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
		b.Status = ledger.NormalizeStatus(status)
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

func (r *ReadRepo) listCashMovements(ctx context.Context, profileID string) ([]ledger.CashMovement, error) {
	rows, err := r.db.QueryContext(ctx, `
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

func (r *ReadRepo) bankrollBase(ctx context.Context, profileID string) (*float64, error) {
	var base sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
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
