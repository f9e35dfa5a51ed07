package storage

import (
	"context"
	"database/sql"
	"fmt"

	"instructchat/internal/service"
)

// TurnRepo stores chat turns in SQLite. It implements service.History.
type TurnRepo struct {
	db *sql.DB
}

var _ service.History = (*TurnRepo)(nil)

// NewTurnRepo creates a new TurnRepo.
func NewTurnRepo(db *sql.DB) *TurnRepo {
	return &TurnRepo{db: db}
}

// Append inserts turns in a single transaction.
func (r *TurnRepo) Append(ctx context.Context, turns ...service.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO turns (id, role, text, created_at) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range turns {
		rec := recordFromTurn(t)
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Role, rec.Text, rec.CreatedAt); err != nil {
			return fmt.Errorf("insert turn %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// List returns all turns in insertion order.
func (r *TurnRepo) List(ctx context.Context) ([]service.Turn, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT seq, id, role, text, created_at FROM turns ORDER BY seq",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []service.Turn
	for rows.Next() {
		var rec turnRecord
		if err := rows.Scan(&rec.Seq, &rec.ID, &rec.Role, &rec.Text, &rec.CreatedAt); err != nil {
			return nil, err
		}
		t, err := rec.toTurn()
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return turns, nil
}

// Clear deletes every turn.
func (r *TurnRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM turns")
	return err
}
