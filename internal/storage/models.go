package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"instructchat/internal/service"
)

// turnRecord is a row of the turns table.
type turnRecord struct {
	Seq       int64
	ID        string // UUID
	Role      string
	Text      string
	CreatedAt string // RFC 3339 with nanoseconds, UTC
}

func recordFromTurn(t service.Turn) turnRecord {
	return turnRecord{
		ID:        t.ID.String(),
		Role:      string(t.Role),
		Text:      t.Text,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (r turnRecord) toTurn() (service.Turn, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return service.Turn{}, fmt.Errorf("invalid turn id %q: %w", r.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return service.Turn{}, fmt.Errorf("invalid created_at for turn %s: %w", r.ID, err)
	}
	return service.Turn{
		ID:        id,
		Role:      service.Role(r.Role),
		Text:      r.Text,
		CreatedAt: createdAt,
	}, nil
}
