package repository

import (
	"context"
	"database/sql"
	"time"

	"chamber_dashboard/internal/models"
)

// LayoutRepo persists the split-pane layout preference.
type LayoutRepo interface {
	Save(ctx context.Context, p models.LayoutPreference) error
	// Load reports ok=false when no preference has been stored yet.
	Load(ctx context.Context) (p models.LayoutPreference, ok bool, err error)
}

// CommandRepo is the append-only command history.
type CommandRepo interface {
	Append(ctx context.Context, e models.CommandEvent) error
	List(ctx context.Context, from, to time.Time, deviceID models.ID, outcome string) ([]models.CommandEvent, error)
}

type Repository struct {
	LayoutRepo  LayoutRepo
	CommandRepo CommandRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		LayoutRepo:  NewLayoutSQLite(db),
		CommandRepo: NewCommandSQLite(db),
	}
}
