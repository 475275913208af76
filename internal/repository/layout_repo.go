package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"chamber_dashboard/internal/models"
)

type LayoutSQLite struct {
	db *sql.DB
}

func NewLayoutSQLite(db *sql.DB) *LayoutSQLite {
	return &LayoutSQLite{db: db}
}

var _ LayoutRepo = (*LayoutSQLite)(nil)

const (
	// LeftWidthKey is the preference key holding the left pane width.
	LeftWidthKey = "split_pane_left_width"

	upsertPreferenceSQL = `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`

	selectPreferenceSQL = `SELECT value FROM preferences WHERE key = ?`
)

// formatWidth stores the width as plain decimal text.
func formatWidth(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// Save writes the left pane width under LeftWidthKey.
func (r *LayoutSQLite) Save(ctx context.Context, p models.LayoutPreference) error {
	_, err := r.db.ExecContext(ctx, upsertPreferenceSQL,
		LeftWidthKey,
		formatWidth(p.LeftWidth),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", LeftWidthKey, err)
	}
	return nil
}

// Load reads the left pane width. A missing row is not an error.
func (r *LayoutSQLite) Load(ctx context.Context) (models.LayoutPreference, bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, selectPreferenceSQL, LeftWidthKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LayoutPreference{}, false, nil
		}
		return models.LayoutPreference{}, false, fmt.Errorf("load %s: %w", LeftWidthKey, err)
	}

	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.LayoutPreference{}, false, fmt.Errorf("parse %s %q: %w", LeftWidthKey, raw, err)
	}
	return models.LayoutPreference{LeftWidth: w}, true, nil
}
