package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chamber_dashboard/internal/models"

	"github.com/google/uuid"
)

type CommandSQLite struct {
	db *sql.DB
}

func NewCommandSQLite(db *sql.DB) *CommandSQLite { return &CommandSQLite{db: db} }

var _ CommandRepo = (*CommandSQLite)(nil)

// timestampLayout sorts lexically, so range filters work on the text column.
const timestampLayout = "2006-01-02 15:04:05.000"

const insertCommandSQL = `
		INSERT INTO command_events (id, occurred_at, device_id, status, preset_id, custom_preset, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

const selectCommandsSQL = `SELECT id, occurred_at, device_id, status, preset_id, custom_preset, outcome, error FROM command_events`

// Append inserts a new command event. If EventID or OccurredAt are empty, they're set.
func (r *CommandSQLite) Append(ctx context.Context, e models.CommandEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	var presetID *string
	if e.PresetID != nil {
		s := string(*e.PresetID)
		presetID = &s
	}

	var presetJSON *string
	if e.CustomPreset != nil {
		b, err := json.Marshal(e.CustomPreset)
		if err != nil {
			return fmt.Errorf("encode custom preset: %w", err)
		}
		s := string(b)
		presetJSON = &s
	}

	_, err := r.db.ExecContext(ctx, insertCommandSQL,
		e.EventID,
		e.OccurredAt.UTC().Format(timestampLayout),
		string(e.DeviceID),
		e.Status,
		presetID,
		presetJSON,
		strings.ToLower(strings.TrimSpace(e.Outcome)),
		e.Error,
	)
	return err
}

// List returns events filtered by [from, to] (inclusive), device and outcome, ordered ASC.
func (r *CommandSQLite) List(ctx context.Context, from, to time.Time, deviceID models.ID, outcome string) ([]models.CommandEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(timestampLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(timestampLayout))
	}
	if deviceID != "" {
		conds = append(conds, "device_id = ?")
		args = append(args, string(deviceID))
	}
	if outcome = strings.ToLower(strings.TrimSpace(outcome)); outcome != "" {
		conds = append(conds, "outcome = ?")
		args = append(args, outcome)
	}

	q := selectCommandsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.CommandEvent, 0, 64)
	for rows.Next() {
		var (
			ev         models.CommandEvent
			at         sqlTime
			device     string
			presetID   sql.NullString
			presetJSON sql.NullString
			errText    sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &at, &device, &ev.Status, &presetID, &presetJSON, &ev.Outcome, &errText); err != nil {
			return nil, err
		}
		ev.OccurredAt = at.Time.UTC()
		ev.DeviceID = models.ID(device)
		ev.Error = errText.String

		if presetID.Valid {
			id := models.ID(presetID.String)
			ev.PresetID = &id
		}
		if presetJSON.Valid && presetJSON.String != "" {
			var p models.CustomPreset
			if err := json.Unmarshal([]byte(presetJSON.String), &p); err != nil {
				return nil, fmt.Errorf("decode custom preset of %s: %w", ev.EventID, err)
			}
			ev.CustomPreset = &p
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// sqlTime scans timestamps stored either as time values or as text.
type sqlTime struct {
	Time time.Time
}

func (t *sqlTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *sqlTime) parse(s string) error {
	for _, layout := range []string{timestampLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", s)
}
