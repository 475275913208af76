package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chamber_dashboard/internal/models"
	"chamber_dashboard/internal/repository"
)

type CommandLogService struct {
	repo repository.CommandRepo
}

func NewCommandLogService(repo repository.CommandRepo) *CommandLogService {
	return &CommandLogService{repo: repo}
}

// ErrInvalidFilter is returned for history filters that cannot match anything sensible.
var ErrInvalidFilter = errors.New("invalid command filter")

var knownOutcomes = map[string]bool{
	models.OutcomeSent:     true,
	models.OutcomeFailed:   true,
	models.OutcomeRejected: true,
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeOutcome(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeAndValidateFilter prepares query parameters and validates them.
func normalizeAndValidateFilter(f CommandFilter) (CommandFilter, error) {
	out := CommandFilter{
		From:     normalizeToUTC(f.From),
		To:       normalizeToUTC(f.To),
		DeviceID: models.ID(strings.TrimSpace(string(f.DeviceID))),
		Outcome:  normalizeOutcome(f.Outcome),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return CommandFilter{}, fmt.Errorf("%w: from must be <= to", ErrInvalidFilter)
	}
	if out.Outcome != "" && !knownOutcomes[out.Outcome] {
		return CommandFilter{}, fmt.Errorf("%w: unknown outcome %q", ErrInvalidFilter, out.Outcome)
	}
	return out, nil
}

func (s *CommandLogService) List(ctx context.Context, f CommandFilter) ([]models.CommandEvent, error) {
	nf, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, nf.From, nf.To, nf.DeviceID, nf.Outcome)
}
