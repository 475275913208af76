package service

import (
	"context"
	"errors"

	"chamber_dashboard/internal/logger"
	"chamber_dashboard/internal/metrics"
	"chamber_dashboard/internal/models"
	"chamber_dashboard/internal/repository"
)

// CommandSender posts a command to the backend. *backend.Client satisfies it.
type CommandSender interface {
	SendCommand(ctx context.Context, cmd models.Command) error
}

var (
	// ErrMissingDeviceID is returned for commands without a target device.
	ErrMissingDeviceID = errors.New("command has no device id")
	// ErrInvalidProfile is returned when a profile form has non-numeric input.
	ErrInvalidProfile = errors.New("invalid custom profile")
)

// CommandDispatcher sends one command per call: no retry, no dedup.
type CommandDispatcher struct {
	sender  CommandSender
	history repository.CommandRepo
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewCommandDispatcher(sender CommandSender, history repository.CommandRepo, m *metrics.Metrics, log *logger.Logger) *CommandDispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &CommandDispatcher{sender: sender, history: history, metrics: m, log: log}
}

// validateCommand checks the command before anything leaves the process.
// The payload itself is never inspected or rewritten.
func validateCommand(cmd models.Command) error {
	if cmd.ID == "" {
		return ErrMissingDeviceID
	}
	return nil
}

// Dispatch validates and sends cmd. Transport and non-2xx failures are
// logged and returned; the caller decides whether to surface them.
func (d *CommandDispatcher) Dispatch(ctx context.Context, cmd models.Command) error {
	if err := validateCommand(cmd); err != nil {
		d.log.Infow("command_rejected", "id", cmd.ID, "status", cmd.Status, "err", err)
		d.record(ctx, cmd, models.OutcomeRejected, err)
		return err
	}

	if err := d.sender.SendCommand(ctx, cmd); err != nil {
		d.log.Errorw("command_dispatch_failed", "id", cmd.ID, "status", cmd.Status, "err", err)
		d.metrics.CommandFinished(cmd.Status, metrics.OutcomeFailed)
		d.record(ctx, cmd, models.OutcomeFailed, err)
		return err
	}

	d.log.Infow("command_sent", "id", cmd.ID, "status", cmd.Status)
	d.metrics.CommandFinished(cmd.Status, metrics.OutcomeOK)
	d.record(ctx, cmd, models.OutcomeSent, nil)
	return nil
}

// record appends to the history. It is best-effort and outlives ctx cancellation.
func (d *CommandDispatcher) record(ctx context.Context, cmd models.Command, outcome string, cause error) {
	if d.history == nil {
		return
	}
	ev := models.CommandEvent{
		DeviceID:     cmd.ID,
		Status:       cmd.Status,
		PresetID:     cmd.PresetID,
		CustomPreset: cmd.CustomPreset,
		Outcome:      outcome,
	}
	if cause != nil {
		ev.Error = cause.Error()
	}
	if err := d.history.Append(context.WithoutCancel(ctx), ev); err != nil {
		d.log.Errorw("command_history_append_failed", "id", cmd.ID, "err", err)
	}
}
