package service

import (
	"context"
	"fmt"

	"chamber_dashboard/internal/models"
	"chamber_dashboard/internal/view"
)

// FormReader reads raw input values. *view.Page satisfies it.
type FormReader interface {
	Value(elementID string) (string, error)
}

// ProfileFormCollector turns a device's profile inputs into a command.
type ProfileFormCollector struct {
	form       FormReader
	dispatcher Dispatcher
}

func NewProfileFormCollector(form FormReader, dispatcher Dispatcher) *ProfileFormCollector {
	return &ProfileFormCollector{form: form, dispatcher: dispatcher}
}

// Collect reads input_{id}_{field} for every profile field, as typed.
// The first missing input aborts with view.ErrElementNotFound.
func (c *ProfileFormCollector) Collect(id models.ID) (models.CustomPreset, error) {
	var preset models.CustomPreset
	for _, field := range models.ProfileFields {
		raw, err := c.form.Value(view.InputElementID(id, field))
		if err != nil {
			return models.CustomPreset{}, err
		}
		if err := preset.Set(field, raw); err != nil {
			return models.CustomPreset{}, err
		}
	}
	return preset, nil
}

// Submit collects the form and dispatches it as status 1 with no preset id.
// A non-empty input that is not a number fails with ErrInvalidProfile and
// nothing is sent; the values that are sent stay as typed.
func (c *ProfileFormCollector) Submit(ctx context.Context, id models.ID) error {
	preset, err := c.Collect(id)
	if err != nil {
		return err
	}
	if _, err := preset.Parse(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return c.dispatcher.Dispatch(ctx, models.Command{
		ID:           id,
		Status:       models.StatusApplyProfile,
		PresetID:     nil,
		CustomPreset: &preset,
	})
}
