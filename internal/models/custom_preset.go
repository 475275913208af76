package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Custom profile field names, as used on the wire and in input element ids.
const (
	ProfileTemperature            = "temperature"
	ProfileMaxTemperatureDelta    = "max_temperature_delta"
	ProfileHumidity               = "humidity"
	ProfileDryTime                = "dry_time"
	ProfileStorageTemperature     = "storage_temperature"
	ProfileHumidityStorageRange   = "humidity_storage_range"
	ProfileHumidityStorageDryTime = "humidity_storage_dry_time"
)

// ProfileFields lists the custom profile inputs in form order.
var ProfileFields = []string{
	ProfileTemperature,
	ProfileMaxTemperatureDelta,
	ProfileHumidity,
	ProfileDryTime,
	ProfileStorageTemperature,
	ProfileHumidityStorageRange,
	ProfileHumidityStorageDryTime,
}

// CustomPreset is an operator-entered profile. Values are the raw strings
// typed into the form; a nil field is left out of the wire object.
type CustomPreset struct {
	Temperature            *string `json:"temperature,omitempty"`
	MaxTemperatureDelta    *string `json:"max_temperature_delta,omitempty"`
	Humidity               *string `json:"humidity,omitempty"`
	DryTime                *string `json:"dry_time,omitempty"`
	StorageTemperature     *string `json:"storage_temperature,omitempty"`
	HumidityStorageRange   *string `json:"humidity_storage_range,omitempty"`
	HumidityStorageDryTime *string `json:"humidity_storage_dry_time,omitempty"`
}

// Text returns a pointer to s.
func Text(s string) *string { return &s }

var errUnknownProfileField = errors.New("unknown custom profile field")

// field returns the slot for a profile field name.
func (p *CustomPreset) field(name string) (**string, error) {
	switch name {
	case ProfileTemperature:
		return &p.Temperature, nil
	case ProfileMaxTemperatureDelta:
		return &p.MaxTemperatureDelta, nil
	case ProfileHumidity:
		return &p.Humidity, nil
	case ProfileDryTime:
		return &p.DryTime, nil
	case ProfileStorageTemperature:
		return &p.StorageTemperature, nil
	case ProfileHumidityStorageRange:
		return &p.HumidityStorageRange, nil
	case ProfileHumidityStorageDryTime:
		return &p.HumidityStorageDryTime, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownProfileField, name)
	}
}

// Set stores the raw value of one profile field.
func (p *CustomPreset) Set(name, raw string) error {
	slot, err := p.field(name)
	if err != nil {
		return err
	}
	*slot = Text(raw)
	return nil
}

// Get returns the raw value of one profile field.
func (p *CustomPreset) Get(name string) (string, bool) {
	slot, err := p.field(name)
	if err != nil || *slot == nil {
		return "", false
	}
	return **slot, true
}

// Profile is the typed form of a CustomPreset. Nil means unset.
type Profile struct {
	Temperature            *float64
	MaxTemperatureDelta    *float64
	Humidity               *float64
	DryTime                *float64
	StorageTemperature     *float64
	HumidityStorageRange   *float64
	HumidityStorageDryTime *float64
}

// ProfileFieldError reports a profile input that is not a number.
type ProfileFieldError struct {
	Field string
	Raw   string
}

func (e *ProfileFieldError) Error() string {
	return fmt.Sprintf("custom_preset.%s: %q is not a number", e.Field, e.Raw)
}

// Parse converts the raw strings into a Profile. Empty values parse as unset.
// It does not modify p, so the wire payload stays exactly as entered.
func (p CustomPreset) Parse() (Profile, error) {
	var out Profile
	targets := map[string]**float64{
		ProfileTemperature:            &out.Temperature,
		ProfileMaxTemperatureDelta:    &out.MaxTemperatureDelta,
		ProfileHumidity:               &out.Humidity,
		ProfileDryTime:                &out.DryTime,
		ProfileStorageTemperature:     &out.StorageTemperature,
		ProfileHumidityStorageRange:   &out.HumidityStorageRange,
		ProfileHumidityStorageDryTime: &out.HumidityStorageDryTime,
	}
	var errs []error
	for _, name := range ProfileFields {
		raw, ok := p.Get(name)
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, &ProfileFieldError{Field: name, Raw: raw})
			continue
		}
		*targets[name] = &f
	}
	if len(errs) > 0 {
		return Profile{}, errors.Join(errs...)
	}
	return out, nil
}
