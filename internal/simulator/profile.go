package simulator

import (
	"errors"
	"fmt"

	"chamber_dashboard/internal/models"
)

var (
	ErrUnknownChamber = errors.New("unknown chamber")
	ErrUnknownPreset  = errors.New("unknown preset")
)

// Profile is a drying program. Times are in minutes, humidity in %RH.
type Profile struct {
	Name                   string
	TargetTemperature      float64
	MaxTemperatureDelta    float64
	TargetHumidity         float64
	DryTime                float64
	StorageTemperature     float64
	HumidityStorageRange   float64
	HumidityStorageDryTime float64
}

// DefaultProfile is the base a custom profile is merged onto when no preset is given.
var DefaultProfile = Profile{
	Name:                   "custom",
	TargetTemperature:      50,
	MaxTemperatureDelta:    2,
	TargetHumidity:         15,
	DryTime:                240,
	StorageTemperature:     30,
	HumidityStorageRange:   5,
	HumidityStorageDryTime: 30,
}

// Presets are the stored programs addressable by preset_id.
var Presets = map[models.ID]Profile{
	"1": {Name: "PLA", TargetTemperature: 50, MaxTemperatureDelta: 2, TargetHumidity: 15, DryTime: 240, StorageTemperature: 30, HumidityStorageRange: 5, HumidityStorageDryTime: 30},
	"2": {Name: "PETG", TargetTemperature: 65, MaxTemperatureDelta: 2, TargetHumidity: 12, DryTime: 240, StorageTemperature: 35, HumidityStorageRange: 5, HumidityStorageDryTime: 45},
	"3": {Name: "Nylon", TargetTemperature: 80, MaxTemperatureDelta: 3, TargetHumidity: 8, DryTime: 480, StorageTemperature: 40, HumidityStorageRange: 3, HumidityStorageDryTime: 60},
}

// resolveProfile picks the preset (or the default) and overlays the
// non-empty custom values on top of it.
func resolveProfile(presets map[models.ID]Profile, presetID *models.ID, custom *models.CustomPreset) (Profile, error) {
	p := DefaultProfile
	if presetID != nil {
		var ok bool
		if p, ok = presets[*presetID]; !ok {
			return Profile{}, fmt.Errorf("%w: %s", ErrUnknownPreset, *presetID)
		}
	}
	if custom == nil {
		return p, nil
	}

	parsed, err := custom.Parse()
	if err != nil {
		return Profile{}, err
	}
	overlay := []struct {
		src *float64
		dst *float64
	}{
		{parsed.Temperature, &p.TargetTemperature},
		{parsed.MaxTemperatureDelta, &p.MaxTemperatureDelta},
		{parsed.Humidity, &p.TargetHumidity},
		{parsed.DryTime, &p.DryTime},
		{parsed.StorageTemperature, &p.StorageTemperature},
		{parsed.HumidityStorageRange, &p.HumidityStorageRange},
		{parsed.HumidityStorageDryTime, &p.HumidityStorageDryTime},
	}
	for _, o := range overlay {
		if o.src != nil {
			*o.dst = *o.src
		}
	}
	if presetID == nil {
		p.Name = "custom"
	} else {
		p.Name += " (custom)"
	}
	return p, nil
}
