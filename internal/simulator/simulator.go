// Package simulator is a development backend: a fleet of drying chambers
// that answers the snapshot and status endpoints the dashboard polls.
package simulator

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"chamber_dashboard/internal/logger"
	"chamber_dashboard/internal/models"
)

// ----------- Simulation constants -----------
const (
	AmbientC           = 22.0 // ambient temperature °C
	AmbientAbsHumidity = 9.0  // ambient absolute humidity g/m³
	HeatRateCPerSec    = 0.5  // °C per second toward a higher target
	CoolRateCPerSec    = 0.2  // °C per second toward a lower target
	DryRatePerSec      = 0.05 // g/m³ removed per second while drying
	RegainRatePerSec   = 0.01 // g/m³ per second drifting back toward ambient
)

// Chamber statuses reported in snapshots.
const (
	StatusIdle    = "idle"
	StatusHeating = "heating"
	StatusDrying  = "drying"
	StatusStorage = "storage"
)

type chamber struct {
	id       models.ID
	status   string
	temp     float64
	absHum   float64
	timeLeft float64 // seconds
	profile  *Profile
}

// Fleet simulates a set of chambers. It is safe for concurrent use.
type Fleet struct {
	mu       sync.Mutex
	chambers map[models.ID]*chamber
	presets  map[models.ID]Profile
	last     time.Time
	now      func() time.Time
	log      *logger.Logger
}

// NewFleet returns idle chambers at ambient conditions.
func NewFleet(ids []models.ID, log *logger.Logger) *Fleet {
	if log == nil {
		log = logger.Nop()
	}
	f := &Fleet{
		chambers: make(map[models.ID]*chamber, len(ids)),
		presets:  Presets,
		now:      time.Now,
		log:      log,
	}
	for _, id := range ids {
		f.chambers[id] = &chamber{id: id, status: StatusIdle, temp: AmbientC, absHum: AmbientAbsHumidity}
	}
	f.last = f.now()
	return f
}

// Run advances the fleet every tick until ctx is canceled.
func (f *Fleet) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			f.Step(now)
		}
	}
}

// Step advances every chamber to now.
func (f *Fleet) Step(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dt := now.Sub(f.last).Seconds()
	if dt <= 0 {
		return
	}
	f.last = now
	for _, c := range f.chambers {
		prev := c.status
		c.advance(dt)
		if c.status != prev {
			f.log.Infow("chamber_phase_changed", "id", c.id, "from", prev, "to", c.status)
		}
	}
}

// Apply executes a status command. Status 1 starts the resolved profile;
// any other code stops the chamber.
func (f *Fleet) Apply(cmd models.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.chambers[cmd.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChamber, cmd.ID)
	}

	if cmd.Status != models.StatusApplyProfile {
		c.profile, c.timeLeft, c.status = nil, 0, StatusIdle
		f.log.Infow("chamber_stopped", "id", c.id, "status_code", cmd.Status)
		return nil
	}

	p, err := resolveProfile(f.presets, cmd.PresetID, cmd.CustomPreset)
	if err != nil {
		return err
	}
	c.profile, c.timeLeft, c.status = &p, 0, StatusHeating
	f.log.Infow("chamber_started", "id", c.id, "profile", p.Name, "target_c", p.TargetTemperature)
	return nil
}

// Snapshots reports every chamber, ordered by id.
func (f *Fleet) Snapshots() []models.TelemetrySnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.TelemetrySnapshot, 0, len(f.chambers))
	for _, c := range f.chambers {
		out = append(out, c.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *chamber) advance(dt float64) {
	p := c.profile
	if p == nil {
		c.temp = approach(c.temp, AmbientC, CoolRateCPerSec*dt)
		c.absHum = approach(c.absHum, AmbientAbsHumidity, RegainRatePerSec*dt)
		return
	}

	switch c.status {
	case StatusHeating:
		c.temp = approach(c.temp, p.TargetTemperature, rampRate(c.temp, p.TargetTemperature)*dt)
		if math.Abs(c.temp-p.TargetTemperature) <= p.MaxTemperatureDelta {
			c.status, c.timeLeft = StatusDrying, p.DryTime*60
		}
	case StatusDrying:
		c.temp = approach(c.temp, p.TargetTemperature, rampRate(c.temp, p.TargetTemperature)*dt)
		// dry until the air would sit at the target humidity once cooled to storage
		c.absHum = approach(c.absHum, absoluteFor(p.TargetHumidity, p.StorageTemperature), DryRatePerSec*dt)
		c.timeLeft -= dt
		if c.timeLeft <= 0 {
			c.status, c.timeLeft = StatusStorage, 0
		}
	case StatusStorage:
		c.temp = approach(c.temp, p.StorageTemperature, rampRate(c.temp, p.StorageTemperature)*dt)
		c.absHum = approach(c.absHum, AmbientAbsHumidity, RegainRatePerSec*dt)
		if p.HumidityStorageDryTime > 0 && relativeHumidity(c.absHum, c.temp) > p.TargetHumidity+p.HumidityStorageRange {
			c.status, c.timeLeft = StatusDrying, p.HumidityStorageDryTime*60
		}
	}
}

func (c *chamber) snapshot() models.TelemetrySnapshot {
	s := models.TelemetrySnapshot{
		ID:               c.id,
		Status:           models.NewValue(c.status),
		Temperature:      number(c.temp),
		AbsoluteHumidity: number(c.absHum),
		RelativeHumidity: number(relativeHumidity(c.absHum, c.temp)),
		TimeLeft:         models.NewValue(clock(c.timeLeft)),
	}
	if p := c.profile; p != nil {
		s.TargetTemperature = number(p.TargetTemperature)
		s.MaxTemperatureDelta = number(p.MaxTemperatureDelta)
		s.TargetHumidity = number(p.TargetHumidity)
		s.DryTime = number(p.DryTime)
		s.HumidityStorageDryTime = number(p.HumidityStorageDryTime)
		s.HumidityStorageRange = number(p.HumidityStorageRange)
		s.StorageTemperature = number(p.StorageTemperature)
	}
	return s
}

// helpers

// approach moves cur toward target by at most step.
func approach(cur, target, step float64) float64 {
	if cur < target {
		return math.Min(cur+step, target)
	}
	return math.Max(cur-step, target)
}

func rampRate(cur, target float64) float64 {
	if target > cur {
		return HeatRateCPerSec
	}
	return CoolRateCPerSec
}

// saturationDensity is the water vapour density of saturated air in g/m³.
func saturationDensity(tempC float64) float64 {
	return 5.018 + 0.32321*tempC + 8.1847e-3*tempC*tempC + 3.1243e-4*tempC*tempC*tempC
}

func relativeHumidity(absHum, tempC float64) float64 {
	rh := absHum / saturationDensity(tempC) * 100
	return math.Max(0, math.Min(rh, 100))
}

func absoluteFor(rh, tempC float64) float64 {
	return rh / 100 * saturationDensity(tempC)
}

func number(f float64) models.Value {
	return models.NewNumber(math.Round(f*10) / 10)
}

// clock formats seconds as HH:MM:SS.
func clock(sec float64) string {
	s := int(math.Ceil(math.Max(sec, 0)))
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
