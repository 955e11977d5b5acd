package core

import (
	"sync"
	"time"

	"camPark/internal/domain"
	"camPark/internal/geo"
)

// DefaultCooldownWindow is the minimum interval between prompts for the
// same zone within one session.
const DefaultCooldownWindow = 10 * time.Minute

type ThrottlerConfig struct {
	CooldownWindow time.Duration
	Now            func() time.Time
}

func (c ThrottlerConfig) withDefaults() ThrottlerConfig {
	if c.CooldownWindow <= 0 {
		c.CooldownWindow = DefaultCooldownWindow
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Throttler decides when a moving user should be asked for a report.
// One instance per session; cooldowns die with the session.
type Throttler struct {
	registry *Registry
	cfg      ThrottlerConfig

	mu        sync.Mutex
	cooldowns map[string]time.Time // zone code -> lastPromptedAt
}

func NewThrottler(registry *Registry, cfg ThrottlerConfig) *Throttler {
	return &Throttler{
		registry:  registry,
		cfg:       cfg.withDefaults(),
		cooldowns: make(map[string]time.Time),
	}
}

// OnPositionUpdate returns the zone codes to prompt for from this position
// and refreshes their cooldowns. Positions are evaluated in delivery order.
func (t *Throttler) OnPositionUpdate(lat, lng float64) ([]string, error) {
	if err := geo.ValidateCoordinate(lat, lng); err != nil {
		return nil, err
	}

	now := t.cfg.Now()
	var prompts []string

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, zone := range t.registry.All() {
		if zone.State == domain.ZoneClosed {
			continue
		}
		// Strictly inside the radius; the boundary itself does not count.
		if geo.HaversineM(lat, lng, zone.Lat, zone.Lng) >= zone.RadiusM {
			continue
		}
		if last, ok := t.cooldowns[zone.Code]; ok && now.Sub(last) <= t.cfg.CooldownWindow {
			continue
		}
		t.cooldowns[zone.Code] = now
		prompts = append(prompts, zone.Code)
	}

	return prompts, nil
}
