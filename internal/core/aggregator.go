package core

import (
	"sync"
	"time"

	"camPark/internal/domain"
)

// DefaultRecencyWindow bounds how far back reports count toward a zone's
// status.
const DefaultRecencyWindow = 30 * time.Minute

// AggregatorConfig tunes the vote. TieBreak is the status returned when
// available and full votes are equal; the shipped policy is "full" so a
// split vote errs toward warning drivers off.
type AggregatorConfig struct {
	RecencyWindow time.Duration
	TieBreak      domain.Availability
	Now           func() time.Time
}

func (c AggregatorConfig) withDefaults() AggregatorConfig {
	if c.RecencyWindow <= 0 {
		c.RecencyWindow = DefaultRecencyWindow
	}
	if c.TieBreak == "" {
		c.TieBreak = domain.StatusFull
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// StatusListener receives a zone's status only when it differs from the
// previously emitted value for that zone.
type StatusListener func(domain.ZoneStatus)

type zoneVotes struct {
	mu       sync.Mutex
	reports  []domain.Report
	lastSent domain.Availability
	notified bool
}

// Aggregator owns the per-zone report windows and derives each zone's
// occupancy classification by majority vote. State is zone-scoped, so
// locking is per zone.
type Aggregator struct {
	registry *Registry
	cfg      AggregatorConfig

	votes map[string]*zoneVotes

	listenerMu sync.RWMutex
	listeners  []StatusListener
}

func NewAggregator(registry *Registry, cfg AggregatorConfig) *Aggregator {
	cfg = cfg.withDefaults()
	a := &Aggregator{
		registry: registry,
		cfg:      cfg,
		votes:    make(map[string]*zoneVotes, registry.Len()),
	}
	for _, z := range registry.All() {
		a.votes[z.Code] = &zoneVotes{}
	}
	return a
}

// OnStatusChange registers a listener for status transitions. Listeners run
// synchronously on the goroutine that triggered the recompute.
func (a *Aggregator) OnStatusChange(fn StatusListener) {
	a.listenerMu.Lock()
	a.listeners = append(a.listeners, fn)
	a.listenerMu.Unlock()
}

// Ingest appends a report to its zone's window. Reports for unknown or
// closed zones are dropped silently: a crowd-sourced signal is best-effort
// and a stale client should not see reference errors.
func (a *Aggregator) Ingest(report domain.Report) {
	zone, err := a.registry.Get(report.ZoneCode)
	if err != nil || zone.State == domain.ZoneClosed {
		return
	}

	v := a.votes[report.ZoneCode]
	v.mu.Lock()
	v.reports = append(v.reports, report)
	status := a.recomputeLocked(zone, v)
	changed := a.markLocked(v, status)
	v.mu.Unlock()

	if changed {
		a.emit(domain.ZoneStatus{ZoneCode: zone.Code, Status: status})
	}
}

// Resync replaces every zone's window from a complete delivered report set.
// The feed yields the full current window on each change, so this is
// idempotent and order-independent.
func (a *Aggregator) Resync(reports []domain.Report) {
	partition := make(map[string][]domain.Report, a.registry.Len())
	for _, r := range reports {
		zone, err := a.registry.Get(r.ZoneCode)
		if err != nil || zone.State == domain.ZoneClosed {
			continue
		}
		partition[r.ZoneCode] = append(partition[r.ZoneCode], r)
	}

	for _, zone := range a.registry.All() {
		v := a.votes[zone.Code]
		v.mu.Lock()
		v.reports = partition[zone.Code]
		status := a.recomputeLocked(zone, v)
		changed := a.markLocked(v, status)
		v.mu.Unlock()

		if changed {
			a.emit(domain.ZoneStatus{ZoneCode: zone.Code, Status: status})
		}
	}
}

// CurrentStatus recomputes a single zone. An unknown code is a caller bug
// and fails fast with ErrUnknownZone.
func (a *Aggregator) CurrentStatus(zoneCode string) (domain.ZoneStatus, error) {
	zone, err := a.registry.Get(zoneCode)
	if err != nil {
		return domain.ZoneStatus{}, err
	}

	v := a.votes[zoneCode]
	v.mu.Lock()
	status := a.recomputeLocked(zone, v)
	changed := a.markLocked(v, status)
	v.mu.Unlock()

	if changed {
		a.emit(domain.ZoneStatus{ZoneCode: zone.Code, Status: status})
	}
	return domain.ZoneStatus{ZoneCode: zone.Code, Status: status}, nil
}

// SnapshotAll returns every registered zone's status in registry order.
func (a *Aggregator) SnapshotAll() []domain.ZoneStatus {
	out := make([]domain.ZoneStatus, 0, a.registry.Len())
	var changes []domain.ZoneStatus

	for _, zone := range a.registry.All() {
		v := a.votes[zone.Code]
		v.mu.Lock()
		status := a.recomputeLocked(zone, v)
		if a.markLocked(v, status) {
			changes = append(changes, domain.ZoneStatus{ZoneCode: zone.Code, Status: status})
		}
		v.mu.Unlock()
		out = append(out, domain.ZoneStatus{ZoneCode: zone.Code, Status: status})
	}

	for _, c := range changes {
		a.emit(c)
	}
	return out
}

// recomputeLocked derives the zone's status and prunes stale reports in the
// same pass (lazy expiry, no timers). Caller holds v.mu.
func (a *Aggregator) recomputeLocked(zone domain.Zone, v *zoneVotes) domain.Availability {
	if zone.State == domain.ZoneClosed {
		return domain.StatusClosed
	}

	now := a.cfg.Now()
	fresh := v.reports[:0]
	var available, full int
	for _, r := range v.reports {
		if now.Sub(r.ReportedAt) >= a.cfg.RecencyWindow {
			continue
		}
		fresh = append(fresh, r)
		switch r.Status {
		case domain.ReportAvailable:
			available++
		case domain.ReportFull:
			full++
		}
	}
	v.reports = fresh

	if available == 0 && full == 0 {
		return domain.StatusUnknown
	}
	if available > full {
		return domain.StatusAvailable
	}
	if full > available {
		return domain.StatusFull
	}
	return a.cfg.TieBreak
}

// markLocked records the derived status and reports whether it differs from
// the last emitted value. Caller holds v.mu.
func (a *Aggregator) markLocked(v *zoneVotes, status domain.Availability) bool {
	if v.notified && v.lastSent == status {
		return false
	}
	v.lastSent = status
	v.notified = true
	return true
}

func (a *Aggregator) emit(s domain.ZoneStatus) {
	a.listenerMu.RLock()
	listeners := a.listeners
	a.listenerMu.RUnlock()
	for _, fn := range listeners {
		fn(s)
	}
}
