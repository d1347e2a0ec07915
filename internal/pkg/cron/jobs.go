package cron

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"
)

// Invalidator is a page whose held data can be marked outdated.
type Invalidator interface {
	Invalidate()
}

// DayRollover invalidates pages that depend on today's date once the local
// date changes, so their next visit reloads with the new date.
type DayRollover struct {
	clock datetime.Clock
	pages []Invalidator

	mu   sync.Mutex
	last datetime.Date
}

func NewDayRollover(clock datetime.Clock, pages ...Invalidator) *DayRollover {
	return &DayRollover{
		clock: clock,
		pages: pages,
		last:  datetime.Today(clock),
	}
}

func (d *DayRollover) Run(ctx context.Context) error {
	today := datetime.Today(d.clock)

	d.mu.Lock()
	changed := today != d.last
	d.last = today
	d.mu.Unlock()

	if changed {
		for _, p := range d.pages {
			p.Invalidate()
		}
	}
	return nil
}

// HealthChecker is the part of the API client the backend probe needs.
type HealthChecker interface {
	Health(ctx context.Context) (apiclient.HealthStatus, error)
}

// BackendProbe logs when the HRMS backend becomes reachable or unreachable.
// Repeated results of the same kind are not logged again.
type BackendProbe struct {
	checker HealthChecker
	logger  *slog.Logger

	mu        sync.Mutex
	known     bool
	reachable bool
}

func NewBackendProbe(checker HealthChecker, logger *slog.Logger) *BackendProbe {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackendProbe{checker: checker, logger: logger}
}

func (p *BackendProbe) Run(ctx context.Context) error {
	status, err := p.checker.Health(ctx)
	reachable := err == nil

	p.mu.Lock()
	changed := !p.known || reachable != p.reachable
	p.known = true
	p.reachable = reachable
	p.mu.Unlock()

	if !changed {
		return nil
	}
	if reachable {
		p.logger.InfoContext(ctx, "backend reachable", slog.String("version", status.Version))
	} else {
		p.logger.WarnContext(ctx, "backend unreachable", slog.String("error", err.Error()))
	}
	return nil
}

// Reachable reports the last probe result; false before the first probe.
func (p *BackendProbe) Reachable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.known && p.reachable
}
