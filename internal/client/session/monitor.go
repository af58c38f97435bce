package session

import (
	"context"
	"sync/atomic"
	"time"

	"gestoria/internal/logging"
)

// Monitor revalidates the session through two independent mechanisms: a
// fixed repeating timer and explicit view changes. Each mechanism allows
// one pending validation at a time; the two may overlap with each other.
type Monitor struct {
	gw   Gateway
	sess *Manager
	log  logging.Logger

	interval time.Duration

	timerBusy atomic.Bool
	viewBusy  atomic.Bool
}

func NewMonitor(gw Gateway, sess *Manager, interval time.Duration, log logging.Logger) *Monitor {
	return &Monitor{
		gw:       gw,
		sess:     sess,
		log:      log.With("module", "monitor"),
		interval: interval,
	}
}

// Start runs the periodic validation loop until ctx is canceled.
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !m.timerBusy.CompareAndSwap(false, true) {
				continue
			}
			m.validate(ctx)
			m.timerBusy.Store(false)

		case <-ctx.Done():
			return
		}
	}
}

// OnViewChange revalidates the session when the operator switches views.
// While a view-change validation is still pending, further view changes do
// not stack a second one.
func (m *Monitor) OnViewChange(ctx context.Context) {
	if !m.viewBusy.CompareAndSwap(false, true) {
		return
	}
	defer m.viewBusy.Store(false)
	m.validate(ctx)
}

// validate probes /auth/me. A 401 is already turned into a forced logout
// by the gateway hook; every other failure (network error, 5xx) is treated
// conservatively as an invalid session as well.
func (m *Monitor) validate(ctx context.Context) {
	if !m.sess.Authenticated() {
		return
	}

	if _, err := m.gw.Me(ctx); err != nil {
		m.log.Warn(ctx, "session validation failed", "error", err)
		m.sess.Invalidate()
		return
	}

	m.log.Debug(ctx, "session still valid")
}
