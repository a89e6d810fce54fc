package storefront

import (
	"context"
	"sync"
	"time"

	"frylyle/internal/cart"
	"frylyle/internal/common/logger"
	"frylyle/internal/notify"
	"frylyle/internal/session"
	"frylyle/internal/storage"
)

// deviceSession is the per-device state bundle: one bridge, one cart, one
// notification set, one route memory. Constructed lazily on the first
// request that carries the device id and kept for the process lifetime.
type deviceSession struct {
	device   string
	cart     *cart.Container
	notifier *notify.Broadcaster
	routes   *session.RouteMemory

	cancelRelay func()
}

type registry struct {
	mu       sync.Mutex
	sessions map[string]*deviceSession

	driver storage.Driver
	seed   []cart.LineItem
	ttl    time.Duration
	relay  *notify.Relay
	lg     *logger.Logger
}

func newRegistry(driver storage.Driver, seed []cart.LineItem, ttl time.Duration, relay *notify.Relay, lg *logger.Logger) *registry {
	return &registry{
		sessions: make(map[string]*deviceSession),
		driver:   driver,
		seed:     seed,
		ttl:      ttl,
		relay:    relay,
		lg:       lg,
	}
}

func (r *registry) get(ctx context.Context, device string) *deviceSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[device]; ok {
		return s
	}
	bridge := storage.NewBridge(r.driver, device, r.lg)
	s := &deviceSession{
		device:   device,
		cart:     cart.New(bridge, cart.Options{Seed: r.seed}),
		notifier: notify.NewBroadcaster(r.ttl),
		routes:   session.NewRouteMemory(bridge),
	}
	if r.relay != nil {
		events, cancel := s.notifier.Subscribe()
		s.cancelRelay = cancel
		go r.relay.Watch(ctx, device, events)
	}
	r.sessions[device] = s
	r.lg.Debug("session_created", map[string]any{"device": device})
	return s
}

func (r *registry) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for device, s := range r.sessions {
		if s.cancelRelay != nil {
			s.cancelRelay()
		}
		s.notifier.Close()
		delete(r.sessions, device)
	}
}
