package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jirehclean/portal/internal/identity"
)

// Hub observes an identity provider and fans classified sessions out to its
// own subscribers. Exactly one upstream observation point drives every state
// transition; sign-in and sign-out actions reach subscribers only through
// the provider's next notification.
type Hub struct {
	adminEmail string
	logger     *zap.Logger

	mu         sync.Mutex
	current    Session
	subs       map[int]func(Session)
	nextSub    int
	cancelProv func()
}

// NewHub subscribes to the provider and starts classifying. Close releases
// the provider subscription.
func NewHub(provider identity.Provider, adminEmail string, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		adminEmail: adminEmail,
		logger:     logger,
		subs:       make(map[int]func(Session)),
	}
	h.cancelProv = provider.Subscribe(h.onIdentity)
	return h
}

func (h *Hub) onIdentity(id *identity.Identity) {
	next := Session{State: Classify(id, h.adminEmail), Identity: id}

	h.mu.Lock()
	prev := h.current
	h.current = next
	subs := make([]func(Session), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	if prev.State != next.State {
		h.logger.Info("session state changed",
			zap.String("from", prev.State.String()),
			zap.String("to", next.State.String()),
		)
	}
	for _, fn := range subs {
		fn(next)
	}
}

// Current returns the latest classified session.
func (h *Hub) Current() Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Subscribe registers fn for session changes and invokes it once immediately
// with the current session. The returned func cancels the subscription.
func (h *Hub) Subscribe(fn func(Session)) func() {
	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	cur := h.current
	h.mu.Unlock()

	fn(cur)
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Close cancels the provider subscription.
func (h *Hub) Close() {
	if h.cancelProv != nil {
		h.cancelProv()
	}
}
