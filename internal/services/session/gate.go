package session

import (
	"sync"

	"github.com/PedroPerillo/dndice/internal/models"
)

// Gate exposes who is signed in and announces changes
type Gate interface {
	// Current returns the signed-in identity, nil when anonymous
	Current() *models.Identity

	// OnChange registers fn to run after every sign-in or sign-out.
	// The returned func removes the registration.
	OnChange(fn func(identity *models.Identity)) (unsubscribe func())
}

// StaticGate is an in-memory Gate driven by explicit SignIn and SignOut calls
type StaticGate struct {
	// notifyMu orders changes so subscribers see them in the order applied
	notifyMu sync.Mutex

	mu          sync.Mutex
	current     *models.Identity
	subscribers map[int]func(*models.Identity)
	nextID      int
}

// NewStaticGate creates a gate, optionally already signed in
func NewStaticGate(initial *models.Identity) *StaticGate {
	return &StaticGate{
		current:     initial,
		subscribers: make(map[int]func(*models.Identity)),
	}
}

// Current returns the signed-in identity
func (g *StaticGate) Current() *models.Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// OnChange registers a subscriber
func (g *StaticGate) OnChange(fn func(identity *models.Identity)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	g.subscribers[id] = fn

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subscribers, id)
	}
}

// SignIn replaces the current identity and notifies subscribers
func (g *StaticGate) SignIn(identity *models.Identity) {
	g.set(identity)
}

// SignOut clears the current identity and notifies subscribers
func (g *StaticGate) SignOut() {
	g.set(nil)
}

// set must not be reached from inside a subscriber
func (g *StaticGate) set(identity *models.Identity) {
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()

	g.mu.Lock()
	g.current = identity
	subscribers := make([]func(*models.Identity), 0, len(g.subscribers))
	for _, fn := range g.subscribers {
		subscribers = append(subscribers, fn)
	}
	g.mu.Unlock()

	// Subscribers run outside mu so they may read the gate or unsubscribe
	for _, fn := range subscribers {
		fn(identity)
	}
}
