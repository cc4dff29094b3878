package georecon

import (
	"sync"

	"github.com/agentstation/georecon/pkg/reconcile"
)

// Hook function types for run events
type (
	// ResolvedHook is called for each record that received a value.
	ResolvedHook func(result reconcile.MatchResult)

	// UnresolvedHook is called for each record left without a value.
	UnresolvedHook func(result reconcile.MatchResult)

	// DiagnosticHook is called for each recovered problem.
	DiagnosticHook func(d reconcile.Diagnostic)
)

// hooks manages run callbacks
type hooks struct {
	mu           sync.RWMutex
	onResolved   []ResolvedHook
	onUnresolved []UnresolvedHook
	onDiagnostic []DiagnosticHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnResolved registers a callback for resolved records.
func (c *Client) OnResolved(fn ResolvedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onResolved = append(c.hooks.onResolved, fn)
}

// OnUnresolved registers a callback for records left without a value.
func (c *Client) OnUnresolved(fn UnresolvedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onUnresolved = append(c.hooks.onUnresolved, fn)
}

// OnDiagnostic registers a callback for diagnostics.
func (c *Client) OnDiagnostic(fn DiagnosticHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onDiagnostic = append(c.hooks.onDiagnostic, fn)
}

// trigger replays an outcome to the registered callbacks in commit order.
func (h *hooks) trigger(outcome *reconcile.Outcome) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, r := range outcome.Results {
		if r.Resolved() {
			for _, fn := range h.onResolved {
				fn(r)
			}
			continue
		}
		for _, fn := range h.onUnresolved {
			fn(r)
		}
	}
	for _, d := range outcome.Diagnostics {
		for _, fn := range h.onDiagnostic {
			fn(d)
		}
	}
}
