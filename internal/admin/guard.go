package admin

import "sync"

// inflight tracks running operations by key. A second operation on a key
// that is already running is rejected instead of queued.
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func (g *inflight) acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.keys == nil {
		g.keys = make(map[string]struct{})
	}
	if _, busy := g.keys[key]; busy {
		return nil, false
	}
	g.keys[key] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.keys, key)
		g.mu.Unlock()
	}, true
}

func (g *inflight) busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.keys) > 0
}

func busy(key string) error {
	return &Failure{Kind: ErrBusy, Message: "another request for " + key + " is still running"}
}
