// Package presence tracks which users currently hold a live socket
// connection, and through which connection id.
package presence

import "sync"

// Entry maps a user to one live connection.
type Entry struct {
	UserID int64
	ConnID string
}

// Registry is the process-local online-user registry. It is created on
// startup, lives for the lifetime of the process, and holds at most one
// entry per user: the first connection to announce a user wins, later
// announcements for the same user are ignored until that connection goes
// away.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a connection for the user. Returns false without
// modifying the registry if the user already has a connection.
func (r *Registry) Add(userID int64, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.UserID == userID {
			return false
		}
	}
	r.entries = append(r.entries, Entry{UserID: userID, ConnID: connID})
	return true
}

// RemoveConn removes every entry registered under the given connection id.
// Removing an unknown connection is a no-op.
func (r *Registry) RemoveConn(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.ConnID != connID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

// Get returns the entry for the user, if one exists.
func (r *Registry) Get(userID int64) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.UserID == userID {
			return e, true
		}
	}
	return Entry{}, false
}

// Snapshot returns a copy of all current entries.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
