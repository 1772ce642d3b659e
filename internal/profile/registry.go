package profile

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// Registry holds card profiles keyed by case-insensitive id. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]Profile)}
}

// Get returns the profile for id.
func (r *Registry) Get(id string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[strings.ToLower(id)]
	return p, ok
}

// AddOrReplace validates p and stores it, replacing any profile with the
// same id.
func (r *Registry) AddOrReplace(p Profile) error {
	if verrs := Validate(p); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, e := range verrs {
			errs[i] = e
		}
		return errors.Join(errs...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[strings.ToLower(p.ID)] = p
	return nil
}

// Remove deletes the profile for id. It reports whether one was removed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(id)
	if _, ok := r.profiles[key]; !ok {
		return false
	}
	delete(r.profiles, key)
	return true
}

// All returns every profile sorted by id.
func (r *Registry) All() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Default returns a registry holding the built-in bank profiles.
func Default() *Registry {
	r := NewRegistry()
	for _, p := range builtins() {
		if err := r.AddOrReplace(p); err != nil {
			panic("invalid built-in profile: " + err.Error())
		}
	}
	return r
}
