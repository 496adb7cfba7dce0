// Package autolayout holds the registry of auto layout generators and the
// built-in Default generator.
package autolayout

import (
	"fmt"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// Entry is one registered generator.
type Entry struct {
	Owner     string
	Name      string
	Generator types.Generator
}

// Registry maps unique names to generators. It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds gen under name. Returns ErrGeneratorExists if the name is
// taken and ErrInvalidGenerator if name is blank or gen is nil.
func (r *Registry) Register(owner, name string, gen types.Generator) error {
	if strings.TrimSpace(name) == "" || gen == nil {
		return types.ErrInvalidGenerator
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.Name == name {
			return fmt.Errorf("%w: %q", types.ErrGeneratorExists, name)
		}
	}
	r.entries = append(r.entries, Entry{Owner: owner, Name: name, Generator: gen})
	return nil
}

// Unregister removes the generator registered under name, if any.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.Name == name {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

// Lookup returns the generator registered under name. An unknown name
// returns an error wrapping ErrGeneratorNotFound that suggests the closest
// registered name when one is near.
func (r *Registry) Lookup(name string) (types.Generator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	best, bestDist := "", -1
	for _, e := range r.entries {
		if e.Name == name {
			return e.Generator, nil
		}
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(e.Name))
		if bestDist == -1 || d < bestDist {
			best, bestDist = e.Name, d
		}
	}
	if bestDist != -1 && bestDist <= max(2, len(best)/3) {
		return nil, fmt.Errorf("%w: %q (did you mean %q?)", types.ErrGeneratorNotFound, name, best)
	}
	return nil, fmt.Errorf("%w: %q", types.ErrGeneratorNotFound, name)
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the registered entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
