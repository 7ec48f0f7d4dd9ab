// Package presets maps station identifiers to schemas.
package presets

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/zachfi/nowplaying/pkg/schema"
)

// ErrUnknownPreset is returned when a station name has no schema. Unlike
// upstream trouble this is a caller error, so it is never swallowed.
var ErrUnknownPreset = errors.New("unknown preset")

// Registry is safe for concurrent use; Replace swaps the whole set at once.
type Registry struct {
	mtx     sync.RWMutex
	schemas map[string]schema.RadioSchema
}

func NewRegistry(schemas ...schema.RadioSchema) *Registry {
	r := &Registry{}
	r.Replace(schemas)
	return r
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (schema.RadioSchema, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	s, ok := r.schemas[name]
	if !ok {
		return schema.RadioSchema{}, errors.Wrapf(ErrUnknownPreset, "no schema found for config %q", name)
	}
	return s, nil
}

// Replace installs schemas, keyed by their name. Later entries win.
func (r *Registry) Replace(schemas []schema.RadioSchema) {
	m := make(map[string]schema.RadioSchema, len(schemas))
	for _, s := range schemas {
		m[s.Name] = s
	}

	r.mtx.Lock()
	r.schemas = m
	r.mtx.Unlock()
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for n := range r.schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
