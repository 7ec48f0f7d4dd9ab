package presets

import "github.com/zachfi/nowplaying/pkg/schema"

// Source selects a schema either by preset name or by value.
type Source interface {
	resolve(*Registry) (schema.RadioSchema, error)
}

// ByName refers to a preset in a Registry.
type ByName string

// BySchema carries a schema directly.
type BySchema schema.RadioSchema

func (n ByName) resolve(r *Registry) (schema.RadioSchema, error) {
	return r.Lookup(string(n))
}

func (s BySchema) resolve(*Registry) (schema.RadioSchema, error) {
	return schema.RadioSchema(s), nil
}

// Resolve turns src into a schema. Only ByName can fail, with
// ErrUnknownPreset.
func (r *Registry) Resolve(src Source) (schema.RadioSchema, error) {
	return src.resolve(r)
}
