package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Record is one object of a scene file: a light, a material, an entity, an
// asset section. Values are whatever the file decoder produced; the typed
// accessors below normalize them and fall back to the supplied default when
// the key is absent or holds a value of the wrong shape.
type Record map[string]any

// AsRecord reports whether v is a well-formed object and returns it as a Record.
func AsRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, m != nil
	case map[string]any:
		return Record(m), m != nil
	case map[any]any:
		r := make(Record, len(m))
		for k, val := range m {
			r[fmt.Sprint(k)] = val
		}
		return r, true
	}
	return nil, false
}

// Has reports whether key is present, even if it holds null.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the string under key, or def.
func (r Record) String(key, def string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return def
}

// Bool returns the bool under key, or def.
func (r Record) Bool(key string, def bool) bool {
	if b, ok := r[key].(bool); ok {
		return b
	}
	return def
}

// Float returns the number under key, or def.
func (r Record) Float(key string, def float32) float32 {
	if f, ok := toFloat(r[key]); ok {
		return f
	}
	return def
}

// Int returns the number under key truncated to an int, or def.
func (r Record) Int(key string, def int) int {
	if f, ok := toFloat(r[key]); ok {
		return int(f)
	}
	return def
}

// Vec2 returns the 2-vector under key, or def.
func (r Record) Vec2(key string, def mgl32.Vec2) mgl32.Vec2 {
	var v mgl32.Vec2
	if readFloats(r[key], v[:]) {
		return v
	}
	return def
}

// Vec3 returns the 3-vector under key, or def.
func (r Record) Vec3(key string, def mgl32.Vec3) mgl32.Vec3 {
	var v mgl32.Vec3
	if readFloats(r[key], v[:]) {
		return v
	}
	return def
}

// Vec4 returns the 4-vector under key, or def.
func (r Record) Vec4(key string, def mgl32.Vec4) mgl32.Vec4 {
	var v mgl32.Vec4
	if readFloats(r[key], v[:]) {
		return v
	}
	return def
}

// Bool4 returns a 4-element bool array under key, or def.
func (r Record) Bool4(key string, def [4]bool) [4]bool {
	list, ok := r[key].([]any)
	if !ok || len(list) < 4 {
		return def
	}
	var out [4]bool
	for i := range out {
		b, ok := list[i].(bool)
		if !ok {
			return def
		}
		out[i] = b
	}
	return out
}

// Record returns the nested object under key.
func (r Record) Record(key string) (Record, bool) {
	return AsRecord(r[key])
}

// List returns the array under key.
func (r Record) List(key string) ([]any, bool) {
	l, ok := r[key].([]any)
	return l, ok
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case int32:
		return float32(n), true
	case uint64:
		return float32(n), true
	}
	return 0, false
}

// readFloats fills dst from a numeric array holding at least len(dst) elements.
func readFloats(v any, dst []float32) bool {
	list, ok := v.([]any)
	if !ok || len(list) < len(dst) {
		return false
	}
	for i := range dst {
		f, ok := toFloat(list[i])
		if !ok {
			return false
		}
		dst[i] = f
	}
	return true
}
