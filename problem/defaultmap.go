// File: defaultmap.go
// Role: "Default map" containers (§9 design notes): (explicit mapping,
// default value) with a single accessor that returns the explicit value or
// the default. No inheritance, no wrapper types per key — a direct
// generalization of the teacher's builderConfig "resolve with a fallback"
// idiom into a reusable container.
package problem

// DefaultMap is a single-key lookup table with a fallback default.
type DefaultMap[K comparable, V any] struct {
	explicit map[K]V
	def      V
}

// NewDefaultMap creates a DefaultMap with the given default value.
func NewDefaultMap[K comparable, V any](def V) DefaultMap[K, V] {
	return DefaultMap[K, V]{explicit: make(map[K]V), def: def}
}

// Get returns the explicit value for k, or the default if unset.
func (m DefaultMap[K, V]) Get(k K) V {
	if v, ok := m.explicit[k]; ok {
		return v
	}
	return m.def
}

// Lookup returns the explicit value for k and whether it was set explicitly.
func (m DefaultMap[K, V]) Lookup(k K) (V, bool) {
	v, ok := m.explicit[k]
	return v, ok
}

// Set stores an explicit value for k.
func (m *DefaultMap[K, V]) Set(k K, v V) {
	m.explicit[k] = v
}

// Default returns the fallback value used when a key has no explicit entry.
func (m DefaultMap[K, V]) Default() V { return m.def }

// PairKey is the two-operation key used by setup-time and due-date tables.
type PairKey struct {
	Src, Dst OperationKey
}

// PairDefaultMap is a DefaultMap specialized for (Operation, Operation) keys.
type PairDefaultMap = DefaultMap[PairKey, Delay]

// NewPairDefaultMap creates a PairDefaultMap with the given default.
func NewPairDefaultMap(def Delay) PairDefaultMap {
	return NewDefaultMap[PairKey, Delay](def)
}
