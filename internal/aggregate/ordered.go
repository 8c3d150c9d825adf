// Package aggregate groups time entries into duration buckets.
package aggregate

// Ordered is a map that remembers the order in which keys were first set.
type Ordered[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrdered returns an empty Ordered map.
func NewOrdered[K comparable, V any]() *Ordered[K, V] {
	return &Ordered[K, V]{values: map[K]V{}}
}

// Set stores v under k. An existing key keeps its position.
func (o *Ordered[K, V]) Set(k K, v V) {
	if _, ok := o.values[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.values[k] = v
}

// Get returns the value stored under k.
func (o *Ordered[K, V]) Get(k K) (V, bool) {
	v, ok := o.values[k]
	return v, ok
}

// Len returns the number of keys.
func (o *Ordered[K, V]) Len() int { return len(o.keys) }

// Keys returns the keys in insertion order.
func (o *Ordered[K, V]) Keys() []K {
	out := make([]K, len(o.keys))
	copy(out, o.keys)
	return out
}

// Each calls fn for every key in insertion order.
func (o *Ordered[K, V]) Each(fn func(k K, v V)) {
	for _, k := range o.keys {
		fn(k, o.values[k])
	}
}
