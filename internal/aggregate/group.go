package aggregate

// GroupBy puts every item into the group named by key.
func GroupBy[T any, K comparable](items []T, key func(T) K) *Ordered[K, []T] {
	return GroupByKeys(items, func(item T) []K { return []K{key(item)} })
}

// GroupByKeys puts every item into each group named by keys. Items for which
// keys returns nothing are dropped; duplicate keys are collapsed.
func GroupByKeys[T any, K comparable](items []T, keys func(T) []K) *Ordered[K, []T] {
	groups := NewOrdered[K, []T]()
	for _, item := range items {
		seen := make(map[K]struct{})
		for _, k := range keys(item) {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			group, _ := groups.Get(k)
			groups.Set(k, append(group, item))
		}
	}
	return groups
}

// Reduce folds every group into a single value, keeping group order.
func Reduce[K comparable, T, V any](groups *Ordered[K, []T], fn func([]T) V) *Ordered[K, V] {
	out := NewOrdered[K, V]()
	groups.Each(func(k K, items []T) {
		out.Set(k, fn(items))
	})
	return out
}
