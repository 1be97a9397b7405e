package collectionutils

func Associate[T any, K comparable, V any](items []T, f func(T) (K, V)) map[K]V {
	result := make(map[K]V, len(items))
	for _, item := range items {
		k, v := f(item)
		result[k] = v
	}
	return result
}

func GetOrDefault[K comparable, V any](m map[K]V, key K, defaultValue V) V {
	v, ok := m[key]
	if !ok {
		return defaultValue
	}
	return v
}

// Deduplicate keeps the first occurrence of each value, preserving order.
func Deduplicate[T comparable](items []T) []T {
	seen := make(map[T]bool, len(items))
	result := make([]T, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}
