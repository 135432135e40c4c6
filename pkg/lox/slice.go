package lox

func Map[T, R any](collection []T, iteratee func(item T) R) []R {
	result := make([]R, len(collection))

	for i, item := range collection {
		result[i] = iteratee(item)
	}

	return result
}

// GroupByOrdered groups items by key keeping the first-seen order of keys and
// the input order of items inside each group.
func GroupByOrdered[T any, K comparable](collection []T, key func(item T) K) [][]T {
	index := make(map[K]int, len(collection))
	groups := make([][]T, 0)

	for _, item := range collection {
		k := key(item)

		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}

		groups[i] = append(groups[i], item)
	}

	return groups
}
