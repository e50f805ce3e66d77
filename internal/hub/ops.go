package hub

// Mutation operations. Each returns a new slice and never modifies its input,
// so a repository can compute the next state before committing it.

func appendItem[T any](items []T, v T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, items...)
	return append(next, v)
}

func prependItem[T any](items []T, v T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, v)
	return append(next, items...)
}

// removeByID drops every item whose id matches. ok is false when nothing
// matched, in which case items is returned as is.
func removeByID[T any](items []T, id string, idOf func(T) string) (next []T, ok bool) {
	next = make([]T, 0, len(items))
	for _, it := range items {
		if idOf(it) == id {
			ok = true
			continue
		}
		next = append(next, it)
	}
	if !ok {
		return items, false
	}
	return next, true
}

// replaceByID applies fn to the item with the given id.
func replaceByID[T any](items []T, id string, idOf func(T) string, fn func(T) T) (next []T, ok bool) {
	next = make([]T, len(items))
	copy(next, items)
	for i, it := range next {
		if idOf(it) == id {
			next[i] = fn(it)
			ok = true
		}
	}
	if !ok {
		return items, false
	}
	return next, true
}

func findByID[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, it := range items {
		if idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
