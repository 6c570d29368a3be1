package typebus

// Combinators for subscription filters.

// And combines filters with AND logic; every filter must accept the event.
func And[T any](filters ...func(T) bool) func(T) bool {
	return func(event T) bool {
		for _, f := range filters {
			if !f(event) {
				return false
			}
		}
		return true
	}
}

// Or combines filters with OR logic; at least one must accept the event.
func Or[T any](filters ...func(T) bool) func(T) bool {
	return func(event T) bool {
		for _, f := range filters {
			if f(event) {
				return true
			}
		}
		return false
	}
}

// Not negates a filter.
func Not[T any](filter func(T) bool) func(T) bool {
	return func(event T) bool {
		return !filter(event)
	}
}
