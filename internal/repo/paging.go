package repo

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// page slices items by offset and limit, returning the window and the total count.
func page[T any](items []T, offset, limit *int) ([]T, int) {
	total := len(items)
	if offset != nil && *offset > total {
		return []T{}, total
	}

	start := 0
	if offset != nil {
		start = clamp(*offset, 0, total)
	}

	end := total
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, total)
	}

	return items[start:end], total
}
