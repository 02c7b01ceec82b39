package collection

// CountBy 按字段分组计数
func CountBy[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, item := range items {
		out[key(item)]++
	}
	return out
}

// SumBy 按字段分组求和
func SumBy[T any](items []T, key func(T) string, value func(T) float64) map[string]float64 {
	out := make(map[string]float64)
	for _, item := range items {
		out[key(item)] += value(item)
	}
	return out
}

// Sum 满足条件的记录求和
func Sum[T any](items []T, value func(T) float64, preds ...Predicate[T]) float64 {
	var total float64
	for _, item := range items {
		if matchAll(item, preds) {
			total += value(item)
		}
	}
	return total
}

// Count 满足条件的记录数
func Count[T any](items []T, preds ...Predicate[T]) int {
	n := 0
	for _, item := range items {
		if matchAll(item, preds) {
			n++
		}
	}
	return n
}
