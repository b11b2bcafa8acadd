package memory

import "sort"

// sortByCreatedAtDesc orders DTOs newest first, matching the SQL listing
// queries.
func sortByCreatedAtDesc[T any](items []T, createdAt func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]) > createdAt(items[j])
	})
}
