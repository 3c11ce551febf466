package render

import (
	"sort"

	"github.com/ppiankov/candor/internal/model"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedStatuses orders by count, then name
func sortedStatuses(dist map[model.Status]int) []model.Status {
	out := make([]model.Status, 0, len(dist))
	for s := range dist {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if dist[out[i]] != dist[out[j]] {
			return dist[out[i]] > dist[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
