package lines

import (
	"slices"
)

// Cluster groups sorted candidates whose distance to the previous member of
// the current group is at most threshold, and returns the median member of
// each group.
func Cluster(candidates []int, threshold int) []int {
	if len(candidates) == 0 {
		return nil
	}
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	var reps []int
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || sorted[i]-sorted[i-1] > threshold {
			group := sorted[start:i]
			reps = append(reps, group[len(group)/2])
			start = i
		}
	}
	return reps
}
