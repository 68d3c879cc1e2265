package schedule

import "sort"

// RunAlertThreshold is the consecutive-duty length at which a run becomes
// alertable.
const RunAlertThreshold = 6

// ConsecutiveRuns groups the given day numbers into maximal consecutive
// runs: input is deduplicated and sorted, then adjacent values differing by
// exactly one share a run. An empty input yields no runs; an isolated day is
// a run of length one.
//
// The same grouping serves vehicle occupancy and driver duty-day analysis.
func ConsecutiveRuns(days []int) [][]int {
	if len(days) == 0 {
		return nil
	}
	uniq := make([]int, 0, len(days))
	seen := map[int]struct{}{}
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		uniq = append(uniq, d)
	}
	sort.Ints(uniq)

	var runs [][]int
	current := []int{uniq[0]}
	for _, d := range uniq[1:] {
		if d == current[len(current)-1]+1 {
			current = append(current, d)
			continue
		}
		runs = append(runs, current)
		current = []int{d}
	}
	return append(runs, current)
}

// Alertable reports whether a run is long enough to warrant an alert.
func Alertable(run []int) bool {
	return len(run) >= RunAlertThreshold
}
