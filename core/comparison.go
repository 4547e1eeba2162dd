package core

import (
	"math"
	"sort"

	"github.com/tracelens/tracelens/schema"
)

// CompareSnapshots produces one ComparisonResult per method key present in
// either snapshot, classified against the given regression threshold
// (a percentage, e.g. 5.0 for 5%). The threshold comparison is strict, so a
// change exactly equal to the threshold is unchanged.
//
// Results are sorted by absolute change magnitude descending; new/removed
// entries sort with magnitude 0 and ties break on method key ascending so
// output order is reproducible.
func CompareSnapshots(baseline, current schema.Snapshot, threshold float64) []schema.ComparisonResult {
	allKeys := make(map[string]struct{}, len(baseline)+len(current))
	for key := range baseline {
		allKeys[key] = struct{}{}
	}
	for key := range current {
		allKeys[key] = struct{}{}
	}

	results := make([]schema.ComparisonResult, 0, len(allKeys))
	for key := range allKeys {
		base, inBaseline := baseline[key]
		cur, inCurrent := current[key]

		switch {
		case inBaseline && inCurrent:
			results = append(results, compareMethod(key, base, cur, threshold))
		case inBaseline:
			results = append(results, schema.ComparisonResult{
				MethodKey:   key,
				BaselineAvg: schema.Float64Ptr(base.AverageDuration),
				DiffType:    schema.RemovedDiff,
			})
		default:
			results = append(results, schema.ComparisonResult{
				MethodKey:  key,
				CurrentAvg: schema.Float64Ptr(cur.AverageDuration),
				DiffType:   schema.NewDiff,
			})
		}
	}

	sortComparisonResults(results)
	return results
}

// compareMethod computes the deltas for a method present in both snapshots.
//
// A baseline average of exactly zero makes the relative change undefined. In
// that case the percentage stays unset and classification falls back to the
// sign of the absolute change, so no non-finite value ever reaches serialized
// output.
func compareMethod(key string, base, cur schema.MethodStats, threshold float64) schema.ComparisonResult {
	absoluteChange := cur.AverageDuration - base.AverageDuration
	result := schema.ComparisonResult{
		MethodKey:      key,
		BaselineAvg:    schema.Float64Ptr(base.AverageDuration),
		CurrentAvg:     schema.Float64Ptr(cur.AverageDuration),
		AbsoluteChange: schema.Float64Ptr(absoluteChange),
	}

	if base.AverageDuration == 0 {
		switch {
		case absoluteChange > 0:
			result.DiffType = schema.RegressedDiff
		case absoluteChange < 0:
			result.DiffType = schema.ImprovedDiff
		default:
			result.DiffType = schema.UnchangedDiff
		}
		return result
	}

	percentageChange := absoluteChange / base.AverageDuration * 100
	result.PercentageChange = schema.Float64Ptr(percentageChange)

	switch {
	case percentageChange > threshold:
		result.DiffType = schema.RegressedDiff
	case percentageChange < -threshold:
		result.DiffType = schema.ImprovedDiff
	default:
		result.DiffType = schema.UnchangedDiff
	}
	return result
}

// sortComparisonResults sorts by absolute change magnitude (descending),
// breaking ties by method key (ascending).
func sortComparisonResults(results []schema.ComparisonResult) {
	sort.Slice(results, func(i, j int) bool {
		magI := changeMagnitude(results[i])
		magJ := changeMagnitude(results[j])
		if magI != magJ {
			return magI > magJ
		}
		return results[i].MethodKey < results[j].MethodKey
	})
}

// changeMagnitude treats entries without an absolute change (new/removed) as
// magnitude zero for sort purposes.
func changeMagnitude(r schema.ComparisonResult) float64 {
	if r.AbsoluteChange == nil {
		return 0
	}
	return math.Abs(*r.AbsoluteChange)
}
