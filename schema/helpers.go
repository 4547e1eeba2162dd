package schema

import "fmt"

// MethodKey joins a class and method name into the canonical snapshot key.
func MethodKey(className, methodName string) string {
	return className + "." + methodName
}

// Float64Ptr returns a pointer to v. Used when populating the optional sides
// of a ComparisonResult.
func Float64Ptr(v float64) *float64 {
	return &v
}

// FormatOptionalAvg renders an optional average for human output, using a
// dash for the absent side of a new/removed entry.
func FormatOptionalAvg(v *float64, precision int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", precision, *v)
}

// FormatOptionalPct renders an optional percentage change with a sign and a
// trailing percent symbol, or a dash when absent.
func FormatOptionalPct(v *float64, precision int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%+.*f%%", precision, *v)
}

// CountByDiffType tallies comparison results per diff type.
func CountByDiffType(results []ComparisonResult) map[DiffType]int {
	counts := make(map[DiffType]int, len(results))
	for _, r := range results {
		counts[r.DiffType]++
	}
	return counts
}
