package report

import "sort"

// Aggregate reduces the matched entries into totals over the full set and the
// pending-only display list, sorted by descending pending amount with ties
// broken by descending amount paid.
func Aggregate(entries []Entry) ([]Entry, Totals) {
	var totals Totals
	pending := make([]Entry, 0)

	for _, e := range entries {
		totals.Expected += e.ActualAmount
		totals.Received += e.AmountPaid
		totals.Pending += e.Pending
		totals.CountAll++
		if e.Pending > 0 {
			totals.CountPending++
			pending = append(pending, e)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].Pending != pending[j].Pending {
			return pending[i].Pending > pending[j].Pending
		}
		return pending[i].AmountPaid > pending[j].AmountPaid
	})

	return pending, totals
}
