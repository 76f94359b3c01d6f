package transaction

import "sort"

// PageSize is the number of rows shown per page of transaction history.
const PageSize = 10

// Merge combines two transaction sources into a single sequence sorted by
// descending date. The sort is not stable; entries sharing a date may appear
// in either relative order.
func Merge(a, b []Transaction) []Transaction {
	merged := make([]Transaction, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	return merged
}

// TotalPages returns the number of pages needed to show n transactions.
// An empty feed still has one (empty) page.
func TotalPages(n int) int {
	if n == 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Paginate returns the slice for page p (1-based): rows [(p-1)*10, p*10).
// Out-of-range pages yield an empty slice.
func Paginate(txs []Transaction, page int) []Transaction {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(txs) {
		return []Transaction{}
	}
	end := start + PageSize
	if end > len(txs) {
		end = len(txs)
	}
	return txs[start:end]
}
