package match

import "sort"

// rank retains results whose combined score passes the threshold (inclusive
// boundary), orders them by descending score and truncates to topK. The sort
// is stable: ties keep their original dedup-surviving order. Asking for more
// than passed the threshold returns everything that did.
func rank(results []*Result, threshold float64, topK int) []*Result {
	kept := make([]*Result, 0, len(results))
	for _, r := range results {
		if r.Score >= threshold {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if topK < len(kept) {
		kept = kept[:topK]
	}
	return kept
}
