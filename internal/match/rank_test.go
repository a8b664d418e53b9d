package match

import (
	"fmt"
	"testing"

	"github.com/arpitpandey99/jobmatcher/internal/posting"
)

func resultsWithScores(scores ...float64) []*Result {
	out := make([]*Result, len(scores))
	for i, s := range scores {
		out[i] = &Result{
			Posting: &posting.Posting{ID: fmt.Sprintf("p-%d", i)},
			Score:   s,
		}
	}
	return out
}

func TestRankInclusiveThreshold(t *testing.T) {
	t.Parallel()

	results := resultsWithScores(0.9, 0.8, 0.7, 0.6, 0.55, 0.5, 0.4, 0.3, 0.2, 0.1)
	kept := rank(results, 0.5, 100)

	if len(kept) != 6 {
		t.Fatalf("expected exactly 6 results, got %d", len(kept))
	}
	for i := 1; i < len(kept); i++ {
		if kept[i].Score > kept[i-1].Score {
			t.Fatalf("results not in descending order at %d: %v > %v", i, kept[i].Score, kept[i-1].Score)
		}
	}
	if kept[len(kept)-1].Score != 0.5 {
		t.Fatalf("expected the boundary 0.5 entry included, got %v", kept[len(kept)-1].Score)
	}
}

func TestRankThresholdMonotonicity(t *testing.T) {
	t.Parallel()

	results := resultsWithScores(0.9, 0.3, 0.75, 0.5, 0.5, 0.1, 0.66)

	lower := rank(results, 0.3, 100)
	higher := rank(results, 0.6, 100)

	if len(higher) > len(lower) {
		t.Fatalf("raising the threshold grew the result set: %d > %d", len(higher), len(lower))
	}

	lowerIDs := make(map[string]bool, len(lower))
	for _, r := range lower {
		lowerIDs[r.Posting.ID] = true
	}
	for _, r := range higher {
		if !lowerIDs[r.Posting.ID] {
			t.Fatalf("result %s present at t=0.6 but absent at t=0.3", r.Posting.ID)
		}
	}
}

func TestRankTopKBound(t *testing.T) {
	t.Parallel()

	results := resultsWithScores(0.9, 0.8, 0.7, 0.6)

	if kept := rank(results, 0.5, 2); len(kept) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(kept))
	}
	// K beyond the filtered count is not an error; everything comes back.
	if kept := rank(results, 0.5, 50); len(kept) != 4 {
		t.Fatalf("expected all 4 results, got %d", len(kept))
	}
}

func TestRankStableOnTies(t *testing.T) {
	t.Parallel()

	results := resultsWithScores(0.7, 0.9, 0.7, 0.7)
	kept := rank(results, 0, 10)

	if kept[0].Posting.ID != "p-1" {
		t.Fatalf("expected the 0.9 result first, got %s", kept[0].Posting.ID)
	}
	for i, want := range []string{"p-0", "p-2", "p-3"} {
		if kept[i+1].Posting.ID != want {
			t.Fatalf("tie order not preserved at %d: expected %s, got %s", i+1, want, kept[i+1].Posting.ID)
		}
	}
}
