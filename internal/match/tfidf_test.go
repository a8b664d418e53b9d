package match

import (
	"context"
	"math"
	"testing"
)

func TestTfidfIdenticalDocuments(t *testing.T) {
	t.Parallel()

	v := newTfidfVectorizer()
	docs := []string{
		"python machine learning engineer",
		"python machine learning engineer",
		"accountant with excel experience",
	}
	if err := v.Fit(context.Background(), docs); err != nil {
		t.Fatalf("unexpected fit error: %v", err)
	}

	a, _ := v.Vector(context.Background(), 0)
	b, _ := v.Vector(context.Background(), 1)
	c, _ := v.Vector(context.Background(), 2)

	if sim := cosine(a, b); math.Abs(sim-1) > 1e-9 {
		t.Fatalf("identical documents should have similarity 1, got %v", sim)
	}
	if sim := cosine(a, c); sim >= 0.5 {
		t.Fatalf("unrelated documents should score low, got %v", sim)
	}
}

func TestTfidfRelativeOrdering(t *testing.T) {
	t.Parallel()

	v := newTfidfVectorizer()
	docs := []string{
		"senior python developer with aws and docker experience",
		"python developer role using aws cloud services",
		"restaurant shift manager wanted",
	}
	if err := v.Fit(context.Background(), docs); err != nil {
		t.Fatalf("unexpected fit error: %v", err)
	}

	candidate, _ := v.Vector(context.Background(), 0)
	related, _ := v.Vector(context.Background(), 1)
	unrelated, _ := v.Vector(context.Background(), 2)

	simRelated := cosine(candidate, related)
	simUnrelated := cosine(candidate, unrelated)

	if simRelated <= simUnrelated {
		t.Fatalf("expected related posting to outrank unrelated: %v <= %v", simRelated, simUnrelated)
	}
}

func TestTfidfVectorBeforeFit(t *testing.T) {
	t.Parallel()

	v := newTfidfVectorizer()
	if _, err := v.Vector(context.Background(), 0); err == nil {
		t.Fatal("expected an error before Fit")
	}
}

func TestTfidfFitRejectsUnindexableCorpus(t *testing.T) {
	t.Parallel()

	v := newTfidfVectorizer()
	if err := v.Fit(context.Background(), []string{"...", "!!"}); err == nil {
		t.Fatal("expected an error for a corpus with no indexable terms")
	}
}

func TestTfidfWeights(t *testing.T) {
	t.Parallel()

	w := newTfidfVectorizer().Weights()
	if w.Similarity != 0.6 || w.Coverage != 0.4 {
		t.Fatalf("unexpected fallback weights: %+v", w)
	}
}

func TestTokenizeKeepsCompoundTerms(t *testing.T) {
	t.Parallel()

	terms := tokenize("CI/CD with scikit-learn, C# and .NET!")
	found := make(map[string]bool, len(terms))
	for _, term := range terms {
		found[term] = true
	}

	for _, want := range []string{"scikit-learn", "ci", "cd", "net"} {
		if !found[want] {
			t.Fatalf("expected term %q in %v", want, terms)
		}
	}
}

func TestCosineEdgeCases(t *testing.T) {
	t.Parallel()

	if got := cosine(nil, nil); got != 0 {
		t.Fatalf("expected 0 for empty vectors, got %v", got)
	}
	if got := cosine([]float64{1, 0}, []float64{0, 0}); got != 0 {
		t.Fatalf("expected 0 for a zero vector, got %v", got)
	}
	if got := cosine([]float64{1, 2}, []float64{1, 2, 3}); got != 0 {
		t.Fatalf("expected 0 for mismatched lengths, got %v", got)
	}
}
