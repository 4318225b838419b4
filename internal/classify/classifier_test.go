package classify

import (
	"errors"
	"reflect"
	"testing"

	"github.com/clausekit/clausekit/internal/catalog"
	"github.com/clausekit/clausekit/internal/segment"
)

func newClassifier(t *testing.T, threshold float64) *Classifier {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}
	return New(cat, threshold)
}

func classify(t *testing.T, c *Classifier, content string, categories []string) []string {
	t.Helper()
	labels, err := c.Classify(segment.Segment{Content: content}, categories)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	return labels
}

func TestClassifyPaymentContent(t *testing.T) {
	c := newClassifier(t, 0)
	got := classify(t, c, "Payment shall be made within 30 days of invoice.",
		[]string{catalog.CategoryPaymentTerms, catalog.CategoryTermination})
	want := []string{catalog.CategoryPaymentTerms}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyTerminationContent(t *testing.T) {
	c := newClassifier(t, 0)
	got := classify(t, c, "Either party may terminate with notice.",
		[]string{catalog.CategoryPaymentTerms, catalog.CategoryTermination})
	want := []string{catalog.CategoryTermination}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyNoMatchIsEmpty(t *testing.T) {
	c := newClassifier(t, 0)
	got := classify(t, c, "Terms mean...", nil)
	if len(got) != 0 {
		t.Errorf("expected no categories, got %v", got)
	}
}

func TestClassifyMultipleCategories(t *testing.T) {
	c := newClassifier(t, 0)
	content := "The receiving party shall keep confidential information secret and may terminate this agreement for breach."
	got := classify(t, c, content,
		[]string{catalog.CategoryConfidentiality, catalog.CategoryTermination})
	// Equal scores tie-break on label so output stays deterministic.
	want := []string{catalog.CategoryConfidentiality, catalog.CategoryTermination}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyOrderedByDescendingScore(t *testing.T) {
	c := newClassifier(t, 0)
	// Two payment hits outscore one termination hit.
	content := "Payment of each invoice is due; late payers risk having the supplier terminate."
	got := classify(t, c, content,
		[]string{catalog.CategoryTermination, catalog.CategoryPaymentTerms})
	want := []string{catalog.CategoryPaymentTerms, catalog.CategoryTermination}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyWeakTermsAccumulate(t *testing.T) {
	c := newClassifier(t, 0)

	// One weak term stays below the threshold.
	got := classify(t, c, "Any harm suffered by the customer.",
		[]string{catalog.CategoryLiability})
	if len(got) != 0 {
		t.Errorf("single weak term classified: %v", got)
	}

	// Two weak terms sum to the threshold.
	got = classify(t, c, "Any harm or loss suffered by the customer.",
		[]string{catalog.CategoryLiability})
	want := []string{catalog.CategoryLiability}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := newClassifier(t, 0)
	got := classify(t, c, "PAYMENT IS DUE UPON RECEIPT OF INVOICE.",
		[]string{catalog.CategoryPaymentTerms})
	want := []string{catalog.CategoryPaymentTerms}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyUnknownCategory(t *testing.T) {
	c := newClassifier(t, 0)
	labels, err := c.Classify(segment.Segment{Content: "anything"}, []string{"Bogus"})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if labels != nil {
		t.Errorf("expected nil labels, got %v", labels)
	}
	var unknown *catalog.UnknownCategoryError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCategoryError, got %T", err)
	}
	if unknown.Label != "Bogus" {
		t.Errorf("expected label %q, got %q", "Bogus", unknown.Label)
	}
}

func TestClassifyRespectsThreshold(t *testing.T) {
	if got := newClassifier(t, 0).Threshold(); got != DefaultThreshold {
		t.Errorf("default threshold = %v, want %v", got, DefaultThreshold)
	}
	if got := newClassifier(t, 2.5).Threshold(); got != 2.5 {
		t.Errorf("threshold = %v, want 2.5", got)
	}

	// A single direct hit (weight 1.0) no longer clears a raised bar.
	strict := newClassifier(t, 2.0)
	got := classify(t, strict, "Either party may terminate with notice.",
		[]string{catalog.CategoryTermination})
	if len(got) != 0 {
		t.Errorf("expected no categories above threshold 2.0, got %v", got)
	}
}

func TestScoreCountsEachPatternOnce(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}
	pats, err := cat.CategoryPatterns([]string{catalog.CategoryPaymentTerms})
	if err != nil {
		t.Fatalf("CategoryPatterns failed: %v", err)
	}
	payment := pats[catalog.CategoryPaymentTerms]

	once := Score("payment", payment)
	repeated := Score("payment payment payment", payment)
	if once != repeated {
		t.Errorf("repeated matches changed score: %v vs %v", once, repeated)
	}

	// Adding text that matches another pattern never lowers the score.
	more := Score("payment due on invoice", payment)
	if more < once {
		t.Errorf("score decreased when matching text was added: %v < %v", more, once)
	}
	if more <= once {
		t.Errorf("expected invoice hit to raise score above %v, got %v", once, more)
	}
}
