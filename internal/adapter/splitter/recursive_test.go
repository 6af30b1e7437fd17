package splitter

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"logtriage/internal/domain"
)

func TestNewRecursiveSplitterValidation(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{"valid", 500, 50, false},
		{"zero overlap", 100, 0, false},
		{"size one", 1, 0, false},
		{"zero size", 0, 0, true},
		{"negative size", -5, 0, true},
		{"overlap equals size", 10, 10, true},
		{"overlap exceeds size", 10, 15, true},
		{"negative overlap", 10, -1, true},
	}

	for _, tc := range cases {
		_, err := NewRecursiveSplitter(tc.size, tc.overlap)
		if tc.wantErr && !errors.Is(err, ErrInvalidChunking) {
			t.Errorf("%s: expected ErrInvalidChunking, got %v", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestSplitEmptyInput(t *testing.T) {
	s, err := NewRecursiveSplitter(100, 10)
	if err != nil {
		t.Fatal(err)
	}
	if pieces := s.Split(""); len(pieces) != 0 {
		t.Errorf("expected no pieces for empty input, got %d", len(pieces))
	}
}

func TestSplitShortInput(t *testing.T) {
	s, err := NewRecursiveSplitter(100, 10)
	if err != nil {
		t.Fatal(err)
	}
	text := "fits in one chunk"
	pieces := s.Split(text)
	if len(pieces) != 1 || pieces[0] != text {
		t.Errorf("expected single piece %q, got %v", text, pieces)
	}
}

func TestSplitBound(t *testing.T) {
	texts := []string{
		"Paragraph one.\n\nParagraph two goes on for a while with several words.\n\nThird paragraph here.",
		"one two three four five six seven eight nine ten eleven twelve thirteen",
		"line one\nline two\nline three\nline four\nline five\nline six",
		strings.Repeat("abcdefghij", 50),
		"a single enormous token with no separators " + strings.Repeat("z", 300),
	}
	sizes := []int{5, 10, 37, 100}

	for _, size := range sizes {
		s, err := NewRecursiveSplitter(size, 0)
		if err != nil {
			t.Fatal(err)
		}
		for _, text := range texts {
			for i, piece := range s.Split(text) {
				if len(piece) > size {
					t.Errorf("size=%d piece %d exceeds bound: len=%d %q", size, i, len(piece), piece)
				}
				if piece == "" {
					t.Errorf("size=%d piece %d is empty", size, i)
				}
			}
		}
	}
}

// With zero overlap, splitting only ever consumes separator characters, so
// the chunks stripped of whitespace must reproduce the input stripped of
// whitespace, in order.
func TestSplitCoverage(t *testing.T) {
	texts := []string{
		"Paragraph one.\n\nParagraph two goes on for a while with several words here.",
		"alpha beta gamma delta epsilon zeta eta theta iota kappa",
		strings.Repeat("q", 257),
	}
	stripSpace := func(s string) string {
		return strings.Join(strings.Fields(s), "")
	}

	for _, text := range texts {
		s, err := NewRecursiveSplitter(20, 0)
		if err != nil {
			t.Fatal(err)
		}
		joined := stripSpace(strings.Join(s.Split(text), " "))
		if joined != stripSpace(text) {
			t.Errorf("coverage lost:\n  input  %q\n  chunks %q", stripSpace(text), joined)
		}
	}
}

func TestSplitTerminatesAtChunkSizeOne(t *testing.T) {
	s, err := NewRecursiveSplitter(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	pieces := s.Split("abc def")
	for _, p := range pieces {
		if len(p) > 1 {
			t.Errorf("piece %q exceeds size 1", p)
		}
	}
	// Word-level splitting consumes the space, but every letter survives.
	joined := strings.Join(pieces, "")
	for _, r := range "abcdef" {
		if !strings.Contains(joined, string(r)) {
			t.Errorf("character %q lost", string(r))
		}
	}
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	s, err := NewRecursiveSplitter(30, 5)
	if err != nil {
		t.Fatal(err)
	}
	text := "Paragraph one.\n\nParagraph two is much longer than the chunk size and will need splitting across line and word boundaries."
	pieces := s.Split(text)

	if len(pieces) == 0 {
		t.Fatal("expected pieces")
	}
	if pieces[0] != "Paragraph one." {
		t.Errorf("expected first piece to be the intact short paragraph, got %q", pieces[0])
	}
	for i, p := range pieces {
		if len(p) > 30 {
			t.Errorf("piece %d exceeds bound: len=%d %q", i, len(p), p)
		}
	}
}

func TestHardSplitWindows(t *testing.T) {
	s, err := NewRecursiveSplitter(100, 0)
	if err != nil {
		t.Fatal(err)
	}
	pieces := s.Split(strings.Repeat("x", 1000))

	if len(pieces) != 10 {
		t.Fatalf("expected exactly 10 pieces, got %d", len(pieces))
	}
	for i, p := range pieces {
		if len(p) != 100 {
			t.Errorf("piece %d: expected length 100, got %d", i, len(p))
		}
	}
}

func TestHardSplitOverlap(t *testing.T) {
	s, err := NewRecursiveSplitter(30, 5)
	if err != nil {
		t.Fatal(err)
	}
	text := strings.Repeat("y", 100)
	pieces := s.Split(text)

	// Step is 25, so adjacent windows share 5 characters and the final
	// remainder may be shorter but never longer than the chunk size.
	for i, p := range pieces {
		if len(p) > 30 {
			t.Errorf("piece %d exceeds bound: %d", i, len(p))
		}
	}
	total := 0
	for _, p := range pieces {
		total += len(p)
	}
	if total < len(text) {
		t.Errorf("pieces cover %d chars, input has %d", total, len(text))
	}
}

func TestChunkAssignsSequentialIDs(t *testing.T) {
	s, err := NewRecursiveSplitter(30, 5)
	if err != nil {
		t.Fatal(err)
	}
	doc := domain.Document{ID: "doc-1", Title: "runbook"}
	content := "First paragraph of the runbook.\n\nSecond paragraph with considerably more text than fits."

	chunks, err := s.Chunk(doc, content)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, c := range chunks {
		wantID := fmt.Sprintf("doc-1-chunk-%d", i)
		if c.ID != wantID {
			t.Errorf("chunk %d: expected id %q, got %q", i, wantID, c.ID)
		}
		if c.DocID != "doc-1" {
			t.Errorf("chunk %d: expected doc id doc-1, got %q", i, c.DocID)
		}
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
		if strings.TrimSpace(c.Text) != c.Text || c.Text == "" {
			t.Errorf("chunk %d: text not trimmed or empty: %q", i, c.Text)
		}
	}
}

func TestChunkIdempotent(t *testing.T) {
	s, err := NewRecursiveSplitter(40, 0)
	if err != nil {
		t.Fatal(err)
	}
	doc := domain.Document{ID: "doc-1"}
	content := "Connection pool exhausted.\nIncrease max_connections.\nCheck for leaked sessions in the application layer."

	first, err := s.Chunk(doc, content)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Chunk(doc, content)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestChunkDropsEmptyPieces(t *testing.T) {
	s, err := NewRecursiveSplitter(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	doc := domain.Document{ID: "doc-1"}

	chunks, err := s.Chunk(doc, "   \n\n   \n\n   ")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected whitespace-only content to produce no chunks, got %d", len(chunks))
	}

	chunks, err = s.Chunk(doc, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected empty content to produce no chunks, got %d", len(chunks))
	}
}
