package store

import (
	"path/filepath"
	"testing"
	"time"

	"logtriage/internal/domain"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestBoltPutGetDelete(t *testing.T) {
	st := newTestStore(t)

	doc := domain.Document{ID: "d1", Title: "nginx errors", Text: "body", CreatedAt: time.Now()}
	chunks := []domain.Chunk{
		{ID: "d1-chunk-0", DocID: "d1", Index: 0, Text: "body"},
	}
	if err := st.PutDocument(doc, chunks); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetDocument("d1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "nginx errors" {
		t.Errorf("expected title 'nginx errors', got %q", got.Title)
	}

	gotChunks, err := st.GetChunksByDoc("d1")
	if err != nil {
		t.Fatal(err)
	}
	if len(gotChunks) != 1 || gotChunks[0].ID != "d1-chunk-0" {
		t.Errorf("unexpected chunks: %+v", gotChunks)
	}

	if err := st.DeleteDocument("d1"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.GetDocument("d1"); err == nil {
		t.Error("expected document to be gone")
	}
	gotChunks, _ = st.GetChunksByDoc("d1")
	if len(gotChunks) != 0 {
		t.Errorf("expected chunks to cascade on delete, got %d", len(gotChunks))
	}
}

func TestBoltInsertionOrderSurvivesDelete(t *testing.T) {
	st := newTestStore(t)

	for _, id := range []string{"b-doc", "a-doc", "c-doc"} {
		err := st.PutDocument(domain.Document{ID: id}, []domain.Chunk{
			{ID: id + "-chunk-0", DocID: id, Index: 0, Text: "text"},
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := st.DeleteDocument("a-doc"); err != nil {
		t.Fatal(err)
	}

	docs, err := st.ListDocuments()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"b-doc", "c-doc"}
	if len(docs) != len(want) {
		t.Fatalf("expected %d docs, got %d", len(want), len(docs))
	}
	for i, id := range want {
		if docs[i].ID != id {
			t.Errorf("position %d: expected %s, got %s (insertion order, not key order)", i, id, docs[i].ID)
		}
	}

	chunks, err := st.ListChunks()
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 || chunks[0].DocID != "b-doc" || chunks[1].DocID != "c-doc" {
		t.Errorf("unexpected chunk order: %+v", chunks)
	}
}

func TestBoltStats(t *testing.T) {
	st := newTestStore(t)

	st.PutDocument(domain.Document{ID: "d1"}, []domain.Chunk{
		{ID: "d1-chunk-0", DocID: "d1", Index: 0, Text: "abcd"},
		{ID: "d1-chunk-1", DocID: "d1", Index: 1, Text: "efgh"},
	})

	stats, err := st.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalDocs != 1 || stats.TotalChunks != 2 || stats.AvgChunkLen != 4 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
