// Package store persists the document collection in a bbolt database so the
// CLI keeps its collection between invocations. Insertion order is preserved
// with a sequence bucket because retrieval uses it as the tie-break order.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"logtriage/internal/domain"
)

var (
	bucketDocs   = []byte("docs")
	bucketChunks = []byte("chunks")
	bucketOrder  = []byte("doc_order")
)

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketDocs, bucketChunks, bucketOrder} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type docMeta struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

func (s *BoltStore) PutDocument(doc domain.Document, chunks []domain.Chunk) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		docs := tx.Bucket(bucketDocs)
		key := []byte(doc.ID)

		if docs.Get(key) == nil {
			order := tx.Bucket(bucketOrder)
			seq, err := order.NextSequence()
			if err != nil {
				return err
			}
			var seqKey [8]byte
			binary.BigEndian.PutUint64(seqKey[:], seq)
			if err := order.Put(seqKey[:], key); err != nil {
				return err
			}
		}

		meta := docMeta{
			Title:     doc.Title,
			Text:      doc.Text,
			CreatedAt: doc.CreatedAt.Unix(),
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		if err := docs.Put(key, data); err != nil {
			return err
		}

		chunkData, err := json.Marshal(chunks)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketChunks).Put(key, chunkData)
	})
}

func (s *BoltStore) GetDocument(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		var meta docMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		doc = domain.Document{
			ID:        id,
			Title:     meta.Title,
			Text:      meta.Text,
			CreatedAt: time.Unix(meta.CreatedAt, 0),
		}
		return nil
	})
	return doc, err
}

func (s *BoltStore) ListDocuments() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		docsBucket := tx.Bucket(bucketDocs)
		return tx.Bucket(bucketOrder).ForEach(func(_, docID []byte) error {
			data := docsBucket.Get(docID)
			if data == nil {
				return nil
			}
			var meta docMeta
			if err := json.Unmarshal(data, &meta); err != nil {
				return err
			}
			docs = append(docs, domain.Document{
				ID:        string(docID),
				Title:     meta.Title,
				Text:      meta.Text,
				CreatedAt: time.Unix(meta.CreatedAt, 0),
			})
			return nil
		})
	})
	return docs, err
}

func (s *BoltStore) DeleteDocument(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		key := []byte(id)
		if err := tx.Bucket(bucketDocs).Delete(key); err != nil {
			return err
		}
		if err := tx.Bucket(bucketChunks).Delete(key); err != nil {
			return err
		}

		order := tx.Bucket(bucketOrder)
		c := order.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if string(v) == id {
				return order.Delete(k)
			}
		}
		return nil
	})
}

func (s *BoltStore) GetChunksByDoc(docID string) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketChunks).Get([]byte(docID))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &chunks)
	})
	return chunks, err
}

func (s *BoltStore) ListChunks() ([]domain.Chunk, error) {
	var all []domain.Chunk
	err := s.db.View(func(tx *bbolt.Tx) error {
		chunksBucket := tx.Bucket(bucketChunks)
		return tx.Bucket(bucketOrder).ForEach(func(_, docID []byte) error {
			data := chunksBucket.Get(docID)
			if data == nil {
				return nil
			}
			var chunks []domain.Chunk
			if err := json.Unmarshal(data, &chunks); err != nil {
				return err
			}
			all = append(all, chunks...)
			return nil
		})
	})
	return all, err
}

func (s *BoltStore) Stats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		totalLen := 0
		err := tx.Bucket(bucketChunks).ForEach(func(_, data []byte) error {
			var chunks []domain.Chunk
			if err := json.Unmarshal(data, &chunks); err != nil {
				return err
			}
			stats.TotalChunks += len(chunks)
			for _, c := range chunks {
				totalLen += len(c.Text)
			}
			return nil
		})
		if err != nil {
			return err
		}
		stats.TotalDocs = tx.Bucket(bucketDocs).Stats().KeyN
		if stats.TotalChunks > 0 {
			stats.AvgChunkLen = float64(totalLen) / float64(stats.TotalChunks)
		}
		return nil
	})
	return stats, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
