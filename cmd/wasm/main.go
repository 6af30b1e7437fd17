//go:build js && wasm

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"syscall/js"
	"time"

	"logtriage/internal/adapter/memstore"
	"logtriage/internal/adapter/retriever"
	"logtriage/internal/adapter/splitter"
	"logtriage/internal/domain"
)

var (
	store *memstore.MemoryStore
	sp    *splitter.RecursiveSplitter
)

func init() {
	store = memstore.NewMemoryStore()
	sp, _ = splitter.NewRecursiveSplitter(splitter.DefaultChunkSize, splitter.DefaultChunkOverlap)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("triageAdd", js.FuncOf(addDocument))
	js.Global().Set("triageSearch", js.FuncOf(searchDocuments))
	js.Global().Set("triageRemove", js.FuncOf(removeDocument))
	js.Global().Set("triageClear", js.FuncOf(clearCollection))
	js.Global().Set("triageStats", js.FuncOf(getStats))

	<-c
}

func addDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: triageAdd(title, text)")
	}

	title := args[0].String()
	text := args[1].String()

	doc := domain.Document{
		ID:        generateDocID(title),
		Title:     title,
		Text:      text,
		CreatedAt: time.Now(),
	}

	chunks, err := sp.Chunk(doc, text)
	if err != nil {
		return makeError("chunking failed: " + err.Error())
	}
	if len(chunks) == 0 {
		return makeError("document produced no chunks")
	}

	if err := store.PutDocument(doc, chunks); err != nil {
		return makeError("store failed: " + err.Error())
	}

	return makeResult(map[string]interface{}{
		"success": true,
		"id":      doc.ID,
		"chunks":  len(chunks),
	})
}

func searchDocuments(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: triageSearch(query, [topK])")
	}

	query := args[0].String()
	topK := 5
	if len(args) > 1 {
		topK = args[1].Int()
	}

	chunks, err := store.ListChunks()
	if err != nil {
		return makeError("search failed: " + err.Error())
	}

	results := retriever.Rank(query, chunks, topK)

	output := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		doc, _ := store.GetDocument(r.Chunk.DocID)
		output = append(output, map[string]interface{}{
			"docId":   r.Chunk.DocID,
			"chunkId": r.Chunk.ID,
			"title":   doc.Title,
			"score":   r.Score,
			"text":    r.Chunk.Text,
		})
	}

	return makeResult(map[string]interface{}{
		"results": output,
		"query":   query,
	})
}

func removeDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: triageRemove(id)")
	}
	if err := store.DeleteDocument(args[0].String()); err != nil {
		return makeError("delete failed: " + err.Error())
	}
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func clearCollection(this js.Value, args []js.Value) interface{} {
	store = memstore.NewMemoryStore()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func getStats(this js.Value, args []js.Value) interface{} {
	stats, _ := store.Stats()
	docs, _ := store.ListDocuments()

	titles := make([]string, len(docs))
	for i, doc := range docs {
		titles[i] = doc.Title
	}

	return makeResult(map[string]interface{}{
		"totalDocs":   stats.TotalDocs,
		"totalChunks": stats.TotalChunks,
		"avgChunkLen": stats.AvgChunkLen,
		"titles":      titles,
	})
}

func generateDocID(title string) string {
	hash := sha256.Sum256([]byte(title))
	return hex.EncodeToString(hash[:8])
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
