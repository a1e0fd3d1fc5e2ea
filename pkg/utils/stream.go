package utils

import (
	"log"
	"net/http"
)

// SetupStreamHeaders prepares a chunked plain-text response. The headers go
// out with the first write, so callers must not touch them afterwards.
func SetupStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
}

// WriteStreamChunk writes one fragment and flushes it to the client.
func WriteStreamChunk(w http.ResponseWriter, flusher http.Flusher, fragment string) error {
	if _, err := w.Write([]byte(fragment)); err != nil {
		log.Printf("failed to write stream chunk: %v", err)
		return err
	}
	flusher.Flush()
	return nil
}
