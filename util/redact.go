package util

import (
	"io"
	"strings"
	"sync"
)

const redacted = "***"

// Redactor replaces sensitive strings in log output
type Redactor struct {
	mu     sync.RWMutex
	redact []string
}

// Redact adds items for redaction. Empty items are ignored.
func (r *Redactor) Redact(items ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			r.redact = append(r.redact, s)
		}
	}
}

// Safe returns s with all redacted items replaced
func (r *Redactor) Safe(s string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.redact {
		s = strings.ReplaceAll(s, item, redacted)
	}

	return s
}

type redactWriter struct {
	*Redactor
	io.Writer
}

func (w *redactWriter) Write(p []byte) (int, error) {
	if _, err := w.Writer.Write([]byte(w.Safe(string(p)))); err != nil {
		return 0, err
	}

	// report original length to keep the log package happy
	return len(p), nil
}
