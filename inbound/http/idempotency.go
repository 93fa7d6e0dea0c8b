package http

import (
	"bytes"
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"log/slog"
	"net/http"
	"sync"
)

type recordedResponse struct {
	done   chan struct{}
	status int
	header http.Header
	body   []byte
}

// IdempotencyStore remembers the first response written for each
// Idempotency-Key and replays it for every later request with that key.
// Requests without a key are served as usual.
type IdempotencyStore struct {
	mu        sync.Mutex
	responses map[string]*recordedResponse
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{responses: make(map[string]*recordedResponse)}
}

// Wrap serves next at most once per key and route. A request that arrives
// while the first one is still running waits for its response.
func (s *IdempotencyStore) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(constant.HeaderIdempotencyKey)
		if key == "" {
			next(w, r)
			return
		}
		key = r.Method + " " + r.URL.Path + " " + key

		s.mu.Lock()
		recorded, seen := s.responses[key]
		if !seen {
			recorded = &recordedResponse{done: make(chan struct{})}
			s.responses[key] = recorded
		}
		s.mu.Unlock()

		if seen {
			select {
			case <-recorded.done:
			case <-r.Context().Done():
				return
			}

			slog.DebugContext(r.Context(), "replaying idempotent response", common.ExtractTraceIDFromCtx(r.Context()),
				slog.String("key", key), slog.Int("status", recorded.status))

			for name, values := range recorded.header {
				w.Header()[name] = values
			}
			w.WriteHeader(recorded.status)
			_, _ = w.Write(recorded.body)
			return
		}

		rw := &recordingWriter{ResponseWriter: w}
		defer func() {
			recorded.status = rw.status
			if recorded.status == 0 {
				recorded.status = http.StatusOK
			}
			recorded.header = w.Header().Clone()
			recorded.body = rw.body.Bytes()
			close(recorded.done)
		}()

		next(rw, r)
	}
}

type recordingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recordingWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
