package memos_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"memoboard/internal/gateway/adapters/rest"
	"memoboard/internal/gateway/resilience"
)

type storedMemo struct {
	FID        int64  `json:"FID"`
	FTitle     string `json:"FTITLE"`
	FContent   string `json:"FCONTENT"`
	FCreatedAt string `json:"FCREATED_AT"`
}

// fakeBackend имитирует /api/memos с ответами в верхнем регистре.
type fakeBackend struct {
	mu       sync.Mutex
	memos    []storedMemo
	nextID   int64
	envelope bool
	noStats  bool
	saveCode int
	saveMsg  string
	requests atomic.Int64
	lastBody map[string]any
	server   *httptest.Server
}

func newFakeBackend(t *testing.T, memos ...storedMemo) *fakeBackend {
	t.Helper()

	b := &fakeBackend{memos: memos, nextID: 100}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/memos", b.list)
	mux.HandleFunc("POST /api/memos", b.save)
	mux.HandleFunc("GET /api/memos/search", b.search)
	mux.HandleFunc("GET /api/memos/stats", b.stats)
	mux.HandleFunc("GET /api/memos/{id}", b.get)
	mux.HandleFunc("DELETE /api/memos/{id}", b.remove)

	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) snapshot() []storedMemo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.memos)
}

// configure меняет поведение backend под блокировкой.
func (b *fakeBackend) configure(fn func(b *fakeBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *fakeBackend) flags() (envelope, noStats bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.envelope, b.noStats
}

func (b *fakeBackend) body() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody
}

func (b *fakeBackend) list(w http.ResponseWriter, _ *http.Request) {
	memos := b.snapshot()
	if envelope, _ := b.flags(); envelope {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "content": memos})
		return
	}
	writeJSON(w, http.StatusOK, memos)
}

func (b *fakeBackend) search(w http.ResponseWriter, r *http.Request) {
	k := strings.ToLower(r.URL.Query().Get("keyword"))
	out := []storedMemo{}
	for _, m := range b.snapshot() {
		if strings.Contains(strings.ToLower(m.FTitle), k) || strings.Contains(strings.ToLower(m.FContent), k) {
			out = append(out, m)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "content": out})
}

func (b *fakeBackend) stats(w http.ResponseWriter, _ *http.Request) {
	if _, noStats := b.flags(); noStats {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	memos := b.snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"content": map[string]any{"total": len(memos), "titledCount": 0, "contentCount": 0, "recentFive": []any{}},
	})
}

func (b *fakeBackend) get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	for _, m := range b.snapshot() {
		if m.FID == id {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "content": m})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "memo not found"})
}

func (b *fakeBackend) save(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastBody = body

	if b.saveCode != 0 {
		writeJSON(w, b.saveCode, map[string]any{"success": false, "message": b.saveMsg})
		return
	}

	title, _ := body["ftitle"].(string)
	content, _ := body["fcontent"].(string)
	if fid, ok := body["fid"].(float64); ok {
		for i := range b.memos {
			if b.memos[i].FID == int64(fid) {
				b.memos[i].FTitle, b.memos[i].FContent = title, content
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": int64(fid), "message": "updated"})
		return
	}

	b.nextID++
	m := storedMemo{FID: b.nextID, FTitle: title, FContent: content, FCreatedAt: "2024-01-01T00:00:00Z"}
	b.memos = append([]storedMemo{m}, b.memos...)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": m.FID, "message": "created"})
}

func (b *fakeBackend) remove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	b.mu.Lock()
	b.memos = slices.DeleteFunc(b.memos, func(m storedMemo) bool { return m.FID == id })
	b.mu.Unlock()

	_, _ = w.Write([]byte("deleted"))
}

// unreachableURL возвращает адрес закрытого сервера.
func unreachableURL(t *testing.T) string {
	t.Helper()
	s := httptest.NewServer(http.NotFoundHandler())
	url := s.URL
	s.Close()
	return url
}

func newTransport(baseURL string) *rest.Transport {
	return rest.NewTransport(rest.Config{
		Name:    "memos",
		BaseURL: baseURL + "/api/memos",
		Timeout: 2 * time.Second,
		Resilience: resilience.Config{
			Retry: resilience.RetryConfig{MaxAttempts: 1},
			Breaker: resilience.CircuitBreakerConfig{
				ErrorThreshold:   100,
				Timeout:          time.Second,
				SuccessThreshold: 1,
			},
		},
	})
}

// newStatusServer отвечает status на любой запрос без тела.
func newStatusServer(t *testing.T, status int) string {
	t.Helper()
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(s.Close)
	return s.URL
}
