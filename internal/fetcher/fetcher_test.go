package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher(retries int) *Fetcher {
	f := NewFetcher(5*time.Second, retries, 1000, "test-agent", slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.backoff = func(int) time.Duration { return time.Millisecond }
	return f
}

func TestFetcher_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/doi/10.1/x", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/content/1/2/3", http.StatusFound)
	})
	mux.HandleFunc("/content/1/2/3", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("User-Agent = %q, want test-agent", got)
		}
		io.WriteString(w, "<html>ok</html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	result, err := newTestFetcher(3).Fetch(context.Background(), server.URL+"/doi/10.1/x")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result.Error != nil {
		t.Fatalf("Fetch() result error = %v", result.Error)
	}
	if string(result.Body) != "<html>ok</html>" {
		t.Errorf("Body = %q", result.Body)
	}
	if result.FinalURL != server.URL+"/content/1/2/3" {
		t.Errorf("FinalURL = %q", result.FinalURL)
	}
	if result.StatusCode != http.StatusOK || result.Attempts != 1 {
		t.Errorf("StatusCode = %d, Attempts = %d", result.StatusCode, result.Attempts)
	}
}

func TestFetcher_Retries(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		wantAttempts int32
		wantError    bool
	}{
		{name: "recovers after server error", statuses: []int{500, 200}, wantAttempts: 2},
		{name: "gives up after max retries", statuses: []int{503, 503, 503, 503}, wantAttempts: 3, wantError: true},
		{name: "no retry on not found", statuses: []int{404, 200}, wantAttempts: 1, wantError: true},
		{name: "no retry on forbidden", statuses: []int{403, 200}, wantAttempts: 1, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				w.WriteHeader(tt.statuses[n-1])
			}))
			defer server.Close()

			result, err := newTestFetcher(3).Fetch(context.Background(), server.URL)
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if got := calls.Load(); got != tt.wantAttempts {
				t.Errorf("server calls = %d, want %d", got, tt.wantAttempts)
			}
			if (result.Error != nil) != tt.wantError {
				t.Errorf("result error = %v, wantError %v", result.Error, tt.wantError)
			}
		})
	}
}

func TestFetcher_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher(3).Fetch(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestBackoffDuration(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{4, 8 * time.Second},
		{10, 30 * time.Second},
	}
	for _, tt := range tests {
		if got := backoffDuration(tt.attempt); got != tt.want {
			t.Errorf("backoffDuration(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
