package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func completionServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func respondJSON(w http.ResponseWriter, text string) {
	_ = json.NewEncoder(w).Encode(map[string]string{"response": text})
}

func testAIClient(srv *httptest.Server, maxRetries int) *aiClient {
	c := newAIClient(srv.URL, 2*time.Second, maxRetries, 0.2, srv.Client())
	c.sleep = func(context.Context, time.Duration) error { return nil }
	return c
}

func TestCompleteNormalizesAndTruncates(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, "**Bold** answer\n\n\n\nwith "+strings.Repeat("x", 100))
	})
	c := testAIClient(srv, 0)

	got, err := c.complete(context.Background(), CapabilityAI, "q", "", 30, 0)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !strings.HasPrefix(got, "*Bold* answer") {
		t.Fatalf("bold markers not normalized: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank-line runs not collapsed: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis after truncation, got %q", got)
	}
	if len([]rune(got)) != 33 {
		t.Fatalf("expected 30 runes plus ellipsis, got %d", len([]rune(got)))
	}
}

func TestCompleteSendsSystemAndPrompt(t *testing.T) {
	var asked atomic.Value
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		asked.Store(r.URL.Query().Get("ask"))
		respondJSON(w, "ok")
	})
	c := testAIClient(srv, 0)

	if _, err := c.complete(context.Background(), CapabilityAI, "why?", "You are terse.", 0, 0); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got, _ := asked.Load().(string)
	if got != "You are terse.\n\nwhy?" {
		t.Fatalf("unexpected prompt sent: %q", got)
	}
}

func TestCompleteRetriesUpstreamErrors(t *testing.T) {
	var calls atomic.Int32
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		respondJSON(w, "recovered")
	})
	c := testAIClient(srv, 4)

	got, err := c.complete(context.Background(), CapabilityAI, "q", "", 0, 0)
	if err != nil {
		t.Fatalf("complete after retries: %v", err)
	}
	if got != "recovered" {
		t.Fatalf("unexpected text: %q", got)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestCompleteExhaustedRetriesReturnsUpstreamFailure(t *testing.T) {
	var calls atomic.Int32
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := testAIClient(srv, 4)

	_, err := c.complete(context.Background(), CapabilityAI, "q", "", 0, 0)
	f, ok := AsFailure(err)
	if !ok {
		t.Fatalf("expected *Failure, got %v", err)
	}
	if f.Kind != FailUpstream {
		t.Fatalf("expected upstream failure, got %s", f.Kind)
	}
	if calls.Load() != 5 {
		t.Fatalf("expected 5 attempts, got %d", calls.Load())
	}
}

func TestCompleteEmptyResultNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		respondJSON(w, "  ")
	})
	c := testAIClient(srv, 4)

	_, err := c.complete(context.Background(), CapabilityAI, "q", "", 0, 0)
	f, ok := AsFailure(err)
	if !ok || f.Kind != FailEmpty {
		t.Fatalf("expected empty-result failure, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("empty result must not be retried, got %d attempts", calls.Load())
	}
}

func TestCompleteTimeoutClassified(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		respondJSON(w, "late")
	})
	c := newAIClient(srv.URL, 50*time.Millisecond, 0, 0.2, srv.Client())
	c.sleep = func(context.Context, time.Duration) error { return nil }

	_, err := c.complete(context.Background(), CapabilityAI, "q", "", 0, 1)
	f, ok := AsFailure(err)
	if !ok || f.Kind != FailTimeout {
		t.Fatalf("expected timeout failure, got %v", err)
	}
}

func TestFailureCode(t *testing.T) {
	cases := map[FailureKind]string{
		FailTimeout:    "TIMEOUT",
		FailUpstream:   "UPSTREAM_ERROR",
		FailEmpty:      "EMPTY_RESULT",
		FailUnexpected: "UNEXPECTED_ERROR",
	}
	for kind, want := range cases {
		f := newFailure(CapabilityAI, kind, nil)
		if f.Code() != want {
			t.Fatalf("Code() for %s = %s, want %s", kind, f.Code(), want)
		}
	}
}
