package eval

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/symptexlab/symptex-api/internal/model/chat"
	"github.com/symptexlab/symptex-api/internal/service/sim"
)

type fakeEvaluator struct {
	evaluateFn func(ctx context.Context, transcript []chat.Turn, emit sim.EmitFunc) error
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, transcript []chat.Turn, emit sim.EmitFunc) error {
	return f.evaluateFn(ctx, transcript, emit)
}

func setupRouter(svc *fakeEvaluator) *chi.Mux {
	r := chi.NewRouter()
	New(svc, nil).RegisterRoutes(r)
	return r
}

func TestEvaluateStreamsFeedback(t *testing.T) {
	var received []chat.Turn
	svc := &fakeEvaluator{
		evaluateFn: func(_ context.Context, transcript []chat.Turn, emit sim.EmitFunc) error {
			received = transcript
			if err := emit("Gesprächsführung: "); err != nil {
				return err
			}
			return emit("4/5")
		},
	}
	r := setupRouter(svc)

	body := []byte(`{"messages":[{"role":"user","text":"Wie geht es Ihnen?"},{"role":"patient","text":"Schlecht."}]}`)
	req := httptest.NewRequest(http.MethodPost, "/eval", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != "Gesprächsführung: 4/5" {
		t.Fatalf("unexpected body: %q", got)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type: %q", ct)
	}

	if len(received) != 2 {
		t.Fatalf("expected two transcript turns, got %d", len(received))
	}
	if received[0].Role != chat.RoleUser || received[0].Text != "Wie geht es Ihnen?" {
		t.Fatalf("unexpected first turn: %+v", received[0])
	}
	if received[1].Role != chat.RolePatient || received[1].Text != "Schlecht." {
		t.Fatalf("unexpected second turn: %+v", received[1])
	}
}

func TestEvaluateEmptyTranscriptReachesService(t *testing.T) {
	called := false
	svc := &fakeEvaluator{
		evaluateFn: func(_ context.Context, transcript []chat.Turn, emit sim.EmitFunc) error {
			called = true
			if len(transcript) != 0 {
				t.Fatalf("expected empty transcript, got %d turns", len(transcript))
			}
			return emit("Kein Dialog vorhanden.")
		},
	}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/eval", bytes.NewReader([]byte(`{"messages":[]}`)))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !called {
		t.Fatal("empty transcripts must still be evaluated")
	}
}

func TestEvaluateInvalidBodyIs400(t *testing.T) {
	svc := &fakeEvaluator{
		evaluateFn: func(_ context.Context, _ []chat.Turn, _ sim.EmitFunc) error {
			t.Fatal("service must not be called for a malformed body")
			return nil
		},
	}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/eval", bytes.NewReader([]byte("{broken")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestEvaluatePreStreamFailureIs500(t *testing.T) {
	svc := &fakeEvaluator{
		evaluateFn: func(_ context.Context, _ []chat.Turn, _ sim.EmitFunc) error {
			return errors.New("backend unreachable")
		},
	}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/eval", bytes.NewReader([]byte(`{"messages":[]}`)))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
