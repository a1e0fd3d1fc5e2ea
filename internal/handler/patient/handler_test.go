package patient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	patientModel "github.com/symptexlab/symptex-api/internal/model/patient"
)

func setupRouter() (*chi.Mux, patientModel.Store) {
	store := patientModel.NewMemoryStore(patientModel.Seed())
	r := chi.NewRouter()
	New(store).RegisterRoutes(r)
	return r, store
}

func TestListPatients(t *testing.T) {
	r, store := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var profiles []patientModel.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(profiles) != len(store.List()) {
		t.Fatalf("expected %d profiles, got %d", len(store.List()), len(profiles))
	}
}

func TestGetPatientByID(t *testing.T) {
	r, store := setupRouter()
	want := store.List()[0]

	req := httptest.NewRequest(http.MethodGet, "/patients/"+want.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var profile patientModel.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if profile.ID != want.ID {
		t.Fatalf("expected profile %s, got %s", want.ID, profile.ID)
	}
}

func TestGetUnknownPatientIs404(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/patients/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
