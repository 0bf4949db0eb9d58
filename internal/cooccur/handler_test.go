package cooccur

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func TestHandleRecompute(t *testing.T) {
	db := newTestDB(t)
	ids := seedSymptoms(t, db, 2)
	for i := 0; i < 3; i++ {
		addResponse(t, db, ids[0], ids[1])
	}

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(NewRecomputer(db, zerolog.Nop(), Config{MinSupport: 2})))

	req := httptest.NewRequest(http.MethodPost, "/cooccurrence/recompute", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}

	if got := dumpCache(t, db); len(got) != 2 {
		t.Errorf("expected 2 cached pairs after recompute, got %+v", got)
	}
}
