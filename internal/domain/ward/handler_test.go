package ward

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

func TestHandler_Overview(t *testing.T) {
	p := &vitals.Patient{ID: uuid.New(), Name: "Adams", Active: true}
	histories := map[uuid.UUID]vitals.History{
		p.ID: {reading(p.ID, time.Hour, nil)},
	}
	h := NewHandler(newTestService([]*vitals.Patient{p}, histories, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ward/overview", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Overview(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var ov Overview
	if err := json.Unmarshal(rec.Body.Bytes(), &ov); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if ov.TotalPatients != 1 || len(ov.Patients) != 1 {
		t.Errorf("expected one patient in the overview, got %+v", ov)
	}
}
