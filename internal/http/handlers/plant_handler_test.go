package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

func plantEngine(p *stubPlants, v Versioner) http.Handler {
	h := New(Deps{Plants: p, Versions: v})
	r := newEngine()
	r.POST("/plantes", h.CreatePlant)
	r.GET("/plantes", h.ListPlants)
	r.GET("/plantes/:id", h.GetPlant)
	r.PUT("/plantes/:id", h.UpdatePlant)
	r.DELETE("/plantes/:id", h.DeletePlant)
	r.DELETE("/plantes", h.DeletePlants)
	r.GET("/plantes/categorie/:categorie", h.SearchPlants)
	return r
}

func TestCreatePlant(t *testing.T) {
	p := &stubPlants{}
	r := plantEngine(p, nil)

	w := doJSON(t, r, http.MethodPost, "/plantes", map[string]any{
		"nom": "Basilic", "categorie": "Aromatique", "humiditeSol": 40, "volumeEau": 1.5, "luminosite": 300,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got domain.Plant
	if env := envelope(t, w, &got); !env.Success || got.Name != "Basilic" {
		t.Fatalf("unexpected: %+v %+v", env, got)
	}
	if p.created.MaxWaterVolume == nil || *p.created.MaxWaterVolume != 1.5 {
		t.Fatalf("volume not forwarded: %+v", p.created)
	}
}

func TestCreatePlant_BadJSONAndValidation(t *testing.T) {
	r := plantEngine(&stubPlants{}, nil)
	if w := doJSON(t, r, http.MethodPost, "/plantes", "{nope"); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json status=%d", w.Code)
	}

	r = plantEngine(&stubPlants{err: services.ErrValidation}, nil)
	w := doJSON(t, r, http.MethodPost, "/plantes", map[string]any{"nom": "x"})
	if w.Code != http.StatusBadRequest || errorBody(t, w).Code != ErrCodeValidation {
		t.Fatalf("validation: %d %s", w.Code, w.Body.String())
	}
}

func TestListPlants_ETag(t *testing.T) {
	last := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	p := &stubPlants{items: []domain.Plant{{ID: "a", Name: "Aloe"}}}
	r := plantEngine(p, stubVersions{n: 1, last: &last})

	w := doJSON(t, r, http.MethodGet, "/plantes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}
	var items []domain.Plant
	envelope(t, w, &items)
	if len(items) != 1 {
		t.Fatalf("items=%v", items)
	}

	w = doJSON(t, r, http.MethodGet, "/plantes", nil, "If-None-Match", etag)
	if w.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", w.Code)
	}
}

func TestGetPlant_NotFoundAndInvalidID(t *testing.T) {
	r := plantEngine(&stubPlants{err: services.ErrPlantNotFound}, nil)
	if w := doJSON(t, r, http.MethodGet, "/plantes/abc", nil); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	r = plantEngine(&stubPlants{err: services.ErrInvalidID}, nil)
	w := doJSON(t, r, http.MethodGet, "/plantes/abc", nil)
	if w.Code != http.StatusBadRequest || errorBody(t, w).Code != ErrCodeInvalidID {
		t.Fatalf("invalid id: %d %s", w.Code, w.Body.String())
	}
}

func TestSearchAndDeletePlants(t *testing.T) {
	p := &stubPlants{}
	r := plantEngine(p, nil)

	if w := doJSON(t, r, http.MethodGet, "/plantes/categorie/aroma", nil); w.Code != http.StatusOK || p.searched != "aroma" {
		t.Fatalf("search: %d %q", w.Code, p.searched)
	}
	if w := doJSON(t, r, http.MethodPut, "/plantes/p1", map[string]any{"luminosite": 10}); w.Code != http.StatusOK {
		t.Fatalf("update: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/plantes/p1", nil); w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodDelete, "/plantes", map[string]any{"ids": []string{"a", "b"}})
	if w.Code != http.StatusOK {
		t.Fatalf("bulk: %d", w.Code)
	}
	var res BulkDeleteResponse
	envelope(t, w, &res)
	if res.Deleted != 2 || len(p.deleted) != 3 {
		t.Fatalf("bulk result=%+v deleted=%v", res, p.deleted)
	}
}
