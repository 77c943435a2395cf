package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/http/middleware"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

func triggerEngine(d Deps, user string) http.Handler {
	h := New(d)
	r := newEngine(asUser(user), middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	r.POST("/arrosage/manuel/plante/:planteId", h.TriggerPlant)
	r.POST("/arrosage/manuel/global", h.TriggerAll)
	r.POST("/arrosage/stop", h.EmergencyStop)
	r.GET("/arrosage/scheduled", h.ScheduledPreview)
	return r
}

func TestTriggerPlant_DefaultAndOverride(t *testing.T) {
	tr := &stubTriggers{}
	r := triggerEngine(Deps{Triggers: tr, Sessions: &stubSessions{}}, "u1")

	w := doJSON(t, r, http.MethodPost, "/arrosage/manuel/plante/p1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if tr.volume != nil {
		t.Fatalf("empty body must not set a volume, got %v", *tr.volume)
	}

	w = doJSON(t, r, http.MethodPost, "/arrosage/manuel/plante/p1", map[string]any{"volumeEau": 0.8})
	if w.Code != http.StatusOK || tr.volume == nil || *tr.volume != 0.8 {
		t.Fatalf("override: %d %v", w.Code, tr.volume)
	}
	var out services.Triggered
	envelope(t, w, &out)
	if out.Session == nil || out.Session.Kind != domain.KindManual || out.History == nil {
		t.Fatalf("unexpected: %+v", out)
	}
}

func TestTriggerPlant_IdempotentReplay(t *testing.T) {
	sess := &stubSessions{}
	tr := &stubTriggers{sess: sess}
	idem := &memIdem{}
	r := triggerEngine(Deps{Triggers: tr, Sessions: sess, Idem: idem}, "u1")

	first := doJSON(t, r, http.MethodPost, "/arrosage/manuel/plante/p1", nil, middleware.HeaderIdempotencyKey, "k-1")
	if first.Code != http.StatusOK || first.Header().Get(middleware.HeaderReplayed) != "" {
		t.Fatalf("first: %d replayed=%q", first.Code, first.Header().Get(middleware.HeaderReplayed))
	}
	second := doJSON(t, r, http.MethodPost, "/arrosage/manuel/plante/p1", nil, middleware.HeaderIdempotencyKey, "k-1")
	if second.Code != http.StatusOK || second.Header().Get(middleware.HeaderReplayed) != "true" {
		t.Fatalf("second: %d replayed=%q", second.Code, second.Header().Get(middleware.HeaderReplayed))
	}
	if tr.calls != 1 || idem.saves != 1 {
		t.Fatalf("calls=%d saves=%d; want 1/1", tr.calls, idem.saves)
	}
	var a, b services.Triggered
	envelope(t, first, &a)
	envelope(t, second, &b)
	if a.Session.ID != b.Session.ID {
		t.Fatalf("replay returned %s, want %s", b.Session.ID, a.Session.ID)
	}

	// Same key on another plant is a different scope.
	third := doJSON(t, r, http.MethodPost, "/arrosage/manuel/plante/p2", nil, middleware.HeaderIdempotencyKey, "k-1")
	if third.Code != http.StatusOK || tr.calls != 2 {
		t.Fatalf("other scope: %d calls=%d", third.Code, tr.calls)
	}
}

func TestTriggerPlant_BadKeyAndErrors(t *testing.T) {
	r := triggerEngine(Deps{Triggers: &stubTriggers{}, Sessions: &stubSessions{}}, "u1")
	if w := doJSON(t, r, http.MethodPost, "/arrosage/manuel/plante/p1", nil, middleware.HeaderIdempotencyKey, "bad key!"); w.Code != http.StatusBadRequest {
		t.Fatalf("bad key: %d", w.Code)
	}

	r = triggerEngine(Deps{Triggers: &stubTriggers{err: services.ErrPlantNotFound}}, "u1")
	if w := doJSON(t, r, http.MethodPost, "/arrosage/manuel/plante/p1", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing plant: %d", w.Code)
	}
}

func TestTriggerAll(t *testing.T) {
	r := triggerEngine(Deps{Triggers: &stubTriggers{}}, "u1")
	w := doJSON(t, r, http.MethodPost, "/arrosage/manuel/global", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var out GlobalTriggerResponse
	envelope(t, w, &out)
	if out.Plants != 2 || len(out.Sessions) != 2 {
		t.Fatalf("unexpected: %+v", out)
	}

	r = triggerEngine(Deps{Triggers: &stubTriggers{err: services.ErrNoPlants}}, "u1")
	if w := doJSON(t, r, http.MethodPost, "/arrosage/manuel/global", nil); w.Code != http.StatusNotFound {
		t.Fatalf("no plants: %d", w.Code)
	}

	r = triggerEngine(Deps{Triggers: &stubTriggers{err: fmt.Errorf("%w: start", services.ErrActuatorFailure)}}, "u1")
	w = doJSON(t, r, http.MethodPost, "/arrosage/manuel/global", nil)
	if w.Code != http.StatusBadGateway || errorBody(t, w).Code != ErrCodeActuator {
		t.Fatalf("actuator: %d %s", w.Code, w.Body.String())
	}
}

func TestEmergencyStopAndPreview(t *testing.T) {
	rep := &services.TickReport{At: domain.TimeOfDay{Hour: 7}, ToStart: []domain.WateringSession{{ID: "x"}}}
	r := triggerEngine(Deps{Triggers: &stubTriggers{}, Scheduler: stubPreview{rep: rep}}, "u1")

	w := doJSON(t, r, http.MethodPost, "/arrosage/stop", nil)
	var res services.StopResult
	envelope(t, w, &res)
	if w.Code != http.StatusOK || res.Sessions != 3 || res.History != 2 {
		t.Fatalf("stop: %d %+v", w.Code, res)
	}

	w = doJSON(t, r, http.MethodGet, "/arrosage/scheduled", nil)
	var got services.TickReport
	envelope(t, w, &got)
	if w.Code != http.StatusOK || len(got.ToStart) != 1 || got.At.Hour != 7 {
		t.Fatalf("preview: %d %+v", w.Code, got)
	}
}
