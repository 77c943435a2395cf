package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
)

func newTriggerSvc(t *testing.T, now time.Time) (*TriggerService, *fakeActuator) {
	t.Helper()
	act := &fakeActuator{}
	return &TriggerService{DB: newSvcDB(t), Actuator: act, Now: fixedNow(now), Loc: time.UTC}, act
}

func TestTriggerPlant_DefaultsToPlantMaxAndFiveMinutes(t *testing.T) {
	s, act := newTriggerSvc(t, time.Date(2025, 6, 10, 14, 30, 15, 0, time.UTC))
	p := mustPlant(t, s.DB, "Menthe", 30, 1.25, 400)

	got, err := s.TriggerPlant(context.Background(), "u1", p.ID, nil)
	if err != nil {
		t.Fatalf("TriggerPlant: %v", err)
	}
	sess := got.Session
	if sess.Kind != domain.KindManual || sess.Volume != 1.25 || !sess.Active || sess.Params != nil {
		t.Fatalf("unexpected session: %+v", sess)
	}
	wantStart := domain.TimeOfDay{Hour: 14, Minute: 30, Second: 15}
	wantEnd := domain.TimeOfDay{Hour: 14, Minute: 35, Second: 15}
	if sess.Start != wantStart || sess.End != wantEnd {
		t.Fatalf("window = %s-%s, want %s-%s", sess.Start, sess.End, wantStart, wantEnd)
	}
	if got.History.SessionID != sess.ID || got.History.Volume != 1.25 {
		t.Fatalf("history does not mirror session: %+v", got.History)
	}
	if starts, stops := act.calls(); starts != 0 || stops != 0 {
		t.Fatalf("single-plant trigger must not call the actuator: %d/%d", starts, stops)
	}
}

func TestTriggerPlant_Validation(t *testing.T) {
	s, _ := newTriggerSvc(t, t0)
	p := mustPlant(t, s.DB, "Menthe", 30, 1, 400)

	if _, err := s.TriggerPlant(context.Background(), "u1", p.ID, f64(1.01)); !errors.Is(err, ErrValidation) {
		t.Fatalf("above max: expected ErrValidation, got %v", err)
	}
	if _, err := s.TriggerPlant(context.Background(), "u1", p.ID, f64(0)); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero: expected ErrValidation, got %v", err)
	}
	if _, err := s.TriggerPlant(context.Background(), "u1", uuid.NewString(), nil); !errors.Is(err, ErrPlantNotFound) {
		t.Fatalf("missing plant: expected ErrPlantNotFound, got %v", err)
	}
	got, err := s.TriggerPlant(context.Background(), "u1", p.ID, f64(0.5))
	if err != nil || got.Session.Volume != 0.5 {
		t.Fatalf("explicit volume: %+v %v", got, err)
	}
}

func TestTriggerPlant_WindowClampedAtMidnight(t *testing.T) {
	cases := []struct {
		name       string
		now        time.Time
		start, end domain.TimeOfDay
	}{
		{"crosses midnight", time.Date(2025, 6, 10, 23, 58, 0, 0, time.UTC),
			domain.TimeOfDay{Hour: 23, Minute: 58}, domain.TimeOfDay{Hour: 23, Minute: 59, Second: 59}},
		{"last second of the day", time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC),
			domain.TimeOfDay{Hour: 23, Minute: 59, Second: 58}, domain.TimeOfDay{Hour: 23, Minute: 59, Second: 59}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTriggerSvc(t, tc.now)
			p := mustPlant(t, s.DB, "Menthe", 30, 1, 400)

			got, err := s.TriggerPlant(context.Background(), "u1", p.ID, nil)
			if err != nil {
				t.Fatalf("TriggerPlant: %v", err)
			}
			if got.Session.Start != tc.start || got.Session.End != tc.end {
				t.Fatalf("window = %s-%s, want %s-%s", got.Session.Start, got.Session.End, tc.start, tc.end)
			}

			sessions := &SessionService{DB: s.DB, Now: s.Now, Loc: s.Loc}
			if _, _, err := sessions.Update(context.Background(), "u1", got.Session.ID, SessionPatch{}); err != nil {
				t.Fatalf("no-op Update of a clamped session: %v", err)
			}
		})
	}
}

func TestTriggerAll_NoPlants(t *testing.T) {
	s, act := newTriggerSvc(t, t0)
	if _, err := s.TriggerAll(context.Background(), "u1"); !errors.Is(err, ErrNoPlants) {
		t.Fatalf("expected ErrNoPlants, got %v", err)
	}
	if starts, _ := act.calls(); starts != 0 {
		t.Fatalf("actuator should not be called without plants")
	}
	if n := countRows(t, s.DB, &domain.WateringSession{}); n != 0 {
		t.Fatalf("expected no sessions, got %d", n)
	}
}

func TestTriggerAll_ActuatorFailureRecordsNothing(t *testing.T) {
	s, act := newTriggerSvc(t, t0)
	act.startErr = errPumpDown
	mustPlant(t, s.DB, "A", 10, 1, 1)
	mustPlant(t, s.DB, "B", 10, 2, 1)

	if _, err := s.TriggerAll(context.Background(), "u1"); !errors.Is(err, ErrActuatorFailure) {
		t.Fatalf("expected ErrActuatorFailure, got %v", err)
	}
	if n := countRows(t, s.DB, &domain.WateringSession{}); n != 0 {
		t.Fatalf("expected zero sessions, got %d", n)
	}
	if n := countRows(t, s.DB, &domain.HistoryEntry{}); n != 0 {
		t.Fatalf("expected zero history entries, got %d", n)
	}
}

func TestTriggerAll_OneSessionPerPlant(t *testing.T) {
	s, act := newTriggerSvc(t, t0)
	a := mustPlant(t, s.DB, "A", 10, 1, 1)
	b := mustPlant(t, s.DB, "B", 10, 2, 1)

	got, err := s.TriggerAll(context.Background(), "u1")
	if err != nil {
		t.Fatalf("TriggerAll: %v", err)
	}
	if starts, _ := act.calls(); starts != 1 {
		t.Fatalf("expected one start call, got %d", starts)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 triggered pairs, got %d", len(got))
	}
	vols := map[string]float64{}
	for _, tr := range got {
		vols[tr.Session.PlantID] = tr.Session.Volume
		if tr.Session.Start != got[0].Session.Start || tr.Session.End != got[0].Session.End {
			t.Fatalf("window must be shared across plants")
		}
		if tr.History.SessionID != tr.Session.ID {
			t.Fatalf("history/session mismatch")
		}
	}
	if vols[a.ID] != 1 || vols[b.ID] != 2 {
		t.Fatalf("each plant must use its own max volume: %+v", vols)
	}
}

func TestEmergencyStop(t *testing.T) {
	s, act := newTriggerSvc(t, t0)
	p := mustPlant(t, s.DB, "A", 10, 5, 1)
	sessions := &SessionService{DB: s.DB, Now: fixedNow(t0.Add(-time.Hour)), Loc: time.UTC}

	mk := func(user string) *domain.WateringSession {
		in := SessionInput{PlantID: p.ID, Kind: domain.KindManual, Start: domain.TimeOfDay{Hour: 6}, End: domain.TimeOfDay{Hour: 9}, Volume: 1}
		sess, _, err := sessions.Create(context.Background(), user, in)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		return sess
	}
	active1, active2, inactive := mk("u1"), mk("u2"), mk("u1")
	if _, err := sessions.Toggle(context.Background(), "u1", inactive.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	t.Run("actuator failure leaves state", func(t *testing.T) {
		act.stopErr = errPumpDown
		defer func() { act.stopErr = nil }()
		if _, err := s.EmergencyStop(context.Background()); !errors.Is(err, ErrActuatorFailure) {
			t.Fatalf("expected ErrActuatorFailure, got %v", err)
		}
		var n int64
		s.DB.Model(&domain.WateringSession{}).Where("active = ?", true).Count(&n)
		if n != 2 {
			t.Fatalf("expected 2 active sessions untouched, got %d", n)
		}
	})

	res, err := s.EmergencyStop(context.Background())
	if err != nil {
		t.Fatalf("EmergencyStop: %v", err)
	}
	if res.Sessions != 2 || res.History != 2 {
		t.Fatalf("unexpected stop result: %+v", res)
	}
	want := domain.TimeOfDay{Hour: 8}
	for _, id := range []string{active1.ID, active2.ID} {
		var got domain.WateringSession
		if err := s.DB.First(&got, "id = ?", id).Error; err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.Active || got.End != want {
			t.Fatalf("session %s not stopped: active=%v end=%s", id, got.Active, got.End)
		}
	}
	var untouched domain.WateringSession
	if err := s.DB.First(&untouched, "id = ?", inactive.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if untouched.End != (domain.TimeOfDay{Hour: 9}) {
		t.Fatalf("inactive session must keep its end time, got %s", untouched.End)
	}
	// Only history of the stopped sessions is mirrored; the snapshot of the
	// session toggled off earlier is left as recorded.
	var stillActive int64
	s.DB.Model(&domain.HistoryEntry{}).Where("active = ?", true).Count(&stillActive)
	if stillActive != 1 {
		t.Fatalf("expected 1 untouched active history entry, got %d", stillActive)
	}
}
