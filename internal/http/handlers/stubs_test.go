package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-irrigation-backend/internal/actuator"
	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/http/middleware"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

// ---------- stubs ----------

type stubPlants struct {
	created  services.PlantInput
	items    []domain.Plant
	err      error
	deleted  []string
	searched string
}

func (s *stubPlants) Create(_ context.Context, in services.PlantInput) (*domain.Plant, error) {
	s.created = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Plant{ID: "p1", Name: *in.Name}, nil
}
func (s *stubPlants) Get(_ context.Context, id string) (*domain.Plant, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Plant{ID: id, Name: "Basilic"}, nil
}
func (s *stubPlants) List(context.Context) ([]domain.Plant, error) { return s.items, s.err }
func (s *stubPlants) SearchByCategory(_ context.Context, q string) ([]domain.Plant, error) {
	s.searched = q
	return s.items, s.err
}
func (s *stubPlants) Update(_ context.Context, id string, _ services.PlantInput) (*domain.Plant, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Plant{ID: id}, nil
}
func (s *stubPlants) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.err
}
func (s *stubPlants) DeleteMany(_ context.Context, ids []string) (int64, error) {
	s.deleted = append(s.deleted, ids...)
	return int64(len(ids)), s.err
}

type stubSessions struct {
	input   services.SessionInput
	patch   services.SessionPatch
	byID    map[string]*domain.WateringSession
	err     error
	getUser string
}

func (s *stubSessions) Create(_ context.Context, userID string, in services.SessionInput) (*domain.WateringSession, *domain.HistoryEntry, error) {
	s.input = in
	if s.err != nil {
		return nil, nil, s.err
	}
	sess := &domain.WateringSession{ID: "s1", UserID: userID, PlantID: in.PlantID, Kind: in.Kind, Active: true}
	return sess, domain.SnapshotOf(sess, time.Now()), nil
}
func (s *stubSessions) Get(_ context.Context, userID, id string) (*domain.WateringSession, error) {
	s.getUser = userID
	if sess, ok := s.byID[id]; ok && sess.UserID == userID {
		return sess, nil
	}
	return nil, services.ErrSessionNotFound
}
func (s *stubSessions) List(_ context.Context, userID string) ([]domain.WateringSession, error) {
	var out []domain.WateringSession
	for _, v := range s.byID {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, s.err
}
func (s *stubSessions) Update(_ context.Context, userID, id string, p services.SessionPatch) (*domain.WateringSession, *domain.HistoryEntry, error) {
	s.patch = p
	if s.err != nil {
		return nil, nil, s.err
	}
	sess := &domain.WateringSession{ID: id, UserID: userID}
	return sess, domain.SnapshotOf(sess, time.Now()), nil
}
func (s *stubSessions) Toggle(_ context.Context, userID, id string) (*domain.WateringSession, error) {
	sess, ok := s.byID[id]
	if !ok || sess.UserID != userID {
		return nil, services.ErrSessionNotFound
	}
	sess.Active = !sess.Active
	return sess, nil
}
func (s *stubSessions) Delete(_ context.Context, userID, id string) error {
	if sess, ok := s.byID[id]; ok && sess.UserID == userID {
		delete(s.byID, id)
		return nil
	}
	return services.ErrSessionNotFound
}

type stubTriggers struct {
	calls  int
	volume *float64
	err    error
	sess   *stubSessions
}

func (s *stubTriggers) TriggerPlant(_ context.Context, userID, plantID string, volume *float64) (*services.Triggered, error) {
	s.calls++
	s.volume = volume
	if s.err != nil {
		return nil, s.err
	}
	id := "trig-" + plantID
	sess := &domain.WateringSession{ID: id, UserID: userID, PlantID: plantID, Kind: domain.KindManual, Active: true}
	if s.sess != nil {
		if s.sess.byID == nil {
			s.sess.byID = map[string]*domain.WateringSession{}
		}
		s.sess.byID[id] = sess
	}
	return &services.Triggered{Session: sess, History: domain.SnapshotOf(sess, time.Now())}, nil
}
func (s *stubTriggers) TriggerAll(_ context.Context, userID string) ([]services.Triggered, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []services.Triggered{
		{Session: &domain.WateringSession{ID: "a", UserID: userID}},
		{Session: &domain.WateringSession{ID: "b", UserID: userID}},
	}, nil
}
func (s *stubTriggers) EmergencyStop(context.Context) (*services.StopResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &services.StopResult{Sessions: 3, History: 2}, nil
}

type stubPreview struct{ rep *services.TickReport }

func (s stubPreview) Preview(context.Context) (*services.TickReport, error) { return s.rep, nil }

type stubHistory struct {
	query   services.HistoryQuery
	page    *services.HistoryPage
	entries []domain.HistoryEntry
	err     error
	deleted string
}

func (s *stubHistory) List(_ context.Context, q services.HistoryQuery) (*services.HistoryPage, error) {
	s.query = q
	if s.err != nil {
		return nil, s.err
	}
	if s.page != nil {
		return s.page, nil
	}
	return &services.HistoryPage{Page: q.Page, Limit: q.Limit}, nil
}
func (s *stubHistory) All(_ context.Context, userID, plantID string, from, to *time.Time) ([]domain.HistoryEntry, error) {
	s.query = services.HistoryQuery{UserID: userID, PlantID: plantID, From: from, To: to}
	return s.entries, s.err
}
func (s *stubHistory) Delete(_ context.Context, _ string, id string) error {
	s.deleted = id
	return s.err
}

type stubStats struct {
	monthly []services.MonthlyStat
	period  string
}

func (s *stubStats) Monthly(context.Context, string, *time.Time, *time.Time) ([]services.MonthlyStat, error) {
	return s.monthly, nil
}
func (s *stubStats) Period(_ context.Context, _ string, period string) (*services.PeriodStats, error) {
	s.period = period
	if period != services.PeriodWeek && period != services.PeriodMonth {
		return nil, services.ErrValidation
	}
	return &services.PeriodStats{Period: period}, nil
}

type stubSensors struct {
	r   *actuator.SensorReading
	err error
}

func (s stubSensors) ReadSensors(context.Context) (*actuator.SensorReading, error) { return s.r, s.err }

type memIdem struct {
	recs  map[string]domain.Idempotency
	saves int
}

func (m *memIdem) Find(_ context.Context, userID, scope, key string, _ time.Time) (*domain.Idempotency, error) {
	if r, ok := m.recs[userID+"|"+scope+"|"+key]; ok {
		return &r, nil
	}
	return nil, nil
}
func (m *memIdem) Save(_ context.Context, userID, scope, key, resourceID string, status int) error {
	if m.recs == nil {
		m.recs = map[string]domain.Idempotency{}
	}
	m.saves++
	m.recs[userID+"|"+scope+"|"+key] = domain.Idempotency{UserID: userID, Scope: scope, Key: key, ResourceID: resourceID, Status: status}
	return nil
}

type stubVersions struct {
	n    int64
	last *time.Time
}

func (v stubVersions) PlantsVersion(context.Context) (int64, *time.Time, error) { return v.n, v.last, nil }
func (v stubVersions) SessionsVersion(context.Context, string) (int64, *time.Time, error) {
	return v.n, v.last, nil
}

// ---------- helpers ----------

// asUser simulates middleware.Authenticate.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, id)
		c.Set(middleware.CtxRole, domain.RoleUser)
		c.Next()
	}
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope decodes a success body with data into dst.
func envelope(t *testing.T, w *httptest.ResponseRecorder, dst any) Envelope {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("json: %v (%s)", err, w.Body.String())
	}
	if dst != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, dst); err != nil {
			t.Fatalf("data: %v", err)
		}
	}
	return Envelope{Success: raw.Success, Message: raw.Message}
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v (%s)", err, w.Body.String())
	}
	return er
}
