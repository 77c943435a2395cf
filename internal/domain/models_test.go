package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(Plant{}).TableName():           "plants",
		(User{}).TableName():            "users",
		(WateringSession{}).TableName(): "watering_sessions",
		(HistoryEntry{}).TableName():    "watering_history",
		(Idempotency{}).TableName():     "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestKind_Valid(t *testing.T) {
	if !KindManual.Valid() || !KindAutomatic.Valid() {
		t.Fatalf("enumerated kinds must be valid")
	}
	for _, k := range []Kind{"", "manual", "automatic", "MANUEL"} {
		if k.Valid() {
			t.Fatalf("kind %q should be invalid", k)
		}
	}
}

func TestMigrations_Indexes_AndParamsRoundTrip(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Plant{}, &User{}, &WateringSession{}, &HistoryEntry{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	for _, tbl := range []any{&Plant{}, &User{}, &WateringSession{}, &HistoryEntry{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&WateringSession{}, "idx_due_sessions") {
		t.Fatalf("expected index idx_due_sessions on watering_sessions")
	}
	if !m.HasIndex(&HistoryEntry{}, "idx_user_history") {
		t.Fatalf("expected index idx_user_history on watering_history")
	}
	for _, col := range []string{"start_hour", "start_minute", "start_second", "end_hour", "end_minute", "end_second"} {
		if !m.HasColumn(&WateringSession{}, col) {
			t.Fatalf("expected column %s on watering_sessions", col)
		}
	}

	now := time.Now().UTC()
	auto := &WateringSession{
		ID: "s1", PlantID: "p1", UserID: "u1", Kind: KindAutomatic,
		Start: TimeOfDay{8, 0, 0}, End: TimeOfDay{8, 10, 0},
		Volume: 2, Params: &WateringParams{RequiredSoilHumidity: 40, RequiredLight: 300, Volume: 2},
		Active: true, CreatedAt: now, UpdatedAt: now,
	}
	manual := &WateringSession{
		ID: "s2", PlantID: "p1", UserID: "u1", Kind: KindManual,
		Start: TimeOfDay{9, 0, 0}, End: TimeOfDay{9, 5, 0},
		Volume: 1, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := db.Create(auto).Error; err != nil {
		t.Fatalf("insert automatic: %v", err)
	}
	if err := db.Create(manual).Error; err != nil {
		t.Fatalf("insert manual: %v", err)
	}

	var gotAuto, gotManual WateringSession
	if err := db.First(&gotAuto, "id = ?", "s1").Error; err != nil {
		t.Fatalf("read automatic: %v", err)
	}
	if gotAuto.Params == nil || gotAuto.Params.RequiredSoilHumidity != 40 || gotAuto.Params.Volume != 2 {
		t.Fatalf("params not round-tripped: %+v", gotAuto.Params)
	}
	if gotAuto.Start != (TimeOfDay{8, 0, 0}) || gotAuto.End != (TimeOfDay{8, 10, 0}) {
		t.Fatalf("window not round-tripped: %v-%v", gotAuto.Start, gotAuto.End)
	}
	if err := db.First(&gotManual, "id = ?", "s2").Error; err != nil {
		t.Fatalf("read manual: %v", err)
	}
	if gotManual.Params != nil {
		t.Fatalf("manual session must not carry params, got %+v", gotManual.Params)
	}
}

func TestWateringSession_JSONWireNames(t *testing.T) {
	s := WateringSession{
		ID: "s1", PlantID: "p1", UserID: "u1", Kind: KindAutomatic,
		Start: TimeOfDay{8, 0, 0}, End: TimeOfDay{8, 10, 30},
		Volume: 2, Params: &WateringParams{RequiredSoilHumidity: 40, RequiredLight: 300, Volume: 2},
		Active: true,
	}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(b)
	for _, want := range []string{
		`"plante":"p1"`, `"utilisateur":"u1"`, `"type":"automatique"`,
		`"heureDebut":{"heures":8,"minutes":0,"secondes":0}`,
		`"heureFin":{"heures":8,"minutes":10,"secondes":30}`,
		`"volumeEau":2`, `"parametresArrosage":{"humiditeSolRequise":40,"luminositeRequise":300,"volumeEau":2}`,
		`"actif":true`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}

	s.Params = nil
	b, _ = json.Marshal(s)
	if strings.Contains(string(b), "parametresArrosage") {
		t.Fatalf("manual session JSON must omit parametresArrosage: %s", b)
	}
}

func TestEffectiveVolume(t *testing.T) {
	s := &WateringSession{Volume: 3, Params: &WateringParams{Volume: 9}}
	if got := s.EffectiveVolume(); got != 3 {
		t.Fatalf("top-level volume must win, got %v", got)
	}
	s.Volume = 0
	if got := s.EffectiveVolume(); got != 9 {
		t.Fatalf("nested volume is the fallback, got %v", got)
	}
	s.Params = nil
	if got := s.EffectiveVolume(); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestSnapshotOf_CopiesStateAndDetachesParams(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	s := &WateringSession{
		ID: "s1", PlantID: "p1", UserID: "u1", Kind: KindAutomatic,
		Start: TimeOfDay{8, 0, 0}, End: TimeOfDay{8, 5, 0}, Volume: 2,
		Params: &WateringParams{RequiredSoilHumidity: 40, RequiredLight: 300, Volume: 2},
		Active: true,
	}
	h := SnapshotOf(s, at)
	if h.SessionID != "s1" || h.PlantID != "p1" || h.UserID != "u1" || h.Kind != KindAutomatic {
		t.Fatalf("references not copied: %+v", h)
	}
	if h.Start != s.Start || h.End != s.End || h.Volume != 2 || !h.Active || !h.RecordedAt.Equal(at) {
		t.Fatalf("state not copied: %+v", h)
	}
	s.Params.RequiredSoilHumidity = 99
	if h.Params.RequiredSoilHumidity != 40 {
		t.Fatalf("snapshot must not alias session params")
	}
}
