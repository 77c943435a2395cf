// Package domain defines the persistence models for plants, users, watering
// sessions and watering history. These types are mapped with GORM and form
// the core data layer of the irrigation backend.
//
// JSON field names follow the wire contract shared with the existing
// frontend and device bridge (French names), while Go names stay English.
package domain

import (
	"time"
)

// Kind distinguishes on-demand sessions from recurring scheduled ones.
type Kind string

const (
	// KindManual is an on-demand session with a short window starting now.
	KindManual Kind = "manuel"
	// KindAutomatic is a recurring session gated by soil humidity and light.
	KindAutomatic Kind = "automatique"
)

// Valid reports whether k is one of the enumerated kinds.
func (k Kind) Valid() bool { return k == KindManual || k == KindAutomatic }

// User roles.
const (
	RoleAdmin = "super-admin"
	RoleUser  = "utilisateur"
)

// Plant is a plant profile with the thresholds used to validate watering.
//
// Fields:
//   - RequiredSoilHumidity: minimum soil humidity (0–100) an automatic
//     session may target.
//   - MaxWaterVolume: upper bound, in liters, for one watering.
//   - RequiredLight: light requirement (> 0).
type Plant struct {
	ID                   string    `json:"id"           gorm:"type:char(36);primaryKey"`
	Name                 string    `json:"nom"          gorm:"type:varchar(255);not null;index"`
	Category             string    `json:"categorie"    gorm:"type:varchar(255);not null;index"`
	RequiredSoilHumidity float64   `json:"humiditeSol"  gorm:"not null"`
	MaxWaterVolume       float64   `json:"volumeEau"    gorm:"not null"`
	RequiredLight        float64   `json:"luminosite"   gorm:"not null"`
	CreatedAt            time.Time `json:"date_creation"`
	UpdatedAt            time.Time `json:"date_modification"`
}

// TableName returns the database table name for Plant.
func (Plant) TableName() string { return "plants" }

// User is the minimal account view consumed by the watering core: identity,
// role and whether the account is enabled. Credentials live elsewhere.
type User struct {
	ID        string    `json:"id"        gorm:"type:varchar(64);primaryKey"`
	FirstName string    `json:"prenom"    gorm:"type:varchar(255)"`
	LastName  string    `json:"nom"       gorm:"type:varchar(255)"`
	Role      string    `json:"role"      gorm:"type:varchar(32);not null;default:'utilisateur'"`
	Active    bool      `json:"actif"     gorm:"not null"`
	CreatedAt time.Time `json:"date_creation"`
	UpdatedAt time.Time `json:"date_modification"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// WateringParams are the thresholds of an automatic session. Volume mirrors
// the session's top-level volume; the top-level value is authoritative.
type WateringParams struct {
	RequiredSoilHumidity float64 `json:"humiditeSolRequise"`
	RequiredLight        float64 `json:"luminositeRequise"`
	Volume               float64 `json:"volumeEau"`
}

// WateringSession is a scheduled or in-flight watering of one plant.
//
// Start and End are times of day; End is strictly after Start for
// user-supplied windows. Params is set for automatic sessions only and is
// stored as a JSON column.
type WateringSession struct {
	ID        string          `json:"id"                           gorm:"type:char(36);primaryKey"`
	PlantID   string          `json:"plante"                       gorm:"type:char(36);not null;index"`
	UserID    string          `json:"utilisateur"                  gorm:"type:varchar(64);not null;index:idx_user_sessions"`
	Kind      Kind            `json:"type"                         gorm:"type:varchar(16);not null;index:idx_due_sessions,priority:2"`
	Start     TimeOfDay       `json:"heureDebut"                   gorm:"embedded;embeddedPrefix:start_"`
	End       TimeOfDay       `json:"heureFin"                     gorm:"embedded;embeddedPrefix:end_"`
	Volume    float64         `json:"volumeEau"                    gorm:"not null"`
	Params    *WateringParams `json:"parametresArrosage,omitempty" gorm:"type:text;serializer:json"`
	Active    bool            `json:"actif"                        gorm:"not null;index:idx_due_sessions,priority:1"`
	CreatedAt time.Time       `json:"date_creation"                gorm:"index:idx_user_sessions"`
	UpdatedAt time.Time       `json:"date_modification"`

	// Display-only plant fields, filled on reads.
	PlantName     string `json:"nomPlante,omitempty"       gorm:"-"`
	PlantCategory string `json:"categoriePlante,omitempty" gorm:"-"`
}

// TableName returns the database table name for WateringSession.
func (WateringSession) TableName() string { return "watering_sessions" }

// EffectiveVolume returns the canonical volume of the session: the
// top-level value, or the nested parameter volume for legacy rows that
// only carry the latter.
func (s *WateringSession) EffectiveVolume() float64 {
	if s.Volume > 0 {
		return s.Volume
	}
	if s.Params != nil {
		return s.Params.Volume
	}
	return 0
}

// HistoryEntry is an immutable snapshot of a session taken when the session
// was created, edited or manually triggered. Entries keep weak references
// (ids) so they outlive the session they were taken from.
type HistoryEntry struct {
	ID         string          `json:"id"                           gorm:"type:char(36);primaryKey"`
	PlantID    string          `json:"plante"                       gorm:"type:char(36);not null;index"`
	UserID     string          `json:"utilisateur"                  gorm:"type:varchar(64);not null;index:idx_user_history,priority:1"`
	SessionID  string          `json:"id_arrosage"                  gorm:"type:char(36);not null;index"`
	Kind       Kind            `json:"type"                         gorm:"type:varchar(16);not null"`
	Start      TimeOfDay       `json:"heureDebut"                   gorm:"embedded;embeddedPrefix:start_"`
	End        TimeOfDay       `json:"heureFin"                     gorm:"embedded;embeddedPrefix:end_"`
	Volume     float64         `json:"volumeEau"                    gorm:"not null"`
	Params     *WateringParams `json:"parametresArrosage,omitempty" gorm:"type:text;serializer:json"`
	Active     bool            `json:"actif"                        gorm:"not null"`
	RecordedAt time.Time       `json:"date"                         gorm:"not null;index:idx_user_history,priority:2"`

	PlantName     string `json:"nomPlante,omitempty"       gorm:"-"`
	PlantCategory string `json:"categoriePlante,omitempty" gorm:"-"`
}

// TableName returns the database table name for HistoryEntry.
func (HistoryEntry) TableName() string { return "watering_history" }

// SnapshotOf builds a history entry mirroring s at time at. ID is left for
// the repository to assign.
func SnapshotOf(s *WateringSession, at time.Time) *HistoryEntry {
	h := &HistoryEntry{
		PlantID:    s.PlantID,
		UserID:     s.UserID,
		SessionID:  s.ID,
		Kind:       s.Kind,
		Start:      s.Start,
		End:        s.End,
		Volume:     s.Volume,
		Active:     s.Active,
		RecordedAt: at,
	}
	if s.Params != nil {
		p := *s.Params
		h.Params = &p
	}
	return h
}
