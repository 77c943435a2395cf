// Package seed loads a YAML description of the plant registry and the
// accounts to provision, and applies it idempotently.
//
// Example file:
//
//	admin:
//	  id: admin
//	  prenom: Ada
//	  nom: Lovelace
//	users:
//	  - id: jardinier
//	    prenom: Jean
//	    role: utilisateur
//	plants:
//	  - nom: Basilic
//	    categorie: Aromatique
//	    humiditeSol: 40
//	    volumeEau: 1.5
//	    luminosite: 300
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/auth"
	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

// File is the seed document.
type File struct {
	Admin  *Account  `yaml:"admin"`
	Users  []Account `yaml:"users"`
	Plants []Plant   `yaml:"plants"`
}

// Account provisions one user.
type Account struct {
	ID        string `yaml:"id"`
	FirstName string `yaml:"prenom"`
	LastName  string `yaml:"nom"`
	Role      string `yaml:"role"`
	Inactive  bool   `yaml:"inactif"`
}

// Plant is one registry entry. Pointers distinguish missing from zero so
// validation reports the absent field.
type Plant struct {
	Name                 *string  `yaml:"nom"`
	Category             *string  `yaml:"categorie"`
	RequiredSoilHumidity *float64 `yaml:"humiditeSol"`
	MaxWaterVolume       *float64 `yaml:"volumeEau"`
	RequiredLight        *float64 `yaml:"luminosite"`
}

// Report counts what Apply changed.
type Report struct {
	Users         int
	PlantsCreated int
	PlantsSkipped int
}

// Parse decodes a seed document, rejecting unknown keys.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &f, nil
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh)
}

// Apply provisions accounts and creates missing plants. Plants are matched
// by case-insensitive name, so re-running a seed does not duplicate them.
func Apply(ctx context.Context, db *gorm.DB, f *File) (*Report, error) {
	rep := &Report{}

	if f.Admin != nil {
		if f.Admin.ID == "" {
			return nil, fmt.Errorf("seed admin: id is required")
		}
		if _, err := auth.EnsureAdmin(ctx, db, f.Admin.ID, f.Admin.FirstName, f.Admin.LastName); err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		rep.Users++
	}
	for _, a := range f.Users {
		if a.ID == "" {
			return nil, fmt.Errorf("seed user: id is required")
		}
		role, ok := auth.NormalizeRole(a.Role)
		if !ok {
			return nil, fmt.Errorf("seed user %s: %w", a.ID, auth.ErrInvalidRole)
		}
		u := &domain.User{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, Role: role, Active: !a.Inactive}
		if err := repo.UpsertUser(ctx, db, u); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", a.ID, err)
		}
		rep.Users++
	}

	existing, err := repo.ListPlants(ctx, db)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		known[strings.ToLower(p.Name)] = struct{}{}
	}

	svc := &services.PlantService{DB: db}
	for i, p := range f.Plants {
		if p.Name != nil {
			if _, dup := known[strings.ToLower(strings.TrimSpace(*p.Name))]; dup {
				rep.PlantsSkipped++
				continue
			}
		}
		created, err := svc.Create(ctx, services.PlantInput{
			Name:                 p.Name,
			Category:             p.Category,
			RequiredSoilHumidity: p.RequiredSoilHumidity,
			MaxWaterVolume:       p.MaxWaterVolume,
			RequiredLight:        p.RequiredLight,
		})
		if err != nil {
			return nil, fmt.Errorf("seed plant #%d: %w", i+1, err)
		}
		known[strings.ToLower(created.Name)] = struct{}{}
		rep.PlantsCreated++
	}

	log.Info().
		Int("users", rep.Users).
		Int("plants_created", rep.PlantsCreated).
		Int("plants_skipped", rep.PlantsSkipped).
		Msg("seed applied")
	return rep, nil
}
