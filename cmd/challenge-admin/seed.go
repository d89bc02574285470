package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	"github.com/challenge-asso/challenge-admin/internal/shell/store"
)

// =============================================================================
// Seed File Format
// =============================================================================

// seedFile is a YAML catalog description used to bootstrap a fresh
// database before an edition: admin accounts, the edition itself,
// schools, sports, venues and the product catalog.
type seedFile struct {
	Admins []struct {
		Email    string `yaml:"email"`
		Name     string `yaml:"name"`
		Password string `yaml:"password"`
	} `yaml:"admins"`

	Editions []struct {
		Name      string    `yaml:"name"`
		Year      int       `yaml:"year"`
		StartDate time.Time `yaml:"start_date"`
		EndDate   time.Time `yaml:"end_date"`
		Active    bool      `yaml:"active"`
	} `yaml:"editions"`

	Schools []struct {
		Name        string `yaml:"name"`
		EmailDomain string `yaml:"email_domain"`
		Type        string `yaml:"type"`
		Address     string `yaml:"address"`
	} `yaml:"schools"`

	Sports []struct {
		Name          string `yaml:"name"`
		TeamCapacity  int    `yaml:"team_capacity"`
		SubstituteMax int    `yaml:"substitute_max"`
	} `yaml:"sports"`

	Locations []struct {
		Name      string  `yaml:"name"`
		Address   string  `yaml:"address"`
		Latitude  float64 `yaml:"latitude"`
		Longitude float64 `yaml:"longitude"`
	} `yaml:"locations"`

	Products []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Required    bool   `yaml:"required"`
		SchoolType  string `yaml:"school_type"`
		PublicType  string `yaml:"public_type"`
		Variants    []struct {
			Name       string `yaml:"name"`
			PriceCents int64  `yaml:"price_cents"`
			Enabled    bool   `yaml:"enabled"`
		} `yaml:"variants"`
	} `yaml:"products"`
}

// =============================================================================
// Seed Runner
// =============================================================================

// RunSeed loads a YAML catalog file into the database. Everything is
// written in one transaction; a half-applied seed never survives.
func RunSeed(cfg *Config, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	s, err := store.NewSQLiteStore(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	return s.WithTx(ctx, func(tx store.Store) error {
		for _, a := range seed.Admins {
			hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password for %s: %w", a.Email, err)
			}
			if err := tx.CreateAdmin(ctx, &domain.Admin{
				ID:           domain.NewID("adm"),
				Email:        a.Email,
				Name:         a.Name,
				PasswordHash: string(hash),
				CreatedAt:    now,
			}); err != nil {
				return err
			}
			logger.Info("seeded admin", "email", a.Email)
		}

		for _, e := range seed.Editions {
			if err := tx.CreateEdition(ctx, &domain.Edition{
				ID:        domain.NewID("ed"),
				Name:      e.Name,
				Year:      e.Year,
				StartDate: e.StartDate,
				EndDate:   e.EndDate,
				Active:    e.Active,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return err
			}
		}

		for _, sc := range seed.Schools {
			if err := tx.CreateSchool(ctx, &domain.School{
				ID:          domain.NewID("sch"),
				Name:        sc.Name,
				EmailDomain: sc.EmailDomain,
				Type:        domain.SchoolType(sc.Type),
				Address:     sc.Address,
				CreatedAt:   now,
				UpdatedAt:   now,
			}); err != nil {
				return err
			}
		}

		for _, sp := range seed.Sports {
			if err := tx.CreateSport(ctx, &domain.Sport{
				ID:            domain.NewID("sprt"),
				Name:          sp.Name,
				TeamCapacity:  sp.TeamCapacity,
				SubstituteMax: sp.SubstituteMax,
				CreatedAt:     now,
				UpdatedAt:     now,
			}); err != nil {
				return err
			}
		}

		for _, l := range seed.Locations {
			if err := tx.CreateLocation(ctx, &domain.Location{
				ID:        domain.NewID("loc"),
				Name:      l.Name,
				Address:   l.Address,
				Latitude:  l.Latitude,
				Longitude: l.Longitude,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return err
			}
		}

		for _, p := range seed.Products {
			product := &domain.Product{
				ID:          domain.NewID("prod"),
				Name:        p.Name,
				Description: p.Description,
				Required:    p.Required,
				SchoolType:  domain.SchoolType(p.SchoolType),
				PublicType:  domain.PublicType(p.PublicType),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			for _, v := range p.Variants {
				product.Variants = append(product.Variants, domain.ProductVariant{
					ID:         domain.NewID("var"),
					ProductID:  product.ID,
					Name:       v.Name,
					PriceCents: v.PriceCents,
					Enabled:    v.Enabled,
				})
			}
			if err := tx.CreateProduct(ctx, product); err != nil {
				return err
			}
		}

		logger.Info("seed loaded",
			"admins", len(seed.Admins),
			"editions", len(seed.Editions),
			"schools", len(seed.Schools),
			"sports", len(seed.Sports),
			"locations", len(seed.Locations),
			"products", len(seed.Products),
		)
		return nil
	})
}
