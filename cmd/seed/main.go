// Command seed wipes the catalog collections and repopulates them with
// a known data set: one admin, one regular user, three categories, and
// four products. Intended for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/infrastructure/config"
	mongodb "github.com/petitmarche/catalog-api/internal/infrastructure/db/mongo"
	"github.com/petitmarche/catalog-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	for _, name := range []string{"users", "categories", "products"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("drop failed")
		}
	}
	log.Info().Msg("collections dropped")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	users := mongodb.NewUserRepository(db)
	categories := mongodb.NewCategoryRepository(db)
	products := mongodb.NewProductRepository(db)

	now := time.Now().UTC()

	admin, err := users.Create(ctx, &domain.User{
		Email:        "admin@example.com",
		PasswordHash: mustHash("Admin123!"),
		Nom:          "Admin Principal",
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed admin failed")
	}

	user, err := users.Create(ctx, &domain.User{
		Email:        "user@example.com",
		PasswordHash: mustHash("User123!"),
		Nom:          "Utilisateur Test",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed user failed")
	}
	log.Info().Msg("users created")

	seedCategories := []struct {
		nom, description, owner string
	}{
		{"Électronique", "Appareils électroniques et gadgets", admin.ID},
		{"Vêtements", "Mode pour hommes, femmes et enfants", admin.ID},
		{"Alimentation", "Produits alimentaires et boissons", user.ID},
	}

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, sc := range seedCategories {
		created, err := categories.Create(ctx, &domain.Category{
			Nom:         sc.nom,
			Description: sc.description,
			CreatedBy:   sc.owner,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			log.Fatal().Err(err).Str("category", sc.nom).Msg("seed category failed")
		}
		categoryIDs[sc.nom] = created.ID
	}
	log.Info().Msg("categories created")

	seedProducts := []struct {
		nom, description string
		prix             float64
		quantite         int
		category, owner  string
	}{
		{"Smartphone Premium", "Dernier modèle avec caméra haute résolution", 999, 50, "Électronique", admin.ID},
		{"Ordinateur Portable", "16GB RAM, SSD 512GB, écran 15\"", 1299, 30, "Électronique", admin.ID},
		{"Jean Slim", "Jean délavé taille slim", 59, 100, "Vêtements", user.ID},
		{"Bouteille d'Eau", "Pack de 6 bouteilles 1L", 4.99, 200, "Alimentation", user.ID},
	}

	for _, sp := range seedProducts {
		if _, err := products.Create(ctx, &domain.Product{
			Nom:         sp.nom,
			Description: sp.description,
			Prix:        sp.prix,
			Quantite:    sp.quantite,
			CategoryID:  categoryIDs[sp.category],
			CreatedBy:   sp.owner,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			log.Fatal().Err(err).Str("product", sp.nom).Msg("seed product failed")
		}
	}
	log.Info().Msg("products created")

	log.Info().Msg("database seeded")
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
