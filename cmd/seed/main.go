package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/config"
	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/internal/infrastructure/mongodb"
	"github.com/greenkart/greenkart-api/pkg/helpers"
)

// seed provisions a verified admin account and a minimal demo catalog so a
// fresh environment is browsable immediately.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	users := mongodb.NewUserRepository(db)

	email := "admin@greenkart.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &entity.User{
		Name:            "GreenKart Admin",
		Email:           email,
		Password:        hash,
		Role:            entity.RoleAdmin,
		IsEmailVerified: true,
		LoginType:       entity.LoginTypePassword,
	}
	if err := users.Create(ctx, admin); err != nil {
		if !errors.Is(err, repo.ErrDuplicateKey) {
			log.Fatalf("failed to seed admin: %v", err)
		}
		existing, err := users.GetByEmail(ctx, email)
		if err != nil {
			log.Fatalf("failed to load existing admin: %v", err)
		}
		admin = existing
		fmt.Printf("admin already present: id=%s email=%s\n", admin.ID.Hex(), email)
	} else {
		fmt.Printf("seeded admin: id=%s email=%s password=%s\n", admin.ID.Hex(), email, password)
	}

	categories := mongodb.NewCategoryRepository(db)
	products := mongodb.NewProductRepository(db)
	varieties := mongodb.NewVarietyRepository(db)

	cat := &entity.Category{
		Title:         "Fresh Vegetables",
		Slug:          "fresh-vegetables",
		Description:   "Farm-picked daily",
		ImageURL:      "https://placehold.co/400x300",
		ImagePublicID: "seed/fresh-vegetables",
	}
	if err := categories.Create(ctx, cat); err != nil {
		if !errors.Is(err, repo.ErrDuplicateKey) {
			log.Fatalf("failed to seed category: %v", err)
		}
		existing, err := categories.GetBySlug(ctx, cat.Slug)
		if err != nil {
			log.Fatalf("failed to load existing category: %v", err)
		}
		cat = existing
		fmt.Printf("category already present: %s\n", cat.Slug)
	} else {
		fmt.Printf("seeded category: %s\n", cat.Slug)
	}

	p := &entity.Product{
		Title:       "Organic Spinach",
		Description: "Tender leaves, harvested this morning",
		Category:    cat.ID,
		Images: []entity.ProductImage{
			{URL: "https://placehold.co/400x300", PublicID: "seed/organic-spinach"},
		},
		VarietyIDs: []primitive.ObjectID{},
	}
	if err := products.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			fmt.Printf("product already present: %s\n", p.Title)
			return
		}
		log.Fatalf("failed to seed product: %v", err)
	}

	weight := 0.25
	ids, err := varieties.CreateMany(ctx, []entity.Variety{
		{Product: p.ID, Price: 30, Discount: 0, Stock: 100, Weight: &weight, Unit: "kg"},
	})
	if err != nil {
		log.Fatalf("failed to seed varieties: %v", err)
	}
	p.VarietyIDs = ids
	if err := products.Update(ctx, p); err != nil {
		log.Fatalf("failed to link varieties: %v", err)
	}
	fmt.Printf("seeded product: %s with %d variety\n", p.Title, len(ids))
}
