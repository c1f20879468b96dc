package application_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	app "github.com/greenkart/greenkart-api/internal/application"
	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/pkg/apperr"
)

type memoryCategoryRepo struct {
	byID map[primitive.ObjectID]*entity.Category
}

func newMemoryCategoryRepo() *memoryCategoryRepo {
	return &memoryCategoryRepo{byID: map[primitive.ObjectID]*entity.Category{}}
}

func (m *memoryCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, existing := range m.byID {
		if existing.Slug == c.Slug {
			return repo.ErrDuplicateKey
		}
	}
	c.ID = primitive.NewObjectID()
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memoryCategoryRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memoryCategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range m.byID {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memoryCategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memoryCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := m.byID[c.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memoryCategoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memoryProductRepo struct {
	byID map[primitive.ObjectID]*entity.Product
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{byID: map[primitive.ObjectID]*entity.Product{}}
}

func (m *memoryProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range m.byID {
		if existing.Title == p.Title && existing.Category == p.Category {
			return repo.ErrDuplicateKey
		}
	}
	p.ID = primitive.NewObjectID()
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memoryProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryProductRepo) List(_ context.Context) ([]entity.ProductWithRefs, error) {
	return nil, nil
}

func (m *memoryProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memoryProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryProductRepo) PushVariety(_ context.Context, productID, varietyID primitive.ObjectID) error {
	p, ok := m.byID[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.VarietyIDs = append(p.VarietyIDs, varietyID)
	return nil
}

func (m *memoryProductRepo) PullVariety(_ context.Context, productID, varietyID primitive.ObjectID) error {
	p, ok := m.byID[productID]
	if !ok {
		return repo.ErrNotFound
	}
	kept := p.VarietyIDs[:0]
	for _, id := range p.VarietyIDs {
		if id != varietyID {
			kept = append(kept, id)
		}
	}
	p.VarietyIDs = kept
	return nil
}

type memoryVarietyRepo struct {
	byID map[primitive.ObjectID]*entity.Variety
}

func newMemoryVarietyRepo() *memoryVarietyRepo {
	return &memoryVarietyRepo{byID: map[primitive.ObjectID]*entity.Variety{}}
}

func (m *memoryVarietyRepo) Create(_ context.Context, v *entity.Variety) error {
	v.ID = primitive.NewObjectID()
	cp := *v
	m.byID[v.ID] = &cp
	return nil
}

func (m *memoryVarietyRepo) CreateMany(_ context.Context, vs []entity.Variety) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(vs))
	for i := range vs {
		v := vs[i]
		v.ID = primitive.NewObjectID()
		m.byID[v.ID] = &v
		ids = append(ids, v.ID)
	}
	return ids, nil
}

func (m *memoryVarietyRepo) GetByProductAndID(_ context.Context, productID, id primitive.ObjectID) (*entity.Variety, error) {
	v, ok := m.byID[id]
	if !ok || v.Product != productID {
		return nil, repo.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memoryVarietyRepo) Update(_ context.Context, v *entity.Variety) error {
	if _, ok := m.byID[v.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *v
	m.byID[v.ID] = &cp
	return nil
}

func (m *memoryVarietyRepo) DeleteByProductAndID(_ context.Context, productID, id primitive.ObjectID) (*entity.Variety, error) {
	v, ok := m.byID[id]
	if !ok || v.Product != productID {
		return nil, repo.ErrNotFound
	}
	delete(m.byID, id)
	return v, nil
}

func (m *memoryVarietyRepo) DeleteByProduct(_ context.Context, productID primitive.ObjectID) error {
	for id, v := range m.byID {
		if v.Product == productID {
			delete(m.byID, id)
		}
	}
	return nil
}

func newCatalogService() (*app.CatalogService, *memoryVarietyRepo) {
	varieties := newMemoryVarietyRepo()
	return app.NewCatalogService(newMemoryCategoryRepo(), newMemoryProductRepo(), varieties), varieties
}

func categoryInput(slug string) app.CreateCategoryInput {
	return app.CreateCategoryInput{
		Title:         "Fresh Vegetables",
		Slug:          slug,
		ImageURL:      "https://cdn.example.com/veg.jpg",
		ImagePublicID: "greenkart/veg",
	}
}

func TestCreateCategoryNormalizesSlug(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, categoryInput("  Fresh-Vegetables "))
	require.NoError(t, err)
	require.Equal(t, "fresh-vegetables", c.Slug)

	_, err = svc.CreateCategory(ctx, categoryInput("fresh-vegetables"))
	require.Error(t, err)
	require.Equal(t, http.StatusConflict, apperr.From(err).Status)
}

func TestUpdateCategory(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, categoryInput("fresh-vegetables"))
	require.NoError(t, err)
	other, err := svc.CreateCategory(ctx, categoryInput("leafy-greens"))
	require.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, c.ID, app.UpdateCategoryInput{})
	require.Error(t, err)
	require.Equal(t, "No fields provided to update", apperr.From(err).Message)

	taken := other.Slug
	_, err = svc.UpdateCategory(ctx, c.ID, app.UpdateCategoryInput{Slug: &taken})
	require.Error(t, err)
	require.Equal(t, http.StatusConflict, apperr.From(err).Status)

	// Re-saving a category under its own slug is fine.
	own := c.Slug
	title := "Root Vegetables"
	updated, err := svc.UpdateCategory(ctx, c.ID, app.UpdateCategoryInput{Slug: &own, Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Root Vegetables", updated.Title)
}

func TestCreateProductWithVarieties(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, categoryInput("fresh-vegetables"))
	require.NoError(t, err)

	price, stock := 30.0, 100
	p, err := svc.CreateProduct(ctx, app.CreateProductInput{
		Title:    "Organic Spinach",
		Category: c.ID.Hex(),
		Images:   []app.ProductImageInput{{URL: "https://cdn.example.com/spinach.jpg", PublicID: "greenkart/spinach"}},
		Varieties: []app.VarietyInput{
			{Price: &price, Stock: &stock},
			{Price: &price}, // missing stock, skipped
		},
	})
	require.NoError(t, err)
	require.Len(t, p.VarietyIDs, 1)

	_, err = svc.CreateProduct(ctx, app.CreateProductInput{
		Title:    "Organic Spinach",
		Category: c.ID.Hex(),
		Images:   []app.ProductImageInput{{URL: "https://cdn.example.com/spinach.jpg", PublicID: "greenkart/spinach"}},
	})
	require.Error(t, err)
	require.Equal(t, "Product with this title already exists in the category", apperr.From(err).Message)

	_, err = svc.CreateProduct(ctx, app.CreateProductInput{
		Title:    "Orphan",
		Category: primitive.NewObjectID().Hex(),
		Images:   []app.ProductImageInput{{URL: "https://cdn.example.com/x.jpg", PublicID: "greenkart/x"}},
	})
	require.Error(t, err)
	require.Equal(t, "Category not found", apperr.From(err).Message)
}

func TestVarietyLifecycle(t *testing.T) {
	svc, varieties := newCatalogService()
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, categoryInput("fresh-vegetables"))
	require.NoError(t, err)
	p, err := svc.CreateProduct(ctx, app.CreateProductInput{
		Title:    "Organic Spinach",
		Category: c.ID.Hex(),
		Images:   []app.ProductImageInput{{URL: "https://cdn.example.com/spinach.jpg", PublicID: "greenkart/spinach"}},
	})
	require.NoError(t, err)

	_, err = svc.AddVariety(ctx, p.ID, app.VarietyInput{})
	require.Error(t, err)
	require.Equal(t, "price and stock must be numbers", apperr.From(err).Message)

	price, stock := 30.0, 100
	v, err := svc.AddVariety(ctx, p.ID, app.VarietyInput{Price: &price, Stock: &stock})
	require.NoError(t, err)
	require.Equal(t, 30.0, v.Price)

	newPrice := 25.0
	updated, err := svc.UpdateVariety(ctx, p.ID, v.ID, app.VarietyInput{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 25.0, updated.Price)
	require.Equal(t, 100, updated.Stock)

	_, err = svc.UpdateVariety(ctx, primitive.NewObjectID(), v.ID, app.VarietyInput{Price: &newPrice})
	require.Error(t, err)
	require.Equal(t, "Variety not found for this product", apperr.From(err).Message)

	deleted, err := svc.DeleteVariety(ctx, p.ID, v.ID)
	require.NoError(t, err)
	require.Equal(t, v.ID, deleted.ID)
	require.Empty(t, varieties.byID)
}

func TestDeleteProductCascades(t *testing.T) {
	svc, varieties := newCatalogService()
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, categoryInput("fresh-vegetables"))
	require.NoError(t, err)
	price, stock := 30.0, 100
	p, err := svc.CreateProduct(ctx, app.CreateProductInput{
		Title:     "Organic Spinach",
		Category:  c.ID.Hex(),
		Images:    []app.ProductImageInput{{URL: "https://cdn.example.com/spinach.jpg", PublicID: "greenkart/spinach"}},
		Varieties: []app.VarietyInput{{Price: &price, Stock: &stock}},
	})
	require.NoError(t, err)
	require.Len(t, varieties.byID, 1)

	_, err = svc.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, varieties.byID)

	_, err = svc.DeleteProduct(ctx, p.ID)
	require.Error(t, err)
	require.Equal(t, "Product not found", apperr.From(err).Message)
}
