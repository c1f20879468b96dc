package application

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/pkg/apperr"
)

type CreateCategoryInput struct {
	Title         string `json:"title" binding:"required"`
	Slug          string `json:"slug" binding:"required"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl" binding:"required"`
	ImagePublicID string `json:"imagePublicId" binding:"required"`
}

// UpdateCategoryInput carries partial updates; nil means leave unchanged.
type UpdateCategoryInput struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Description   *string `json:"description"`
	ImageURL      *string `json:"imageUrl"`
	ImagePublicID *string `json:"imagePublicId"`
}

type ProductImageInput struct {
	URL      string `json:"url" binding:"required"`
	PublicID string `json:"publicId" binding:"required"`
}

type VarietyInput struct {
	Price    *float64 `json:"price"`
	Discount *float64 `json:"discount"`
	Stock    *int     `json:"stock"`
	Weight   *float64 `json:"weight"`
	Quantity *int     `json:"quantity"`
	Unit     *string  `json:"unit"`
}

type CreateProductInput struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Category    string              `json:"category" binding:"required"`
	Images      []ProductImageInput `json:"images" binding:"required,min=1,dive"`
	Varieties   []VarietyInput      `json:"varieties"`
}

type UpdateProductInput struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Category    *string             `json:"category"`
	Images      []ProductImageInput `json:"images"`
}

// CatalogService covers categories, products and their varieties.
type CatalogService struct {
	Categories repo.CategoryRepository
	Products   repo.ProductRepository
	Varieties  repo.VarietyRepository
}

func NewCatalogService(categories repo.CategoryRepository, products repo.ProductRepository, varieties repo.VarietyRepository) *CatalogService {
	return &CatalogService{Categories: categories, Products: products, Varieties: varieties}
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*entity.Category, error) {
	slug := normalizeSlug(in.Slug)
	if _, err := s.Categories.GetBySlug(ctx, slug); err == nil {
		return nil, apperr.Conflict("Category with this slug already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	c := &entity.Category{
		Title:         strings.TrimSpace(in.Title),
		Slug:          slug,
		Description:   strings.TrimSpace(in.Description),
		ImageURL:      strings.TrimSpace(in.ImageURL),
		ImagePublicID: strings.TrimSpace(in.ImagePublicID),
	}
	if err := s.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, apperr.Conflict("Category with this slug already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id primitive.ObjectID, in UpdateCategoryInput) (*entity.Category, error) {
	if in.Title == nil && in.Slug == nil && in.Description == nil && in.ImageURL == nil && in.ImagePublicID == nil {
		return nil, apperr.BadRequest("No fields provided to update")
	}
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, err
	}
	if in.Slug != nil {
		slug := normalizeSlug(*in.Slug)
		if other, err := s.Categories.GetBySlug(ctx, slug); err == nil && other.ID != id {
			return nil, apperr.Conflict("Category with this slug already exists")
		} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		c.Slug = slug
	}
	if in.Title != nil {
		c.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.ImageURL != nil {
		c.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.ImagePublicID != nil {
		c.ImagePublicID = strings.TrimSpace(*in.ImagePublicID)
	}
	if err := s.Categories.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, apperr.Conflict("Category with this slug already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, err
	}
	if err := s.Categories.Delete(ctx, id); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.ProductWithRefs, error) {
	return s.Products.List(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	categoryID, err := parseObjectID(in.Category)
	if err != nil {
		return nil, apperr.BadRequest("Invalid category id")
	}
	if _, err := s.Categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, err
	}
	images := make([]entity.ProductImage, 0, len(in.Images))
	for _, img := range in.Images {
		images = append(images, entity.ProductImage{
			URL:      strings.TrimSpace(img.URL),
			PublicID: strings.TrimSpace(img.PublicID),
		})
	}
	p := &entity.Product{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    categoryID,
		Images:      images,
		VarietyIDs:  []primitive.ObjectID{},
	}
	if err := s.Products.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, apperr.Conflict("Product with this title already exists in the category")
		}
		return nil, err
	}
	if len(in.Varieties) > 0 {
		vs := make([]entity.Variety, 0, len(in.Varieties))
		for _, v := range in.Varieties {
			if v.Price == nil || v.Stock == nil {
				continue
			}
			nv := entity.Variety{Product: p.ID, Price: *v.Price, Stock: *v.Stock}
			if v.Discount != nil {
				nv.Discount = *v.Discount
			}
			nv.Weight = v.Weight
			nv.Quantity = v.Quantity
			if v.Unit != nil {
				nv.Unit = strings.TrimSpace(*v.Unit)
			}
			vs = append(vs, nv)
		}
		if len(vs) > 0 {
			ids, err := s.Varieties.CreateMany(ctx, vs)
			if err != nil {
				return nil, err
			}
			p.VarietyIDs = ids
			if err := s.Products.Update(ctx, p); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id primitive.ObjectID, in UpdateProductInput) (*entity.Product, error) {
	if in.Title == nil && in.Description == nil && in.Category == nil && in.Images == nil {
		return nil, apperr.BadRequest("No fields provided to update")
	}
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	if in.Category != nil {
		categoryID, err := parseObjectID(*in.Category)
		if err != nil {
			return nil, apperr.BadRequest("Invalid category id")
		}
		if _, err := s.Categories.GetByID(ctx, categoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, apperr.NotFound("Category not found")
			}
			return nil, err
		}
		p.Category = categoryID
	}
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Images != nil {
		if len(in.Images) == 0 {
			return nil, apperr.BadRequest("images must include url and publicId for each item")
		}
		images := make([]entity.ProductImage, 0, len(in.Images))
		for _, img := range in.Images {
			images = append(images, entity.ProductImage{
				URL:      strings.TrimSpace(img.URL),
				PublicID: strings.TrimSpace(img.PublicID),
			})
		}
		p.Images = images
	}
	if err := s.Products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, apperr.Conflict("Product with this title already exists in the category")
		}
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes the product and every variety linked to it.
func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	if err := s.Products.Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Varieties.DeleteByProduct(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) AddVariety(ctx context.Context, productID primitive.ObjectID, in VarietyInput) (*entity.Variety, error) {
	if in.Price == nil || in.Stock == nil {
		return nil, apperr.BadRequest("price and stock must be numbers")
	}
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	v := &entity.Variety{Product: productID, Price: *in.Price, Stock: *in.Stock}
	if in.Discount != nil {
		v.Discount = *in.Discount
	}
	v.Weight = in.Weight
	v.Quantity = in.Quantity
	if in.Unit != nil {
		v.Unit = strings.TrimSpace(*in.Unit)
	}
	if err := s.Varieties.Create(ctx, v); err != nil {
		return nil, err
	}
	if err := s.Products.PushVariety(ctx, productID, v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *CatalogService) UpdateVariety(ctx context.Context, productID, varietyID primitive.ObjectID, in VarietyInput) (*entity.Variety, error) {
	v, err := s.Varieties.GetByProductAndID(ctx, productID, varietyID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Variety not found for this product")
		}
		return nil, err
	}
	if in.Price != nil {
		v.Price = *in.Price
	}
	if in.Discount != nil {
		v.Discount = *in.Discount
	}
	if in.Stock != nil {
		v.Stock = *in.Stock
	}
	if in.Weight != nil {
		v.Weight = in.Weight
	}
	if in.Quantity != nil {
		v.Quantity = in.Quantity
	}
	if in.Unit != nil {
		v.Unit = strings.TrimSpace(*in.Unit)
	}
	if err := s.Varieties.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVariety removes the variety and unlinks it from its product.
func (s *CatalogService) DeleteVariety(ctx context.Context, productID, varietyID primitive.ObjectID) (*entity.Variety, error) {
	v, err := s.Varieties.DeleteByProductAndID(ctx, productID, varietyID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Variety not found for this product")
		}
		return nil, err
	}
	if err := s.Products.PullVariety(ctx, productID, varietyID); err != nil {
		return nil, err
	}
	return v, nil
}
