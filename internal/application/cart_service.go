package application

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/pkg/apperr"
)

type CartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	VarietyID string `json:"varietyId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type RemoveCartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	VarietyID string `json:"varietyId" binding:"required"`
}

type CartService struct {
	Carts repo.CartRepository
}

func NewCartService(carts repo.CartRepository) *CartService {
	return &CartService{Carts: carts}
}

// Get returns the user's cart, or an empty one when none exists yet.
func (s *CartService) Get(ctx context.Context, user primitive.ObjectID) (*entity.Cart, error) {
	c, err := s.Carts.GetByUser(ctx, user)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return &entity.Cart{User: user, Items: []entity.CartItem{}}, nil
		}
		return nil, err
	}
	return c, nil
}

// AddItem merges by (product, variety): adding the same pair again bumps the
// quantity instead of duplicating the line.
func (s *CartService) AddItem(ctx context.Context, user primitive.ObjectID, in CartItemInput) (*entity.Cart, error) {
	productID, err := parseObjectID(in.ProductID)
	if err != nil {
		return nil, err
	}
	varietyID, err := parseObjectID(in.VarietyID)
	if err != nil {
		return nil, err
	}
	c, err := s.Carts.GetByUser(ctx, user)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		c = &entity.Cart{User: user, Items: []entity.CartItem{}}
	}
	merged := false
	for i := range c.Items {
		if c.Items[i].Product == productID && c.Items[i].Variety == varietyID {
			c.Items[i].Quantity += in.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, entity.CartItem{Product: productID, Variety: varietyID, Quantity: in.Quantity})
	}
	if err := s.Carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) RemoveItem(ctx context.Context, user primitive.ObjectID, in RemoveCartItemInput) (*entity.Cart, error) {
	productID, err := parseObjectID(in.ProductID)
	if err != nil {
		return nil, err
	}
	varietyID, err := parseObjectID(in.VarietyID)
	if err != nil {
		return nil, err
	}
	c, err := s.Carts.GetByUser(ctx, user)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Cart not found")
		}
		return nil, err
	}
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.Product == productID && it.Variety == varietyID {
			continue
		}
		kept = append(kept, it)
	}
	c.Items = kept
	if err := s.Carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear deletes the cart document and returns the removed cart, nil when
// there was none.
func (s *CartService) Clear(ctx context.Context, user primitive.ObjectID) (*entity.Cart, error) {
	c, err := s.Carts.DeleteByUser(ctx, user)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}
