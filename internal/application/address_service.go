package application

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/pkg/apperr"
)

type AddressInput struct {
	FullName    string   `json:"fullName" binding:"required"`
	PhoneNumber string   `json:"phoneNumber" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Landmarks   string   `json:"landmarks"`
	Village     string   `json:"village" binding:"required"`
	Pincode     string   `json:"pincode" binding:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	IsDefault   bool     `json:"isDefault"`
}

type AddressService struct {
	Addresses repo.AddressRepository
	Users     repo.UserRepository
}

func NewAddressService(addresses repo.AddressRepository, users repo.UserRepository) *AddressService {
	return &AddressService{Addresses: addresses, Users: users}
}

func (s *AddressService) Create(ctx context.Context, user primitive.ObjectID, in AddressInput) (*entity.Address, error) {
	if _, err := s.Users.GetByID(ctx, user); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	a := &entity.Address{
		User:        user,
		FullName:    in.FullName,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		Landmarks:   in.Landmarks,
		Village:     in.Village,
		Pincode:     in.Pincode,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		IsDefault:   in.IsDefault,
	}
	if err := s.Addresses.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AddressService) List(ctx context.Context, user primitive.ObjectID) ([]entity.Address, error) {
	return s.Addresses.ListByUser(ctx, user)
}

// Update replaces the address fields; the match is owner-scoped so one user
// cannot edit another's address.
func (s *AddressService) Update(ctx context.Context, user, id primitive.ObjectID, in AddressInput) (*entity.Address, error) {
	a := &entity.Address{
		FullName:    in.FullName,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		Landmarks:   in.Landmarks,
		Village:     in.Village,
		Pincode:     in.Pincode,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		IsDefault:   in.IsDefault,
	}
	updated, err := s.Addresses.UpdateByUserAndID(ctx, user, id, a)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Address not found")
		}
		return nil, err
	}
	return updated, nil
}

func (s *AddressService) Delete(ctx context.Context, user, id primitive.ObjectID) (*entity.Address, error) {
	deleted, err := s.Addresses.DeleteByUserAndID(ctx, user, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Address not found")
		}
		return nil, err
	}
	return deleted, nil
}
