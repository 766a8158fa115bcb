package service

import (
	"context"

	"elearn_backend/internal/domain"
	"elearn_backend/internal/storage"
)

// AccountService serves account reads and order history. Reading an
// account provisions it when missing, so no user ever sees a dead end.
type AccountService struct {
	base
}

func NewAccountService(sel *storage.Selector) *AccountService {
	return &AccountService{base{sel: sel}}
}

// GetOrCreate returns the user's account, provisioning it on first access
func (s *AccountService) GetOrCreate(ctx context.Context, userID uint) (*domain.Account, error) {
	var account *domain.Account
	err := s.run(func(backend storage.Backend) error {
		got, err := backend.GetOrCreateAccount(ctx, userID)
		if err != nil {
			return err
		}
		account = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Orders returns the user's purchase history, newest first
func (s *AccountService) Orders(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.run(func(backend storage.Backend) error {
		got, err := backend.ListOrders(ctx, userID)
		if err != nil {
			return err
		}
		orders = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
