package service

import (
	"context"

	"elearn_backend/internal/domain"
	"elearn_backend/internal/storage"

	"github.com/sirupsen/logrus"
)

// AuthService registers users and looks them up for login. Password
// hashing happens at the route layer; this service only ever sees hashes.
type AuthService struct {
	base
}

func NewAuthService(sel *storage.Selector) *AuthService {
	return &AuthService{base{sel: sel}}
}

// Register creates the user and provisions their account in the same
// breath, so a fresh registration can purchase immediately. A duplicate
// email surfaces as storage.ErrConflict.
func (s *AuthService) Register(ctx context.Context, name, phone, email, passwordHash string) (*domain.User, error) {
	var user *domain.User
	err := s.run(func(backend storage.Backend) error {
		created, err := backend.CreateUser(ctx, name, phone, email, passwordHash)
		if err != nil {
			return err
		}
		user = created
		// Account creation is best effort here; the read path provisions
		// lazily anyway
		if _, err := backend.GetOrCreateAccount(ctx, created.ID); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": created.ID,
				"error":   err.Error(),
			}).Warn("Failed to provision account at registration")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
		"backend": s.sel.Active().Name(),
	}).Info("User registered")
	return user, nil
}

// FindByEmail returns the user for login checks, storage.ErrNotFound when
// the email is unknown
func (s *AuthService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := s.run(func(backend storage.Backend) error {
		found, err := backend.FindUserByEmail(ctx, email)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
