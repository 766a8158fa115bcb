package service

import (
	"context"
	"errors"

	"elearn_backend/internal/domain"
	"elearn_backend/internal/storage"

	"github.com/sirupsen/logrus"
)

// ErrInvalidPrice rejects purchases with a negative price before any
// storage work happens.
var ErrInvalidPrice = errors.New("invalid price")

// PurchaseService runs the course purchase workflow: provision the account
// if needed, then debit and record the order as one atomic unit on the
// active backend.
type PurchaseService struct {
	base
}

func NewPurchaseService(sel *storage.Selector) *PurchaseService {
	return &PurchaseService{base{sel: sel}}
}

// Purchase buys a course for the user. The course fields arrive from the
// caller as-is; catalog validation is the route layer's business. Returns
// storage.ErrInsufficientFunds when the balance cannot cover the price, in
// which case nothing changed.
func (s *PurchaseService) Purchase(ctx context.Context, userID, courseID uint, courseTitle string, price float64) (*domain.Order, error) {
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	var order *domain.Order
	err := s.run(func(backend storage.Backend) error {
		// Provision first so a brand-new user can buy right away
		if _, err := backend.GetOrCreateAccount(ctx, userID); err != nil {
			return err
		}
		created, err := backend.ExecutePurchase(ctx, userID, courseID, courseTitle, price)
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrInsufficientFunds) {
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,
				"course_id": courseID,
				"price":     price,
			}).Info("Purchase rejected, insufficient funds")
		}
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"order_id":     order.ID,
		"course_id":    courseID,
		"course_title": courseTitle,
		"price":        price,
		"backend":      s.sel.Active().Name(),
	}).Info("Course purchased")
	return order, nil
}
