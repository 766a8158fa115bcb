package storage

import (
	"context"
	"errors"

	"elearn_backend/internal/domain"
)

// Error kinds surfaced by every Backend implementation. Handlers match these
// with errors.Is to pick a status code; anything else is treated as a 500.
var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("email already registered")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAccountNotFound    = errors.New("account not found")
	ErrBackendUnavailable = errors.New("storage backend unavailable")
	ErrTransactionFailed  = errors.New("transaction failed")
)

// QuestionFilter narrows ListQuestions. Zero value lists everything.
type QuestionFilter struct {
	UserID uint // only this user's questions when non-zero
}

// Backend is the capability contract shared by the durable MySQL store and
// the in-memory fallback. Semantics are identical across implementations;
// durability is not. Callers that need to know which mode is active go
// through the Selector.
type Backend interface {
	// FindUserByEmail returns ErrNotFound when no user has the email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// CreateUser returns ErrConflict when the email is already taken.
	CreateUser(ctx context.Context, name, phone, email, passwordHash string) (*domain.User, error)

	// GetOrCreateAccount returns the user's account, provisioning one with
	// the default credit if none exists. Safe for concurrent callers: at
	// most one account row per user ever results.
	GetOrCreateAccount(ctx context.Context, userID uint) (*domain.Account, error)

	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID uint) ([]domain.Order, error)

	// ExecutePurchase runs balance check, debit and order insert as one
	// atomic unit. It returns ErrAccountNotFound when the user has no
	// account row and ErrInsufficientFunds when the balance cannot cover
	// the price; in both cases no state changes.
	ExecutePurchase(ctx context.Context, userID, courseID uint, courseTitle string, price float64) (*domain.Order, error)

	CreateQuestion(ctx context.Context, userID uint, title, content, imagePath string) (*domain.Question, error)
	ListQuestions(ctx context.Context, filter QuestionFilter) ([]domain.Question, error)
	// GetQuestion returns the question with its replies, oldest reply first.
	GetQuestion(ctx context.Context, id uint) (*domain.Question, error)
	// CreateReply inserts the reply and marks the question answered.
	CreateReply(ctx context.Context, questionID, userID uint, content string) (*domain.Reply, error)

	// Name identifies the implementation in logs: "mysql" or "memory".
	Name() string
}
