package storage

import (
	"context"
	"sync"
	"time"

	"elearn_backend/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// VolatileStore is the in-process fallback Backend. Everything lives in
// maps guarded by one mutex, so every operation is a critical section and
// multi-step mutations never interleave; that single-writer discipline is
// what stands in for transactions here. All data is lost on restart.
type VolatileStore struct {
	mu sync.Mutex

	users     map[uint]*domain.User
	emails    map[string]uint           // email -> user id
	accounts  map[uint]*domain.Account  // keyed by user id
	orders    []domain.Order            // append-only, insertion order
	questions map[uint]*domain.Question // keyed by question id
	replies   map[uint][]domain.Reply   // keyed by question id

	nextUserID     uint
	nextAccountID  uint
	nextOrderID    uint
	nextQuestionID uint
	nextReplyID    uint
}

// NewVolatileStore returns an empty in-memory store
func NewVolatileStore() *VolatileStore {
	return &VolatileStore{
		users:     make(map[uint]*domain.User),
		emails:    make(map[string]uint),
		accounts:  make(map[uint]*domain.Account),
		questions: make(map[uint]*domain.Question),
		replies:   make(map[uint][]domain.Reply),
	}
}

// Name identifies the store in logs
func (s *VolatileStore) Name() string { return "memory" }

// SeedDemoUser adds the well-known demo login (test@example.com / 123456)
// so a degraded process is still usable. Idempotent.
func (s *VolatileStore) SeedDemoUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emails["test@example.com"]; ok {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		logrus.Errorf("failed to seed demo user: %v", err)
		return
	}
	user := s.insertUser("测试用户", "13800138000", "test@example.com", string(hash))
	s.provision(user.ID)
	logrus.Info("Seeded demo user test@example.com (password: 123456)")
}

// insertUser adds a user; caller holds the lock
func (s *VolatileStore) insertUser(name, phone, email, passwordHash string) *domain.User {
	s.nextUserID++
	user := &domain.User{
		ID:        s.nextUserID,
		Name:      name,
		Phone:     phone,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user
	s.emails[email] = user.ID
	return user
}

// provision creates an account with the default credit; caller holds the lock
func (s *VolatileStore) provision(userID uint) *domain.Account {
	s.nextAccountID++
	now := time.Now()
	account := &domain.Account{
		ID:        s.nextAccountID,
		UserID:    userID,
		Balance:   domain.DefaultBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.accounts[userID] = account
	return account
}

func (s *VolatileStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := *s.users[id]
	return &user, nil
}

func (s *VolatileStore) CreateUser(ctx context.Context, name, phone, email, passwordHash string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Check-then-insert is atomic under the lock
	if _, ok := s.emails[email]; ok {
		return nil, ErrConflict
	}
	user := *s.insertUser(name, phone, email, passwordHash)
	return &user, nil
}

func (s *VolatileStore) GetOrCreateAccount(ctx context.Context, userID uint) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account, ok := s.accounts[userID]; ok {
		copied := *account
		return &copied, nil
	}
	copied := *s.provision(userID)
	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"account_id": copied.ID,
	}).Info("Account provisioned")
	return &copied, nil
}

func (s *VolatileStore) ListOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []domain.Order
	// Newest first: walk the append-only log backwards
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			orders = append(orders, s.orders[i])
		}
	}
	return orders, nil
}

func (s *VolatileStore) ExecutePurchase(ctx context.Context, userID, courseID uint, courseTitle string, price float64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[userID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	if account.Balance < price {
		return nil, ErrInsufficientFunds
	}
	account.Balance -= price
	account.UpdatedAt = time.Now()
	s.nextOrderID++
	order := domain.Order{
		ID:          s.nextOrderID,
		UserID:      userID,
		CourseID:    courseID,
		CourseTitle: courseTitle,
		Price:       price,
		Status:      domain.OrderCompleted,
		CreatedAt:   time.Now(),
	}
	s.orders = append(s.orders, order)
	return &order, nil
}

func (s *VolatileStore) CreateQuestion(ctx context.Context, userID uint, title, content, imagePath string) (*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextQuestionID++
	question := &domain.Question{
		ID:        s.nextQuestionID,
		UserID:    userID,
		Title:     title,
		Content:   content,
		ImagePath: imagePath,
		Status:    domain.QuestionPending,
		CreatedAt: time.Now(),
	}
	s.questions[question.ID] = question
	copied := *question
	return &copied, nil
}

func (s *VolatileStore) ListQuestions(ctx context.Context, filter QuestionFilter) ([]domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var questions []domain.Question
	for id := s.nextQuestionID; id >= 1; id-- {
		question, ok := s.questions[id]
		if !ok {
			continue
		}
		if filter.UserID != 0 && question.UserID != filter.UserID {
			continue
		}
		copied := *question
		copied.UserName = s.userName(question.UserID)
		questions = append(questions, copied)
	}
	return questions, nil
}

func (s *VolatileStore) GetQuestion(ctx context.Context, id uint) (*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *question
	copied.UserName = s.userName(question.UserID)
	copied.Replies = make([]domain.Reply, len(s.replies[id]))
	for i, reply := range s.replies[id] {
		reply.UserName = s.userName(reply.UserID)
		copied.Replies[i] = reply
	}
	return &copied, nil
}

func (s *VolatileStore) CreateReply(ctx context.Context, questionID, userID uint, content string) (*domain.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[questionID]
	if !ok {
		return nil, ErrNotFound
	}
	s.nextReplyID++
	reply := domain.Reply{
		ID:         s.nextReplyID,
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	s.replies[questionID] = append(s.replies[questionID], reply)
	question.Status = domain.QuestionAnswered
	return &reply, nil
}

// userName resolves a user's display name; caller holds the lock
func (s *VolatileStore) userName(userID uint) string {
	if user, ok := s.users[userID]; ok {
		return user.Name
	}
	return ""
}
