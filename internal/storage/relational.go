package storage

import (
	"context"
	"errors"
	"time"

	"elearn_backend/internal/db"
	"elearn_backend/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// RelationalStore is the durable Backend backed by MySQL through GORM.
// It owns the connection and bootstraps the schema on open.
type RelationalStore struct {
	db *gorm.DB
}

// NewRelationalStore wraps an already opened GORM connection. The schema
// must exist; OpenRelational is the normal entry point.
func NewRelationalStore(gdb *gorm.DB) *RelationalStore {
	return &RelationalStore{db: gdb}
}

// OpenRelational connects to MySQL with a single bounded-timeout attempt,
// bootstraps the schema and returns the store. There is no retry: a failure
// here means the caller falls back to in-memory storage.
func OpenRelational(dsn string, connectTimeout time.Duration) (*RelationalStore, error) {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	return &RelationalStore{db: gdb}, nil
}

// Name identifies the store in logs
func (s *RelationalStore) Name() string { return "mysql" }

// FindUserByEmail looks a user up by exact email match
func (s *RelationalStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user. The email pre-check is only a fast path;
// the unique index on users.email is the source of truth for duplicates,
// so a race between two registrations still yields exactly one row.
func (s *RelationalStore) CreateUser(ctx context.Context, name, phone, email, passwordHash string) (*domain.User, error) {
	var existing domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	user := domain.User{Name: name, Phone: phone, Email: email, Password: passwordHash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

// GetOrCreateAccount returns the user's account, creating it with the
// default credit when absent. Losing the insert race to a concurrent
// request is fine: the unique index rejects the second insert and we
// re-read the winner's row.
func (s *RelationalStore) GetOrCreateAccount(ctx context.Context, userID uint) (*domain.Account, error) {
	var account domain.Account
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	account = domain.Account{UserID: userID, Balance: domain.DefaultBalance}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error; err != nil {
				return nil, err
			}
			return &account, nil
		}
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"account_id": account.ID,
	}).Info("Account provisioned")
	return &account, nil
}

// ListOrders returns the user's orders, newest first
func (s *RelationalStore) ListOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ExecutePurchase debits the account and records the order inside one
// transaction. Any failure after the balance check rolls everything back,
// so a debit without an order (or the reverse) is never observable.
func (s *RelationalStore) ExecutePurchase(ctx context.Context, userID, courseID uint, courseTitle string, price float64) (*domain.Order, error) {
	var order domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account domain.Account
		if err := tx.Where("user_id = ?", userID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		if account.Balance < price {
			return ErrInsufficientFunds
		}
		// The debit re-checks the balance in its WHERE clause: a
		// concurrent purchase may have committed between our read and
		// this write, and the balance must never go negative. Zero rows
		// affected means we lost that race.
		res := tx.Model(&domain.Account{}).
			Where("user_id = ? AND balance >= ?", userID, price).
			Update("balance", gorm.Expr("balance - ?", price))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}
		order = domain.Order{
			UserID:      userID,
			CourseID:    courseID,
			CourseTitle: courseTitle,
			Price:       price,
			Status:      domain.OrderCompleted,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrInsufficientFunds) {
			return nil, err
		}
		if IsUnavailable(err) {
			return nil, err
		}
		// Driver detail stays in the log, callers only see the kind
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"course_id": courseID,
			"error":     err.Error(),
		}).Error("Purchase transaction rolled back")
		return nil, ErrTransactionFailed
	}
	return &order, nil
}

// CreateQuestion inserts a forum question; the image path is recorded as given
func (s *RelationalStore) CreateQuestion(ctx context.Context, userID uint, title, content, imagePath string) (*domain.Question, error) {
	question := domain.Question{
		UserID:    userID,
		Title:     title,
		Content:   content,
		ImagePath: imagePath,
		Status:    domain.QuestionPending,
	}
	if err := s.db.WithContext(ctx).Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// ListQuestions returns questions newest first, joined with author names
func (s *RelationalStore) ListQuestions(ctx context.Context, filter QuestionFilter) ([]domain.Question, error) {
	var questions []domain.Question
	query := s.db.WithContext(ctx).Model(&domain.Question{}).
		Select("questions.*, users.name AS user_name").
		Joins("JOIN users ON questions.user_id = users.id").
		Order("questions.created_at DESC, questions.id DESC")
	if filter.UserID != 0 {
		query = query.Where("questions.user_id = ?", filter.UserID)
	}
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestion returns a question with its replies, oldest reply first
func (s *RelationalStore) GetQuestion(ctx context.Context, id uint) (*domain.Question, error) {
	var question domain.Question
	err := s.db.WithContext(ctx).Model(&domain.Question{}).
		Select("questions.*, users.name AS user_name").
		Joins("JOIN users ON questions.user_id = users.id").
		Where("questions.id = ?", id).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&domain.Reply{}).
		Select("replies.*, users.name AS user_name").
		Joins("JOIN users ON replies.user_id = users.id").
		Where("replies.question_id = ?", id).
		Order("replies.created_at ASC, replies.id ASC").
		Find(&question.Replies).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// CreateReply inserts a reply and marks the question answered. The status
// flip is best effort, matching the single-insert atomicity level of the
// rest of the Q&A surface.
func (s *RelationalStore) CreateReply(ctx context.Context, questionID, userID uint, content string) (*domain.Reply, error) {
	var question domain.Question
	if err := s.db.WithContext(ctx).First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	reply := domain.Reply{QuestionID: questionID, UserID: userID, Content: content}
	if err := s.db.WithContext(ctx).Create(&reply).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&domain.Question{}).
		Where("id = ?", questionID).
		Update("status", domain.QuestionAnswered).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"question_id": questionID,
			"error":       err.Error(),
		}).Warn("Failed to mark question answered")
	}
	return &reply, nil
}
