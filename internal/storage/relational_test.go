package storage

import (
	"context"
	"testing"

	"elearn_backend/internal/db"
	"elearn_backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// MaxOpenConns(1) matters: a second pooled connection would see its own
// empty :memory: database.
func setupTestDB(t *testing.T) *RelationalStore {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(gdb))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewRelationalStore(gdb)
}

func createTestUser(t *testing.T, store *RelationalStore, email string) *domain.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), "Test", "13900000000", email, "hash")
	require.NoError(t, err)
	return user
}

func TestRelationalCreateUser(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "Alice", "13900000001", "alice@example.com", "hash1")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := store.CreateUser(ctx, "Mallory", "13900000002", "alice@example.com", "hash2")
		assert.ErrorIs(t, err, ErrConflict)

		found, err := store.FindUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Alice", found.Name)
	})

	t.Run("unique index is the source of truth", func(t *testing.T) {
		// Bypass the fast-path check and hit the constraint directly
		raw := domain.User{Name: "Eve", Phone: "13900000003", Email: "alice@example.com", Password: "hash3"}
		err := store.db.Create(&raw).Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("unknown email not found", func(t *testing.T) {
		_, err := store.FindUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRelationalGetOrCreateAccount(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, store, "acct@example.com")

	account, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBalance, account.Balance)

	// Second call reads, never double-provisions
	again, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, again.ID)

	var count int64
	require.NoError(t, store.db.Model(&domain.Account{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRelationalPurchase(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, store, "u1@example.com")
	_, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)

	order, err := store.ExecutePurchase(ctx, user.ID, 3, "DS&A", 199.00)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, order.Status)
	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())

	account, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 801.00, account.Balance, 0.001)

	orders, err := store.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "DS&A", orders[0].CourseTitle)
}

func TestRelationalPurchaseInsufficientFunds(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, store, "u2@example.com")
	_, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)

	// Drain down to 50.00, then try a 199.00 course
	_, err = store.ExecutePurchase(ctx, user.ID, 9, "setup", 950.00)
	require.NoError(t, err)

	_, err = store.ExecutePurchase(ctx, user.ID, 3, "DS&A", 199.00)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	account, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.00, account.Balance, 0.001)

	orders, err := store.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1) // only the setup order, the rejected one left no row
}

func TestRelationalPurchaseDrainsToZeroNeverBelow(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, store, "drain@example.com")
	_, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)

	// Spending the exact balance is allowed and lands on zero
	_, err = store.ExecutePurchase(ctx, user.ID, 5, "Python", domain.DefaultBalance)
	require.NoError(t, err)

	account, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.00, account.Balance, 0.001)

	// The guarded debit refuses anything further, however small
	_, err = store.ExecutePurchase(ctx, user.ID, 1, "Java", 0.01)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	orders, err := store.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestRelationalPurchaseWithoutAccount(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	// CreateUser alone provisions nothing; the purchase path must not either
	user := createTestUser(t, store, "noacct@example.com")

	_, err := store.ExecutePurchase(ctx, user.ID, 1, "Java", 159.00)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	orders, err := store.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRelationalListOrdersNewestFirst(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, store, "history@example.com")
	_, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)

	first, err := store.ExecutePurchase(ctx, user.ID, 1, "Java", 159.00)
	require.NoError(t, err)
	second, err := store.ExecutePurchase(ctx, user.ID, 3, "DS&A", 199.00)
	require.NoError(t, err)

	orders, err := store.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestRelationalQuestions(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	asker := createTestUser(t, store, "asker@example.com")
	answerer := createTestUser(t, store, "answerer@example.com")

	question, err := store.CreateQuestion(ctx, asker.ID, "How do heaps work?", "Lost in chapter 5", "/uploads/42.png")
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionPending, question.Status)

	_, err = store.CreateReply(ctx, question.ID, answerer.ID, "Start with the shape property")
	require.NoError(t, err)

	detail, err := store.GetQuestion(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionAnswered, detail.Status)
	assert.Equal(t, "Test", detail.UserName)
	assert.Equal(t, "/uploads/42.png", detail.ImagePath)
	require.Len(t, detail.Replies, 1)
	assert.Equal(t, "Start with the shape property", detail.Replies[0].Content)

	t.Run("list filters by user", func(t *testing.T) {
		all, err := store.ListQuestions(ctx, QuestionFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)

		none, err := store.ListQuestions(ctx, QuestionFilter{UserID: answerer.ID})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("reply to missing question", func(t *testing.T) {
		_, err := store.CreateReply(ctx, 12345, answerer.ID, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
