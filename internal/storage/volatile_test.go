package storage

import (
	"context"
	"sync"
	"testing"

	"elearn_backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolatileCreateUser(t *testing.T) {
	store := NewVolatileStore()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "Alice", "13900000001", "alice@example.com", "hash1")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := store.CreateUser(ctx, "Mallory", "13900000002", "alice@example.com", "hash2")
		assert.ErrorIs(t, err, ErrConflict)

		// First user unaffected
		found, err := store.FindUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Alice", found.Name)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("email match is exact", func(t *testing.T) {
		_, err := store.FindUserByEmail(ctx, "ALICE@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVolatileGetOrCreateAccount(t *testing.T) {
	store := NewVolatileStore()
	ctx := context.Background()

	account, err := store.GetOrCreateAccount(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBalance, account.Balance)

	again, err := store.GetOrCreateAccount(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, account.ID, again.ID)
}

func TestVolatileGetOrCreateAccountConcurrent(t *testing.T) {
	store := NewVolatileStore()
	ctx := context.Background()

	const callers = 50
	ids := make([]uint, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			account, err := store.GetOrCreateAccount(ctx, 42)
			if err == nil {
				ids[i] = account.ID
			}
		}(i)
	}
	wg.Wait()

	// Exactly one account row results, every caller saw the same one
	for i := 1; i < callers; i++ {
		assert.Equal(t, ids[0], ids[i])
	}
	account, err := store.GetOrCreateAccount(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBalance, account.Balance)
}

func TestVolatilePurchase(t *testing.T) {
	store := NewVolatileStore()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "u1", "13900000001", "u1@example.com", "hash")
	require.NoError(t, err)
	_, err = store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)

	order, err := store.ExecutePurchase(ctx, user.ID, 3, "DS&A", 199.00)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, order.Status)
	assert.Equal(t, 199.00, order.Price)
	assert.Equal(t, "DS&A", order.CourseTitle)

	account, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 801.00, account.Balance)
}

func TestVolatilePurchaseInsufficientFunds(t *testing.T) {
	store := NewVolatileStore()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "u2", "13900000002", "u2@example.com", "hash")
	require.NoError(t, err)
	_, err = store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)

	// Drain the account down to 50.00
	_, err = store.ExecutePurchase(ctx, user.ID, 9, "setup", 950.00)
	require.NoError(t, err)

	_, err = store.ExecutePurchase(ctx, user.ID, 3, "DS&A", 199.00)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// No mutation happened: balance unchanged, no new order
	account, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.00, account.Balance)

	orders, err := store.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "setup", orders[0].CourseTitle)
}

func TestVolatileConcurrentPurchasesNeverOverdraw(t *testing.T) {
	store := NewVolatileStore()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "racer", "13900000001", "racer@example.com", "hash")
	require.NoError(t, err)
	_, err = store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)

	// 1000.00 covers exactly three 300.00 purchases; the rest must be
	// rejected, and the balance must never go negative
	const attempts = 10
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = store.ExecutePurchase(ctx, user.ID, 3, "DS&A", 300.00)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 3, succeeded)

	account, err := store.GetOrCreateAccount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.00, account.Balance)

	orders, err := store.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestVolatilePurchaseWithoutAccount(t *testing.T) {
	store := NewVolatileStore()
	_, err := store.ExecutePurchase(context.Background(), 99, 1, "Java", 159.00)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestVolatileListOrdersNewestFirst(t *testing.T) {
	store := NewVolatileStore()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "u1", "13900000001", "u1@example.com", "hash")
	require.NoError(t, err)
	_, err = store.GetOrCreateAccount(ctx, user.ID)
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

func TestVolatileQuestions(t *testing.T) {
	store := NewVolatileStore()
	ctx := context.Background()

	asker, err := store.CreateUser(ctx, "Asker", "13900000001", "asker@example.com", "hash")
	require.NoError(t, err)
	answerer, err := store.CreateUser(ctx, "Answerer", "13900000002", "answerer@example.com", "hash")
	require.NoError(t, err)

	question, err := store.CreateQuestion(ctx, asker.ID, "How do heaps work?", "Lost in chapter 5", "")
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionPending, question.Status)

	reply, err := store.CreateReply(ctx, question.ID, answerer.ID, "Start with the shape property")
	require.NoError(t, err)
	assert.NotZero(t, reply.ID)

	detail, err := store.GetQuestion(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionAnswered, detail.Status)
	assert.Equal(t, "Asker", detail.UserName)
	require.Len(t, detail.Replies, 1)
	assert.Equal(t, "Answerer", detail.Replies[0].UserName)

	t.Run("filter by user", func(t *testing.T) {
		mine, err := store.ListQuestions(ctx, QuestionFilter{UserID: asker.ID})
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		theirs, err := store.ListQuestions(ctx, QuestionFilter{UserID: answerer.ID})
		require.NoError(t, err)
		assert.Empty(t, theirs)
	})

	t.Run("missing question", func(t *testing.T) {
		_, err := store.GetQuestion(ctx, 12345)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = store.CreateReply(ctx, 12345, answerer.ID, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVolatileSeedDemoUser(t *testing.T) {
	store := NewVolatileStore()
	store.SeedDemoUser()
	store.SeedDemoUser() // idempotent

	user, err := store.FindUserByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)

	account, err := store.GetOrCreateAccount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBalance, account.Balance)
}
