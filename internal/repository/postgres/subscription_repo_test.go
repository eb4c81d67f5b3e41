package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lucasrosa/lembretes-api/internal/domain"
	repoPostgres "github.com/lucasrosa/lembretes-api/internal/repository/postgres"
	"github.com/lucasrosa/lembretes-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.NewTestDB(t)
	repo := repoPostgres.NewSubscriptionRepository(testDB.DB)
	ctx := context.Background()

	t.Run("upsert refreshes keys for same user and endpoint", func(t *testing.T) {
		testDB.Truncate(t)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		first := &domain.PushSubscription{
			ID:       uuid.New(),
			UserID:   user.ID,
			Endpoint: "https://push.example.com/one",
			P256dh:   "old-p256dh",
			Auth:     "old-auth",
		}
		require.NoError(t, repo.Upsert(ctx, first))

		second := &domain.PushSubscription{
			ID:       uuid.New(),
			UserID:   user.ID,
			Endpoint: "https://push.example.com/one",
			P256dh:   "new-p256dh",
			Auth:     "new-auth",
		}
		require.NoError(t, repo.Upsert(ctx, second))

		subs, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, subs, 1, "re-subscribing the same endpoint must not add a row")
		assert.Equal(t, "new-p256dh", subs[0].P256dh)
		assert.Equal(t, "new-auth", subs[0].Auth)
	})

	t.Run("same endpoint under different users is two rows", func(t *testing.T) {
		testDB.Truncate(t)
		alice, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		bob, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		for _, userID := range []uuid.UUID{alice.ID, bob.ID} {
			require.NoError(t, repo.Upsert(ctx, &domain.PushSubscription{
				ID:       uuid.New(),
				UserID:   userID,
				Endpoint: "https://push.example.com/shared",
				P256dh:   "p",
				Auth:     "a",
			}))
		}

		aliceSubs, err := repo.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, aliceSubs, 1)

		bobSubs, err := repo.ListByUser(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, bobSubs, 1)
	})

	t.Run("first by user without subscriptions", func(t *testing.T) {
		testDB.Truncate(t)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := repo.FirstByUser(ctx, user.ID)
		assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		testDB.Truncate(t)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		sub := testutil.NewSubscriptionBuilder(user.ID).Build(t, testDB.DB)

		require.NoError(t, repo.Delete(ctx, sub.ID))
		require.NoError(t, repo.Delete(ctx, sub.ID))
	})

	t.Run("delete by user removes all rows", func(t *testing.T) {
		testDB.Truncate(t)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		testutil.NewSubscriptionBuilder(user.ID).Build(t, testDB.DB)
		testutil.NewSubscriptionBuilder(user.ID).Build(t, testDB.DB)

		require.NoError(t, repo.DeleteByUser(ctx, user.ID))

		subs, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, subs)
	})
}
