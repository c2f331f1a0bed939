package repository_test

import (
	"testing"
	"time"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/repository"
)

func TestRecipientRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewRecipientRepository(db)

	t.Run("BulkCreate and ListPending", func(t *testing.T) {
		defer cleanupTestData(db)

		campaignID, _, err := seedCampaign(db, 1, "draft")
		require.NoError(t, err)

		recipients := []*models.CampaignRecipient{
			{CampaignID: campaignID, ContactID: 100, Phone: "+905550000001", Status: models.RecipientStatusPending},
			{CampaignID: campaignID, ContactID: 101, Phone: "+905550000002", Status: models.RecipientStatusPending},
			{CampaignID: campaignID, ContactID: 102, Phone: "+905550000003", Status: models.RecipientStatusPending},
		}
		require.NoError(t, repo.BulkCreate(recipients))

		count, err := repo.CountByCampaign(campaignID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		pending, err := repo.ListPending(campaignID)
		require.NoError(t, err)
		require.Len(t, pending, 3)

		// Stable id order keeps reruns deterministic.
		for i := 1; i < len(pending); i++ {
			assert.Greater(t, pending[i].ID, pending[i-1].ID)
		}
	})

	t.Run("BulkCreate rejects duplicate contact in one campaign", func(t *testing.T) {
		defer cleanupTestData(db)

		campaignID, _, err := seedCampaign(db, 1, "draft")
		require.NoError(t, err)

		_, err = insertTestRecipient(db, campaignID, 100, "+905550000001", "pending")
		require.NoError(t, err)

		err = repo.BulkCreate([]*models.CampaignRecipient{
			{CampaignID: campaignID, ContactID: 100, Phone: "+905550000001", Status: models.RecipientStatusPending},
		})
		assert.ErrorIs(t, err, repository.ErrDuplicateRecipient)
	})

	t.Run("MarkSent moves pending rows only", func(t *testing.T) {
		defer cleanupTestData(db)

		campaignID, _, err := seedCampaign(db, 1, "sending")
		require.NoError(t, err)

		id, err := insertTestRecipient(db, campaignID, 100, "+905550000001", "pending")
		require.NoError(t, err)

		require.NoError(t, repo.MarkSent(id, time.Now().UTC()))

		pending, err := repo.ListPending(campaignID)
		require.NoError(t, err)
		assert.Empty(t, pending)

		rows, err := repo.ListByCampaign(campaignID, 0, 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, models.RecipientStatusSent, rows[0].Status)
		assert.True(t, rows[0].SentAt.Valid)

		// Already sent: a second terminal write does not flip the row.
		require.NoError(t, repo.MarkFailed(id, "late failure"))

		rows, err = repo.ListByCampaign(campaignID, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, models.RecipientStatusSent, rows[0].Status)
	})

	t.Run("MarkFailed records the error", func(t *testing.T) {
		defer cleanupTestData(db)

		campaignID, _, err := seedCampaign(db, 1, "sending")
		require.NoError(t, err)

		id, err := insertTestRecipient(db, campaignID, 100, "+905550000001", "pending")
		require.NoError(t, err)

		require.NoError(t, repo.MarkFailed(id, "gateway returned status 400"))

		rows, err := repo.ListByCampaign(campaignID, 0, 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, models.RecipientStatusFailed, rows[0].Status)
		require.True(t, rows[0].Error.Valid)
		assert.Equal(t, "gateway returned status 400", rows[0].Error.String)
	})
}
