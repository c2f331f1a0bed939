package repository_test

import (
	"database/sql"
	"testing"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/repository"
)

func TestRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewRepository(db)

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping())
	})

	t.Run("Template create and list", func(t *testing.T) {
		defer cleanupTestData(db)

		templates := repo.Template()

		id, err := templates.Create(&models.Template{
			TenantID: 1,
			Name:     "welcome",
			Body:     "Hi {{name}}, order {{order_id}}",
		})
		require.NoError(t, err)

		template, err := templates.GetByID(1, id)
		require.NoError(t, err)
		require.NotNil(t, template)
		assert.Equal(t, "Hi {{name}}, order {{order_id}}", template.Body)

		other, err := templates.GetByID(2, id)
		require.NoError(t, err)
		assert.Nil(t, other)

		list, err := templates.List(1, 0, 10)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		total, err := templates.CountByTenant(1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("MessageLog append and list newest first", func(t *testing.T) {
		defer cleanupTestData(db)

		campaignID, _, err := seedCampaign(db, 1, "sending")
		require.NoError(t, err)

		log := repo.MessageLog()

		_, err = log.Create(&models.MessageLogEntry{
			TenantID:          1,
			CampaignID:        sql.NullInt64{Int64: campaignID, Valid: true},
			Direction:         models.MessageDirectionOutbound,
			ToNumber:          "+905550000001",
			Status:            models.MessageStatusSent,
			Body:              "Hi Asha",
			ProviderMessageID: sql.NullString{String: "wamid.1", Valid: true},
		})
		require.NoError(t, err)

		_, err = log.Create(&models.MessageLogEntry{
			TenantID:   1,
			CampaignID: sql.NullInt64{Int64: campaignID, Valid: true},
			Direction:  models.MessageDirectionOutbound,
			ToNumber:   "+905550000002",
			Status:     models.MessageStatusFailed,
			Body:       "Hi Deniz",
		})
		require.NoError(t, err)

		entries, err := log.ListByTenant(1, 0, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "+905550000002", entries[0].ToNumber)
		assert.Equal(t, models.MessageStatusFailed, entries[0].Status)
		assert.Equal(t, "wamid.1", entries[1].ProviderMessageID.String)

		total, err := log.CountByTenant(1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}
