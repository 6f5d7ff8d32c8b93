package ambassador

import (
	"context"
	"testing"
	"time"

	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplication(email string) *models.AmbassadorApplication {
	return &models.AmbassadorApplication{
		Name:            "Ada",
		Email:           email,
		School:          "Analytical High",
		Grade:           "11",
		CommunityAccess: "Robotics club",
		WhyInterested:   "Engines",
		TimeCommitment:  "5h",
	}
}

func TestApplicationRepository_AllowsRepeatedEmails(t *testing.T) {
	repo := NewApplicationRepository(testutil.OpenSQLiteDB(t))
	ctx := context.Background()

	first, err := repo.CreateApplication(ctx, newApplication("ada@example.com"))
	require.NoError(t, err)
	second, err := repo.CreateApplication(ctx, newApplication("ada@example.com"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	apps, err := repo.ListApplications(ctx, models.SentFilterAll)
	require.NoError(t, err)
	assert.Len(t, apps, 2)
	assert.Equal(t, "", apps[0].Experience)
}

func TestApplicationRepository_FilterToggleDelete(t *testing.T) {
	db := testutil.OpenSQLiteDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	older := newApplication("old@example.com")
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(older).Error)

	newer, err := repo.CreateApplication(ctx, newApplication("new@example.com"))
	require.NoError(t, err)

	sent, found, err := repo.ToggleSent(ctx, older.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, sent)

	onlySent, err := repo.ListApplications(ctx, models.SentFilterSent)
	require.NoError(t, err)
	require.Len(t, onlySent, 1)
	assert.Equal(t, older.ID, onlySent[0].ID)

	notSent, err := repo.ListApplications(ctx, models.SentFilterNotSent)
	require.NoError(t, err)
	require.Len(t, notSent, 1)
	assert.Equal(t, newer.ID, notSent[0].ID)

	all, err := repo.ListApplications(ctx, models.SentFilterAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	require.NoError(t, repo.DeleteApplication(ctx, newer.ID))
	require.NoError(t, repo.DeleteApplication(ctx, newer.ID))

	all, err = repo.ListApplications(ctx, models.SentFilterAll)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, older.ID, all[0].ID)
}

func TestApplicationService_OnMigratedSchema(t *testing.T) {
	db := testutil.OpenMigratedSQLiteDB(t)
	service := NewApplicationService(log.NewLoggerWithJSONOutput(), NewApplicationRepository(db))
	ctx := context.Background()

	created, err := service.Submit(ctx, &SubmitApplicationRequest{
		Name:            "  Ada Lovelace ",
		Email:           " ADA@Example.com",
		School:          "Analytical High",
		Grade:           "11",
		CommunityAccess: "Robotics club",
		WhyInterested:   "Engines",
		TimeCommitment:  "5h",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", created.Name)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.False(t, created.Sent)

	_, err = service.Submit(ctx, &SubmitApplicationRequest{Name: "Ada"})
	require.Error(t, err)

	sent, err := service.ToggleSent(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, sent)

	onlySent, err := service.ListApplications(ctx, models.SentFilterSent)
	require.NoError(t, err)
	require.Len(t, onlySent, 1)
	assert.Equal(t, "", onlySent[0].Experience)

	sent, err = service.ToggleSent(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, sent)

	notSent, err := service.ListApplications(ctx, models.SentFilterNotSent)
	require.NoError(t, err)
	assert.Len(t, notSent, 1)

	require.NoError(t, service.DeleteApplication(ctx, created.ID))
	require.NoError(t, service.DeleteApplication(ctx, created.ID))

	all, err := service.ListApplications(ctx, models.SentFilterAll)
	require.NoError(t, err)
	assert.Empty(t, all)
}
