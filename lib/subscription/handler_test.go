package subscriptionhandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hr-requests-backend/db"
	usersstore "hr-requests-backend/lib/users/store"
	"hr-requests-backend/models"
	dbmodels "hr-requests-backend/models/db"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	// in-memory база существует в рамках одного соединения
	sqlDB.SetMaxOpenConns(1)
	err = testDB.AutoMigrate(&dbmodels.User{}, &dbmodels.Subscription{})
	require.NoError(t, err)
	db.DB = testDB
	NewHandler()
}

func createUser(t *testing.T, email string) string {
	t.Helper()
	id, err := usersstore.NewInstance(db.DB).Create(dbmodels.User{
		Email:    email,
		Name:     email,
		Password: "x",
		Role:     models.UserRoleEmployee,
	})
	require.NoError(t, err)
	return id
}

func TestSubscribeRoundTrip(t *testing.T) {
	setupTestDB(t)
	watcher := createUser(t, "watcher@example.com")
	watched := createUser(t, "watched@example.com")

	require.NoError(t, Instance.Subscribe(watcher, watched))
	// повторная подписка не считается ошибкой
	require.NoError(t, Instance.Subscribe(watcher, watched))

	list, err := Instance.List(watcher)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Watched)
	assert.Equal(t, watched, list[0].Watched.ID)

	require.NoError(t, Instance.Unsubscribe(watcher, watched))
	list, err = Instance.List(watcher)
	require.NoError(t, err)
	assert.Empty(t, list)

	// отмена несуществующей подписки проходит без ошибки
	require.NoError(t, Instance.Unsubscribe(watcher, watched))
}

func TestSubscribeValidation(t *testing.T) {
	setupTestDB(t)
	watcher := createUser(t, "watcher@example.com")

	err := Instance.Subscribe(watcher, watcher)
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))

	err = Instance.Subscribe(watcher, "missing-id")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
