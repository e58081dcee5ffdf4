package services

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/avdev42/go-messenger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database with the same
// migration settings as production (no FK constraints).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.FriendRequest{},
		&models.Chat{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		UUID:     uuid.NewString(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProfile(t *testing.T, db *gorm.DB, userID uint, avatar *string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		UserID:     userID,
		UUID:       uuid.NewString(),
		AvatarName: avatar,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// memMessageRepo is an in-memory MessageRepository standing in for the Mongo
// collection.
type memMessageRepo struct {
	messages []models.Message
}

func (m *memMessageRepo) Insert(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.ID = primitive.NewObjectID()
	m.messages = append(m.messages, *msg)
	return msg, nil
}

func (m *memMessageRepo) ListByChat(ctx context.Context, chatID string) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.messages {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
