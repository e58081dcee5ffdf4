package repositories

import (
	"github.com/avdev42/go-messenger/backend/internal/models"
	"gorm.io/gorm"
)

// ChatRepository defines the interface for chat summary rows
type ChatRepository interface {
	Create(chat *models.Chat) error
	GetByID(id string) (*models.Chat, error)
	GetByIDWithUsers(id string) (*models.Chat, error)
	FindBetween(userA, userB uint) (*models.Chat, error)
	Update(chat *models.Chat) error
	ListForUser(userID uint) ([]models.Chat, error)
}

// PostgresChatRepository implements ChatRepository for PostgreSQL
type PostgresChatRepository struct {
	db *gorm.DB
}

// NewPostgresChatRepository creates a new PostgresChatRepository
func NewPostgresChatRepository(db *gorm.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

// Create inserts a new chat row
func (r *PostgresChatRepository) Create(chat *models.Chat) error {
	return r.db.Create(chat).Error
}

// GetByID retrieves a chat by its id
func (r *PostgresChatRepository) GetByID(id string) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.Where("id = ?", id).First(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetByIDWithUsers retrieves a chat with both participants preloaded
func (r *PostgresChatRepository) GetByIDWithUsers(id string) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.Preload("Initiator").Preload("Addressee").
		Where("id = ?", id).
		First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindBetween retrieves the chat between two users regardless of who
// initiated it
func (r *PostgresChatRepository) FindBetween(userA, userB uint) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.Where(
		"(initiator_id = ? AND addressee_id = ?) OR (initiator_id = ? AND addressee_id = ?)",
		userA, userB, userB, userA,
	).First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// Update persists changed chat fields
func (r *PostgresChatRepository) Update(chat *models.Chat) error {
	return r.db.Save(chat).Error
}

// ListForUser retrieves every chat the user participates in, most recent
// message first; chats that have no messages yet sort last
func (r *PostgresChatRepository) ListForUser(userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := r.db.Preload("Initiator").Preload("Addressee").
		Where("initiator_id = ? OR addressee_id = ?", userID, userID).
		Order("last_message_sent_at DESC NULLS LAST").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}
