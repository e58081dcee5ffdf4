package repositories

import (
	"github.com/avdev42/go-messenger/backend/internal/models"
	"gorm.io/gorm"
)

// FriendRequestRepository defines the interface for friend-request data
// operations. Lookups that concern an unordered pair query both orderings;
// the table itself enforces no pair uniqueness (historical rows per pair are
// expected), so callers rely on these lookups before inserting.
type FriendRequestRepository interface {
	Create(req *models.FriendRequest) error
	FindPendingBetween(userA, userB uint) (*models.FriendRequest, error)
	FindPendingFrom(senderID, receiverID uint) (*models.FriendRequest, error)
	FindAcceptedBetween(userA, userB uint) (*models.FriendRequest, error)
	UpdateStatus(id uint, status models.RequestStatus) error
	Delete(id uint) error
	ListAccepted(userID uint) ([]models.FriendRequest, error)
	ListIncomingPending(receiverID uint) ([]models.FriendRequest, error)
	ListSentPending(senderID uint) ([]models.FriendRequest, error)
	ListRejectedBy(receiverID uint) ([]models.FriendRequest, error)
	ListInvolving(userID uint) ([]models.FriendRequest, error)
}

// PostgresFriendRequestRepository implements FriendRequestRepository for
// PostgreSQL
type PostgresFriendRequestRepository struct {
	db *gorm.DB
}

// NewPostgresFriendRequestRepository creates a new
// PostgresFriendRequestRepository
func NewPostgresFriendRequestRepository(db *gorm.DB) *PostgresFriendRequestRepository {
	return &PostgresFriendRequestRepository{db: db}
}

// Create inserts a new friend request row. The check-then-insert sequence in
// the service is not atomic; under a single writer that is sufficient (a
// partial unique index on pending pairs would close the gap on Postgres but
// is not expressible through AutoMigrate).
func (r *PostgresFriendRequestRepository) Create(req *models.FriendRequest) error {
	return r.db.Create(req).Error
}

// FindPendingBetween retrieves the pending request between two users,
// whichever direction it was sent in
func (r *PostgresFriendRequestRepository) FindPendingBetween(userA, userB uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where(
		"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
		userA, userB, userB, userA, models.StatusPending,
	).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindPendingFrom retrieves the pending request sent by senderID to
// receiverID, direction included
func (r *PostgresFriendRequestRepository) FindPendingFrom(senderID, receiverID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where(
		"sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, models.StatusPending,
	).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindAcceptedBetween retrieves the accepted relationship row between two
// users, whichever direction it was sent in
func (r *PostgresFriendRequestRepository) FindAcceptedBetween(userA, userB uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where(
		"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
		userA, userB, userB, userA, models.StatusAccepted,
	).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateStatus updates the status of a friend request
func (r *PostgresFriendRequestRepository) UpdateStatus(id uint, status models.RequestStatus) error {
	return r.db.Model(&models.FriendRequest{}).Where("id = ?", id).Update("status", status).Error
}

// Delete deletes a friend request row
func (r *PostgresFriendRequestRepository) Delete(id uint) error {
	return r.db.Delete(&models.FriendRequest{}, id).Error
}

// ListAccepted retrieves all accepted rows the user participates in, either
// direction, newest first, with both parties preloaded
func (r *PostgresFriendRequestRepository) ListAccepted(userID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?", userID, userID, models.StatusAccepted).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListIncomingPending retrieves pending requests addressed to the user,
// newest first
func (r *PostgresFriendRequestRepository) ListIncomingPending(receiverID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, models.StatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListSentPending retrieves pending requests the user has sent, newest first
func (r *PostgresFriendRequestRepository) ListSentPending(senderID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.Preload("Receiver").
		Where("sender_id = ? AND status = ?", senderID, models.StatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListRejectedBy retrieves requests the user has rejected (user was the
// receiver), newest first
func (r *PostgresFriendRequestRepository) ListRejectedBy(receiverID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, models.StatusRejected).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListInvolving retrieves every request row the user participates in, oldest
// first so that later rows override earlier ones when annotating the network
func (r *PostgresFriendRequestRepository) ListInvolving(userID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}
