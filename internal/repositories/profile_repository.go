package repositories

import (
	"github.com/avdev42/go-messenger/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByUserID(userID uint) (*models.Profile, error)
	GetProfilesByUserIDs(userIDs []uint) ([]models.Profile, error)
	UpdateProfile(profile *models.Profile) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile creates a new profile row
func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetProfileByUserID retrieves the profile belonging to a user
func (r *PostgresProfileRepository) GetProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfilesByUserIDs retrieves the profiles of the given users
func (r *PostgresProfileRepository) GetProfilesByUserIDs(userIDs []uint) ([]models.Profile, error) {
	var profiles []models.Profile
	if len(userIDs) == 0 {
		return profiles, nil
	}
	if err := r.db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateProfile persists changed profile fields
func (r *PostgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}
