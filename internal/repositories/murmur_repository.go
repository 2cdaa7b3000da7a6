package repositories

import (
	"errors"

	"github.com/murmur-app/backend/internal/apperrors"
	"github.com/murmur-app/backend/internal/models"
	"gorm.io/gorm"
)

// MurmurRepository defines the interface for murmur data operations
type MurmurRepository interface {
	CreateMurmur(murmur *models.Murmur) error
	GetMurmurByID(id uint) (*models.Murmur, error)
	ListByAuthor(userID uint) ([]models.Murmur, error)
	ListByAuthors(authorIDs []uint, offset, limit int) ([]models.Murmur, error)
	CountByAuthors(authorIDs []uint) (int64, error)
	DeleteMurmur(id uint) error
}

// PostgresMurmurRepository implements MurmurRepository for PostgreSQL
type PostgresMurmurRepository struct {
	db *gorm.DB
}

// NewPostgresMurmurRepository creates a new PostgresMurmurRepository
func NewPostgresMurmurRepository(db *gorm.DB) *PostgresMurmurRepository {
	return &PostgresMurmurRepository{db: db}
}

// CreateMurmur creates a new murmur in PostgreSQL
func (r *PostgresMurmurRepository) CreateMurmur(murmur *models.Murmur) error {
	return r.db.Create(murmur).Error
}

// GetMurmurByID retrieves a murmur by ID from PostgreSQL
func (r *PostgresMurmurRepository) GetMurmurByID(id uint) (*models.Murmur, error) {
	var murmur models.Murmur
	if err := r.db.First(&murmur, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &murmur, nil
}

// ListByAuthor retrieves all murmurs by a single author, newest first
func (r *PostgresMurmurRepository) ListByAuthor(userID uint) ([]models.Murmur, error) {
	var murmurs []models.Murmur
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&murmurs).Error
	return murmurs, err
}

// ListByAuthors retrieves one page of murmurs authored by any of the
// given users, newest first with id as the tie-breaker.
func (r *PostgresMurmurRepository) ListByAuthors(authorIDs []uint, offset, limit int) ([]models.Murmur, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var murmurs []models.Murmur
	err := r.db.Where("user_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&murmurs).Error
	return murmurs, err
}

// CountByAuthors counts all murmurs authored by any of the given users
func (r *PostgresMurmurRepository) CountByAuthors(authorIDs []uint) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Murmur{}).Where("user_id IN ?", authorIDs).Count(&count).Error
	return count, err
}

// DeleteMurmur deletes a murmur together with its like rows. Both
// deletes run in one transaction so a concurrent reader never sees a
// like row for a murmur that is already gone.
func (r *PostgresMurmurRepository) DeleteMurmur(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("murmur_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Murmur{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
