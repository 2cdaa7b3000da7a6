package repositories

import (
	"errors"

	"github.com/murmur-app/backend/internal/apperrors"
	"github.com/murmur-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations. The
// write operations keep the like rows and the murmur's like_count in
// step: edge insert/delete and counter update always commit together.
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(murmurID, userID uint) error
	GetLikedMurmurIDs(userID uint, murmurIDs []uint) (map[uint]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like row and increments the murmur's like_count
// in the same transaction. The composite unique index on (user_id,
// murmur_id) is the arbiter for duplicates: when two callers race, one
// insert commits and the other fails the constraint and is returned as
// apperrors.ErrConflict, so the counter moves by exactly one.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Murmur{}).
			Where("id = ?", like.MurmurID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// DeleteLike deletes a like row and decrements the murmur's like_count
// in the same transaction. The decrement is clamped at zero so a
// counter that was already desynchronized can never go negative.
// Returns apperrors.ErrNotFound when no like row exists.
func (r *PostgresLikeRepository) DeleteLike(murmurID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("murmur_id = ? AND user_id = ?", murmurID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return tx.Model(&models.Murmur{}).
			Where("id = ?", murmurID).
			UpdateColumn("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error
	})
}

// GetLikedMurmurIDs returns, out of the given murmur IDs, the set the
// user has liked. One query regardless of page size.
func (r *PostgresLikeRepository) GetLikedMurmurIDs(userID uint, murmurIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(murmurIDs))
	if len(murmurIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND murmur_id IN ?", userID, murmurIDs).
		Pluck("murmur_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
