package services

import (
	"github.com/murmur-app/backend/internal/models"
	"github.com/murmur-app/backend/internal/repositories"
)

// EngagementService owns the like ledger: like rows and the murmurs'
// denormalized like counters move as one atomic unit. It is the only
// mutator of like state; timeline code reads through HasLiked.
type EngagementService struct {
	likeRepository   repositories.LikeRepository
	murmurRepository repositories.MurmurRepository
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(likeRepo repositories.LikeRepository, murmurRepo repositories.MurmurRepository) *EngagementService {
	return &EngagementService{
		likeRepository:   likeRepo,
		murmurRepository: murmurRepo,
	}
}

// Like records that userID liked murmurID and returns the murmur with
// its updated counter. A missing murmur fails with
// apperrors.ErrNotFound. A duplicate like fails with
// apperrors.ErrConflict; when callers race, exactly one insert wins and
// the counter is incremented exactly once.
func (s *EngagementService) Like(murmurID, userID uint) (*models.Murmur, error) {
	if _, err := s.murmurRepository.GetMurmurByID(murmurID); err != nil {
		return nil, err
	}

	like := &models.Like{
		UserID:   userID,
		MurmurID: murmurID,
	}
	if err := s.likeRepository.CreateLike(like); err != nil {
		return nil, err
	}

	return s.murmurRepository.GetMurmurByID(murmurID)
}

// Unlike removes userID's like on murmurID and returns the murmur with
// its updated counter. Both a missing murmur and a missing like fail
// with apperrors.ErrNotFound; unliking twice is not idempotent.
func (s *EngagementService) Unlike(murmurID, userID uint) (*models.Murmur, error) {
	if _, err := s.murmurRepository.GetMurmurByID(murmurID); err != nil {
		return nil, err
	}

	if err := s.likeRepository.DeleteLike(murmurID, userID); err != nil {
		return nil, err
	}

	return s.murmurRepository.GetMurmurByID(murmurID)
}

// HasLiked returns, out of the given murmur IDs, the set userID has
// liked. Batched so timeline enrichment costs one query per page.
func (s *EngagementService) HasLiked(userID uint, murmurIDs []uint) (map[uint]bool, error) {
	return s.likeRepository.GetLikedMurmurIDs(userID, murmurIDs)
}
