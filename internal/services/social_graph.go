package services

import (
	"github.com/murmur-app/backend/internal/apperrors"
	"github.com/murmur-app/backend/internal/models"
	"github.com/murmur-app/backend/internal/repositories"
)

// SocialGraphService owns follow/unfollow mutations on the follow graph
type SocialGraphService struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewSocialGraphService creates a new SocialGraphService
func NewSocialGraphService(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *SocialGraphService {
	return &SocialGraphService{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// Follow creates a follow edge from followerID to targetID. Self-follows
// are rejected with apperrors.ErrSelfFollow and a missing target with
// apperrors.ErrNotFound. There is no existence pre-check on the edge
// itself: the insert runs straight against the unique index, so a
// duplicate, racing or not, comes back as apperrors.ErrConflict.
func (s *SocialGraphService) Follow(followerID, targetID uint) error {
	if followerID == targetID {
		return apperrors.ErrSelfFollow
	}

	if _, err := s.userRepository.GetUserByID(targetID); err != nil {
		return err
	}

	follow := &models.Follow{
		FollowerID: followerID,
		FollowedID: targetID,
	}
	return s.followRepository.CreateFollow(follow)
}

// Unfollow removes the follow edge from followerID to targetID. A
// second unfollow fails with apperrors.ErrNotFound rather than
// succeeding idempotently; this preserves the observed contract.
func (s *SocialGraphService) Unfollow(followerID, targetID uint) error {
	return s.followRepository.DeleteFollow(followerID, targetID)
}

// IsFollowing reports whether viewerID follows targetID. An absent edge
// is false, never an error.
func (s *SocialGraphService) IsFollowing(viewerID, targetID uint) (bool, error) {
	return s.followRepository.IsFollowing(viewerID, targetID)
}
