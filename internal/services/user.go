package services

import (
	"github.com/murmur-app/backend/internal/models"
	"github.com/murmur-app/backend/internal/repositories"
)

// UserService serves user profiles with follow-graph counts
type UserService struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserService {
	return &UserService{
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// GetProfile returns the profile of user id as seen by viewerID:
// follower/following counts from the follow graph plus whether the
// viewer follows them. isFollowing is always false on one's own
// profile.
func (s *UserService) GetProfile(id, viewerID uint) (*models.UserProfile, error) {
	user, err := s.userRepository.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	followerCount, err := s.followRepository.GetFollowerCount(id)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepository.GetFollowingCount(id)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != 0 && viewerID != id {
		isFollowing, err = s.followRepository.IsFollowing(viewerID, id)
		if err != nil {
			return nil, err
		}
	}

	return &models.UserProfile{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		IsFollowing:    isFollowing,
		CreatedAt:      user.CreatedAt,
	}, nil
}
