package services

import (
	"github.com/murmur-app/backend/internal/apperrors"
	"github.com/murmur-app/backend/internal/models"
	"github.com/murmur-app/backend/internal/repositories"
)

// MurmurService owns the murmur lifecycle: creation and owner-only
// deletion.
type MurmurService struct {
	murmurRepository repositories.MurmurRepository
	userRepository   repositories.UserRepository
}

// NewMurmurService creates a new MurmurService
func NewMurmurService(murmurRepo repositories.MurmurRepository, userRepo repositories.UserRepository) *MurmurService {
	return &MurmurService{
		murmurRepository: murmurRepo,
		userRepository:   userRepo,
	}
}

// Create posts a new murmur for userID with a zero like counter
func (s *MurmurService) Create(userID uint, text string) (*models.Murmur, error) {
	murmur := &models.Murmur{
		UserID:    userID,
		Text:      text,
		LikeCount: 0,
	}
	if err := s.murmurRepository.CreateMurmur(murmur); err != nil {
		return nil, err
	}
	return murmur, nil
}

// Delete removes a murmur and its likes. Only the author may delete;
// anyone else gets apperrors.ErrForbidden.
func (s *MurmurService) Delete(murmurID, userID uint) error {
	murmur, err := s.murmurRepository.GetMurmurByID(murmurID)
	if err != nil {
		return err
	}
	if murmur.UserID != userID {
		return apperrors.ErrForbidden
	}
	return s.murmurRepository.DeleteMurmur(murmurID)
}

// ListUserMurmurs returns all murmurs by the given user, newest first.
// A missing user fails with apperrors.ErrNotFound.
func (s *MurmurService) ListUserMurmurs(userID uint) ([]models.Murmur, error) {
	if _, err := s.userRepository.GetUserByID(userID); err != nil {
		return nil, err
	}
	return s.murmurRepository.ListByAuthor(userID)
}
