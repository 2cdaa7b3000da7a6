package repositories

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/murmur-app/backend/internal/apperrors"
	"github.com/murmur-app/backend/internal/models"
)

// MemoryStore is an in-memory implementation of all repository
// interfaces, used by tests. It mirrors the PostgreSQL schema's
// semantics: composite uniqueness on follow and like pairs, counter
// updates committed together with the edge writes, and the clamped
// decrement. All operations serialize on one mutex, standing in for the
// store-level transactions.
type MemoryStore struct {
	mu         sync.Mutex
	users      map[uint]models.User
	murmurs    map[uint]models.Murmur
	follows    map[[2]uint]models.Follow // (followerID, followedID)
	likes      map[[2]uint]models.Like   // (userID, murmurID)
	nextUserID uint
	nextMurmID uint
	nextEdgeID uint
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[uint]models.User),
		murmurs: make(map[uint]models.Murmur),
		follows: make(map[[2]uint]models.Follow),
		likes:   make(map[[2]uint]models.Like),
	}
}

var (
	_ UserRepository   = (*MemoryStore)(nil)
	_ MurmurRepository = (*MemoryStore)(nil)
	_ FollowRepository = (*MemoryStore)(nil)
	_ LikeRepository   = (*MemoryStore)(nil)
)

// CreateUser stores a new user and assigns its ID
func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return apperrors.ErrConflict
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

// GetUserByID retrieves a user by ID
func (s *MemoryStore) GetUserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

// GetUsersByIDs retrieves multiple users by ID
func (s *MemoryStore) GetUsersByIDs(ids []uint) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

// CreateMurmur stores a new murmur and assigns its ID
func (s *MemoryStore) CreateMurmur(murmur *models.Murmur) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMurmID++
	murmur.ID = s.nextMurmID
	if murmur.CreatedAt.IsZero() {
		murmur.CreatedAt = time.Now()
	}
	murmur.UpdatedAt = murmur.CreatedAt
	s.murmurs[murmur.ID] = *murmur
	return nil
}

// GetMurmurByID retrieves a murmur by ID
func (s *MemoryStore) GetMurmurByID(id uint) (*models.Murmur, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	murmur, ok := s.murmurs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &murmur, nil
}

// ListByAuthor retrieves all murmurs by one author, newest first
func (s *MemoryStore) ListByAuthor(userID uint) ([]models.Murmur, error) {
	return s.ListByAuthors([]uint{userID}, 0, math.MaxInt)
}

// ListByAuthors retrieves one page of murmurs authored by any of the
// given users, newest first with id as the tie-breaker
func (s *MemoryStore) ListByAuthors(authorIDs []uint, offset, limit int) ([]models.Murmur, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authors := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}

	var murmurs []models.Murmur
	for _, m := range s.murmurs {
		if authors[m.UserID] {
			murmurs = append(murmurs, m)
		}
	}
	sort.Slice(murmurs, func(i, j int) bool {
		if !murmurs[i].CreatedAt.Equal(murmurs[j].CreatedAt) {
			return murmurs[i].CreatedAt.After(murmurs[j].CreatedAt)
		}
		return murmurs[i].ID > murmurs[j].ID
	})

	if offset >= len(murmurs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(murmurs) {
		end = len(murmurs)
	}
	return murmurs[offset:end], nil
}

// CountByAuthors counts murmurs authored by any of the given users
func (s *MemoryStore) CountByAuthors(authorIDs []uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authors := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}
	var count int64
	for _, m := range s.murmurs {
		if authors[m.UserID] {
			count++
		}
	}
	return count, nil
}

// DeleteMurmur deletes a murmur together with its like rows
func (s *MemoryStore) DeleteMurmur(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.murmurs[id]; !ok {
		return apperrors.ErrNotFound
	}
	for key := range s.likes {
		if key[1] == id {
			delete(s.likes, key)
		}
	}
	delete(s.murmurs, id)
	return nil
}

// CreateFollow inserts a follow edge, enforcing pair uniqueness
func (s *MemoryStore) CreateFollow(follow *models.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]uint{follow.FollowerID, follow.FollowedID}
	if _, exists := s.follows[key]; exists {
		return apperrors.ErrConflict
	}

	s.nextEdgeID++
	follow.ID = s.nextEdgeID
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	s.follows[key] = *follow
	return nil
}

// DeleteFollow deletes a follow edge
func (s *MemoryStore) DeleteFollow(followerID, followedID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]uint{followerID, followedID}
	if _, exists := s.follows[key]; !exists {
		return apperrors.ErrNotFound
	}
	delete(s.follows, key)
	return nil
}

// IsFollowing reports whether followerID follows followedID
func (s *MemoryStore) IsFollowing(followerID, followedID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.follows[[2]uint{followerID, followedID}]
	return exists, nil
}

// GetFollowingIDs returns the IDs of all users userID follows
func (s *MemoryStore) GetFollowingIDs(userID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []uint
	for key := range s.follows {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// GetFollowerCount counts how many users follow userID
func (s *MemoryStore) GetFollowerCount(userID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for key := range s.follows {
		if key[1] == userID {
			count++
		}
	}
	return count, nil
}

// GetFollowingCount counts how many users userID follows
func (s *MemoryStore) GetFollowingCount(userID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for key := range s.follows {
		if key[0] == userID {
			count++
		}
	}
	return count, nil
}

// CreateLike inserts a like row and increments the murmur's counter as
// one unit. Pair uniqueness is enforced under the same lock, so a
// racing duplicate gets ErrConflict and the counter moves exactly once.
func (s *MemoryStore) CreateLike(like *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]uint{like.UserID, like.MurmurID}
	if _, exists := s.likes[key]; exists {
		return apperrors.ErrConflict
	}

	s.nextEdgeID++
	like.ID = s.nextEdgeID
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	s.likes[key] = *like

	if murmur, ok := s.murmurs[like.MurmurID]; ok {
		murmur.LikeCount++
		s.murmurs[like.MurmurID] = murmur
	}
	return nil
}

// DeleteLike deletes a like row and decrements the murmur's counter as
// one unit, clamped at zero
func (s *MemoryStore) DeleteLike(murmurID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]uint{userID, murmurID}
	if _, exists := s.likes[key]; !exists {
		return apperrors.ErrNotFound
	}
	delete(s.likes, key)

	if murmur, ok := s.murmurs[murmurID]; ok {
		if murmur.LikeCount > 0 {
			murmur.LikeCount--
		}
		s.murmurs[murmurID] = murmur
	}
	return nil
}

// GetLikedMurmurIDs returns, out of the given murmur IDs, the set the
// user has liked
func (s *MemoryStore) GetLikedMurmurIDs(userID uint, murmurIDs []uint) (map[uint]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	liked := make(map[uint]bool, len(murmurIDs))
	for _, id := range murmurIDs {
		if _, exists := s.likes[[2]uint{userID, id}]; exists {
			liked[id] = true
		}
	}
	return liked, nil
}
