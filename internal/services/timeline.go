package services

import (
	"math"

	"github.com/murmur-app/backend/internal/models"
	"github.com/murmur-app/backend/internal/repositories"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// TimelineService assembles paginated, per-viewer feeds. It reads the
// follow graph and the murmur store and asks the engagement service for
// like state; it never mutates engagement state itself.
type TimelineService struct {
	murmurRepository repositories.MurmurRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	engagement       *EngagementService
}

// NewTimelineService creates a new TimelineService
func NewTimelineService(
	murmurRepo repositories.MurmurRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	engagement *EngagementService,
) *TimelineService {
	return &TimelineService{
		murmurRepository: murmurRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		engagement:       engagement,
	}
}

// GetTimeline returns one page of the viewer's timeline: murmurs
// authored by the viewer or anyone they follow, newest first with id as
// the tie-breaker. Out-of-range page/limit values are clamped to
// page=1, limit=10. A viewer who follows nobody gets an empty page with
// total 0. Author names and like state are attached with one batched
// query each, never per item.
func (s *TimelineService) GetTimeline(viewerID uint, page, limit int) (*models.TimelinePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	followedIDs, err := s.followRepository.GetFollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}

	if len(followedIDs) == 0 {
		return &models.TimelinePage{
			Data: []models.TimelineItem{},
			Meta: models.TimelineMeta{Page: page, Limit: limit, Total: 0, TotalPages: 0},
		}, nil
	}

	audience := append(followedIDs, viewerID)

	total, err := s.murmurRepository.CountByAuthors(audience)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	murmurs, err := s.murmurRepository.ListByAuthors(audience, offset, limit)
	if err != nil {
		return nil, err
	}

	items, err := s.enrich(murmurs, viewerID)
	if err != nil {
		return nil, err
	}

	return &models.TimelinePage{
		Data: items,
		Meta: models.TimelineMeta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// GetMurmur returns a single murmur enriched with the author's name and
// the viewer's like state. A missing murmur fails with
// apperrors.ErrNotFound.
func (s *TimelineService) GetMurmur(murmurID, viewerID uint) (*models.TimelineItem, error) {
	murmur, err := s.murmurRepository.GetMurmurByID(murmurID)
	if err != nil {
		return nil, err
	}

	items, err := s.enrich([]models.Murmur{*murmur}, viewerID)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// enrich attaches author names and the viewer's like flags to a page of
// murmurs using one users query and one likes query.
func (s *TimelineService) enrich(murmurs []models.Murmur, viewerID uint) ([]models.TimelineItem, error) {
	authorIDs := make([]uint, 0, len(murmurs))
	seen := make(map[uint]bool, len(murmurs))
	murmurIDs := make([]uint, len(murmurs))
	for i, m := range murmurs {
		if !seen[m.UserID] {
			seen[m.UserID] = true
			authorIDs = append(authorIDs, m.UserID)
		}
		murmurIDs[i] = m.ID
	}

	authors, err := s.userRepository.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[uint]string, len(authors))
	for _, u := range authors {
		nameByID[u.ID] = u.Name
	}

	liked, err := s.engagement.HasLiked(viewerID, murmurIDs)
	if err != nil {
		return nil, err
	}

	items := make([]models.TimelineItem, len(murmurs))
	for i, m := range murmurs {
		items[i] = models.TimelineItem{
			ID:        m.ID,
			Text:      m.Text,
			LikeCount: m.LikeCount,
			UserID:    m.UserID,
			UserName:  nameByID[m.UserID],
			CreatedAt: m.CreatedAt,
			IsLiked:   liked[m.ID],
		}
	}
	return items, nil
}
