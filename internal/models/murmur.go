package models

import "time"

// Murmur is a short text post. LikeCount is a denormalized cache of the
// like rows for the murmur and is only ever mutated in the same
// transaction as the like row it accounts for.
type Murmur struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"` // ID of the authoring user, immutable
	Text      string    `json:"text" gorm:"type:text;not null"`
	LikeCount int       `json:"likeCount" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateMurmurRequest defines the request body for posting a new murmur
type CreateMurmurRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// TimelineItem is a murmur enriched with author info and the viewer's
// like state.
type TimelineItem struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	LikeCount int       `json:"likeCount"`
	UserID    uint      `json:"userId"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
	IsLiked   bool      `json:"isLiked"`
}

// TimelineMeta carries pagination metadata for a timeline page
type TimelineMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// TimelinePage is one page of a viewer's timeline
type TimelinePage struct {
	Data []TimelineItem `json:"data"`
	Meta TimelineMeta   `json:"meta"`
}
