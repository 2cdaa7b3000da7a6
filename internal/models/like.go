package models

import "time"

// Like records that a user has liked a murmur. The like rows are the
// source of truth for Murmur.LikeCount; the composite unique index
// guarantees at most one like per (user, murmur) pair.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null;uniqueIndex:idx_user_murmur"`
	MurmurID  uint      `json:"murmurId" gorm:"index;not null;uniqueIndex:idx_user_murmur"`
	CreatedAt time.Time `json:"createdAt"`
}
