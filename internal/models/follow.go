package models

import "time"

// Follow is a directed edge meaning FollowerID's timeline includes
// FollowedID's murmurs. The composite unique index is the arbiter for
// duplicate edges, including racing duplicate inserts.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"followerId" gorm:"index;not null;uniqueIndex:idx_follower_followed"`
	FollowedID uint      `json:"followedId" gorm:"index;not null;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"createdAt"`
}
