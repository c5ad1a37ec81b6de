package models

import "time"

// Follow is a directed edge follower -> following.
type Follow struct {
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	ID          string    `db:"id" json:"id"`
	FollowerID  string    `db:"follower_id" json:"follower_id"`
	FollowingID string    `db:"following_id" json:"following_id"`
}
