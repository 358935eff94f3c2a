// Package models contains data structures for the application's domain models.
package models

import "time"

// Follow is a directed edge in the relationship graph: the following user
// follows the followed user. The composite primary key rules out duplicate
// edges; both foreign keys cascade when either endpoint user is deleted.
// Self-follows are not prevented here — the view layer never offers the
// affordance and the follow handler rejects them.
type Follow struct {
	UserBeingFollowedID uint      `gorm:"primaryKey;autoIncrement:false" json:"user_being_followed_id"`
	UserFollowingID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_following_id"`
	CreatedAt           time.Time `json:"created_at"`

	UserBeingFollowed User `gorm:"foreignKey:UserBeingFollowedID;constraint:OnDelete:CASCADE" json:"-"`
	UserFollowing     User `gorm:"foreignKey:UserFollowingID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
