package models

import "time"

// Post is a titled message authored by a user within a community. Posts are
// never updated or deleted once created.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CommunityID uint      `gorm:"not null;index" json:"communityId"`
	AuthorID    uint      `gorm:"not null" json:"authorId"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}

// InsertPost is the caller-supplied subset of Post accepted on creation.
// CommunityID comes from the route, AuthorID and CreatedAt are server-assigned.
type InsertPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
