package models

import "time"

// Community represents a named discussion space users can join and post within.
//
// CreatorID is expected to reference an existing user but is deliberately not
// declared as a foreign key; referential integrity is advisory in this schema.
// Communities are never updated or deleted once created.
type Community struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Thumbnail   string    `gorm:"not null" json:"thumbnail"`
	IsLocal     bool      `gorm:"not null;default:false" json:"isLocal"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	CreatorID   uint      `gorm:"not null" json:"creatorId"`
}

// InsertCommunity is the caller-supplied subset of Community accepted on
// creation. CreatorID and CreatedAt are server-assigned.
type InsertCommunity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	IsLocal     bool   `json:"isLocal"`
}
