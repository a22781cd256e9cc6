// Package models contains data structures for the application's domain models.
package models

// User represents a registered account.
//
// Location, Latitude and Longitude are optional free-text fields filled in
// during registration; there is no profile-edit flow, so a user row is
// immutable once created.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Password  string `gorm:"not null" json:"-"`
	Location  string `json:"location"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// InsertUser is the caller-supplied subset of User accepted at registration.
type InsertUser struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Location  string `json:"location"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}
