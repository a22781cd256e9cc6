package models

// Membership records that a user has joined a community.
//
// There is intentionally no uniqueness constraint on (UserID, CommunityID):
// repeated joins insert additional rows, and leaving deletes every matching
// row. The permissive schema mirrors the original design; see DESIGN.md.
type Membership struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	UserID      uint `gorm:"not null;index" json:"userId"`
	CommunityID uint `gorm:"not null;index" json:"communityId"`
}

// TableName specifies the table name for GORM.
func (Membership) TableName() string {
	return "community_members"
}
