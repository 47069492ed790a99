package groups

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type MemberStatus string

const (
	MemberPending  MemberStatus = "pending"
	MemberAccepted MemberStatus = "accepted"
	MemberDeclined MemberStatus = "declined"
)

type Group struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Name      string `gorm:"size:128;not null" json:"name"`
	OwnerID   string `gorm:"size:36;not null;index" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// GroupMember carries both the role and the invitation state. Only members
// with an accepted status may read or write group messages.
type GroupMember struct {
	ID        string       `gorm:"primaryKey;size:36" json:"id"`
	GroupID   string       `gorm:"size:36;not null;index:idx_group_member,unique" json:"groupId"`
	UserID    string       `gorm:"size:36;not null;index:idx_group_member,unique" json:"userId"`
	Role      Role         `gorm:"size:16;not null;default:member" json:"role"`
	Status    MemberStatus `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
