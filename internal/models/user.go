package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleUser   Role = "User"
	RoleViewer Role = "Viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleViewer:
		return true
	}
	return false
}

// User is a tenant's staff account. Usernames are unique globally because
// login looks the user up before any tenant context exists.
type User struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Username     string       `gorm:"type:varchar(100);not null;uniqueIndex:uq_users_username" json:"username"`
	PasswordHash string       `gorm:"type:varchar(256);not null" json:"-"`
	Role         Role         `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UserBranches []UserBranch `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// OwnerTenantID returns the owning tenant.
func (u *User) OwnerTenantID() uuid.UUID {
	return u.TenantID
}

// SetOwnerTenantID stamps the owning tenant.
func (u *User) SetOwnerTenantID(id uuid.UUID) {
	u.TenantID = id
}

// BranchIDs collects the user's accessible branches from its join rows.
func (u *User) BranchIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(u.UserBranches))
	for _, ub := range u.UserBranches {
		ids = append(ids, ub.BranchID)
	}
	return ids
}

// UserBranch links a user to a branch it may operate in. Rows are owned
// exclusively by the user; deleting the user cascades here.
type UserBranch struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	BranchID uuid.UUID `gorm:"type:uuid;primaryKey" json:"branch_id"`
}

// TableName overrides the table name
func (UserBranch) TableName() string {
	return "user_branches"
}

// CreateUserRequest is the payload for provisioning a staff account.
type CreateUserRequest struct {
	Username  string      `json:"username"`
	Password  string      `json:"password"`
	Role      Role        `json:"role"`
	BranchIDs []uuid.UUID `json:"branchIds"`
}

// AssignRoleRequest changes a user's role.
type AssignRoleRequest struct {
	Role Role `json:"role"`
}

// UserDTO is the external representation of a user.
type UserDTO struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Role      Role        `json:"role"`
	TenantID  uuid.UUID   `json:"tenantId"`
	BranchIDs []uuid.UUID `json:"branchIds"`
}

// ToDTO maps the persisted row to its external representation.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		TenantID:  u.TenantID,
		BranchIDs: u.BranchIDs(),
	}
}
