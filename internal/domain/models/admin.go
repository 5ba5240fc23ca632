package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin roles. Superadmins can manage other dashboard admins; admins
// manage marketplace content.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
)

// Admin statuses.
const (
	AdminStatusActive   = "active"
	AdminStatusDisabled = "disabled"
)

// Admin is a dashboard login account. Marketplace users live upstream;
// these accounts exist only to sign in to this dashboard.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"full_name"`
	FullNameCI   string             `bson:"full_name_ci"`
	Email        string             `bson:"email"`
	PasswordHash []byte             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Status       string             `bson:"status"`
	LastLoginAt  *time.Time         `bson:"last_login_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// Enabled reports whether the account may sign in.
func (a *Admin) Enabled() bool {
	return a.Status == AdminStatusActive
}
