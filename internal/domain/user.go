package domain

import "time"

// AdminLevel is the minimum level that grants administrator rights
const AdminLevel = 10

// User is an account that owns points records. Accounts are managed
// by the identity service; this table only mirrors what the API needs
// to resolve ownership.
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id,omitempty"`
	Login     string    `gorm:"size:64;uniqueIndex;not null" json:"login"`
	Level     int       `gorm:"not null;default:1" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// TableName sets the table name for GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has administrator rights
func (u *User) IsAdmin() bool {
	return u.Level >= AdminLevel
}
