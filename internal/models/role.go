package models

import "time"

// Role is a named access role. The three default roles are seeded at
// boot; user records reference them by name through User.Role.
type Role struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}
