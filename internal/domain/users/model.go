package users

import "time"

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	FullName     string  `gorm:"not null" json:"full_name"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Phone        *string `json:"phone,omitempty"`
	Password     *string `json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"auth_provider"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsVerified   bool    `json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
