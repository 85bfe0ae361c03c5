package children

import (
	"time"

	"historinhas-api/internal/domain/users"
)

// Gender values as the frontend sends them.
const (
	GenderBoy  = "menino"
	GenderGirl = "menina"
)

type Child struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	UserID uint       `gorm:"index;not null" json:"user_id"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name   string     `gorm:"not null" json:"name"`
	Age    int        `gorm:"not null" json:"age"`
	Gender string     `gorm:"type:varchar(10);not null" json:"gender"`

	CreatedAt time.Time `json:"created_at"`
}

func ValidGender(g string) bool {
	return g == GenderBoy || g == GenderGirl
}

func ValidAge(age int) bool {
	return age >= 0 && age <= 18
}
