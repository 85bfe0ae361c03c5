package stories

import (
	"time"

	"historinhas-api/internal/domain/children"
	"historinhas-api/internal/domain/users"
)

// Story rows are immutable after creation; there is no update path.
type Story struct {
	ID      uint            `gorm:"primaryKey" json:"id"`
	UserID  uint            `gorm:"index;not null" json:"user_id"`
	User    users.User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ChildID uint            `gorm:"index;not null" json:"child_id"`
	Child   *children.Child `json:"child,omitempty"`

	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	Theme   string `gorm:"not null" json:"theme"`

	Mood              *string `json:"mood,omitempty"`
	Values            *string `gorm:"column:story_values" json:"values,omitempty"`
	AdditionalDetails *string `json:"additional_details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
