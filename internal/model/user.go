package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Email                string     `gorm:"size:100;unique;not null" json:"email"`
	Password             string     `gorm:"size:100;not null" json:"-"`
	FirstName            string     `gorm:"size:100" json:"firstName"`
	LastName             string     `gorm:"size:100" json:"lastName"`
	ProfileImageURL      string     `gorm:"size:255" json:"profileImageUrl"`
	WhatsappNumber       string     `gorm:"size:30" json:"whatsappNumber"`
	CurrentStreak        int        `gorm:"default:0" json:"currentStreak"`
	LongestStreak        int        `gorm:"default:0" json:"longestStreak"`
	LastActiveDate       *time.Time `json:"lastActiveDate"`
	TotalLearningMinutes int        `gorm:"default:0" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// TotalLearningHours reports accrued learning time in whole hours.
func (u *User) TotalLearningHours() int {
	return u.TotalLearningMinutes / 60
}
