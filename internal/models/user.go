package models

import "time"

// User is a registered learner on the platform.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"size:128;not null" json:"-"`
	FirstName      string    `gorm:"size:150" json:"first_name"`
	LastName       string    `gorm:"size:150" json:"last_name"`
	ProfilePicture string    `gorm:"size:512" json:"profile_picture"`
	Bio            string    `gorm:"size:500" json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
