package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted on profiles
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// DefaultAvatar is served for users without a profile picture
const DefaultAvatar = "avatars/default.png"

// User model definition with authentication and profile fields
type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Handle            string     `gorm:"column:unique_id;size:32;uniqueIndex;not null" json:"uniqueId"`
	Email             string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username          string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password          string     `gorm:"size:255;not null" json:"-"` // bcrypt hash
	FullName          string     `gorm:"size:200" json:"fullName"`
	Bio               string     `gorm:"type:text" json:"bio"`
	Gender            Gender     `gorm:"size:16;not null;default:'unknown'" json:"gender"`
	ProfilePicture    string     `gorm:"size:255" json:"profilePicture"`
	IsActive          bool       `gorm:"not null;default:true" json:"isActive"`
	IsVerified        bool       `gorm:"not null;default:false" json:"isVerified"`
	Level             int        `gorm:"not null;default:1" json:"level"`
	VIPLevel          int        `gorm:"column:vip_level;not null;default:0" json:"vipLevel"`
	VIPExpireAt       *time.Time `gorm:"column:vip_expire_at" json:"vipExpireAt,omitempty"`
	LoginCount        int        `gorm:"not null;default:0" json:"loginCount"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty"`
	PasswordUpdatedAt time.Time  `gorm:"not null" json:"-"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// TableName keeps the table name stable for raw joins in other packages
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook for User model
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	if u.PasswordUpdatedAt.IsZero() {
		u.PasswordUpdatedAt = now
	}
	if u.Gender == "" {
		u.Gender = GenderUnknown
	}
	return nil
}

// BeforeUpdate hook for User model
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// Avatar returns the stored picture key or the default one
func (u *User) Avatar() string {
	if u.ProfilePicture == "" {
		return DefaultAvatar
	}
	return u.ProfilePicture
}
