package model

import "time"

// User 用户主体；关系集合拆为独立边表（follows/connections）
type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	Username     string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(128);uniqueIndex;not null"`
	Password     string `gorm:"type:varchar(255)"` // bcrypt 哈希，纯 OAuth 账号为空
	ExternalID   string `gorm:"type:varchar(128);index:idx_user_external"`
	Name         string `gorm:"type:varchar(128)"`
	Bio          string `gorm:"type:text"`
	ProfilePhoto string `gorm:"type:varchar(512)"`
	Website      string `gorm:"type:varchar(512)"`
	Verified     bool   `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

// DisplayName 对外展示名，缺省回退 username
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
