package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                     // 主键
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`        // 邮箱（登录账号）
	PasswordHash       string         `gorm:"not null" json:"-"`                        // 密码哈希（不返回给前端）
	Document           string         `gorm:"type:varchar(20)" json:"document"`         // 证件号
	FirstName          string         `gorm:"type:varchar(50)" json:"first_name"`       // 名
	LastName           string         `gorm:"type:varchar(50)" json:"last_name"`        // 姓
	Address            string         `gorm:"type:varchar(200)" json:"address"`         // 地址
	PhoneNumber        string         `gorm:"type:varchar(20)" json:"phone_number"`     // 电话
	Photo              string         `gorm:"type:varchar(500)" json:"photo"`           // 头像（图片路径）
	CityID             *uint          `gorm:"index" json:"city_id"`                     // 城市ID
	Role               string         `gorm:"type:varchar(20);not null;default:'user';index" json:"role"` // 角色（user/admin）
	Locale             string         `gorm:"type:varchar(20);default:'es'" json:"locale"`                // 语言偏好
	Status             string         `gorm:"default:'active'" json:"status"`           // 账号状态
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`              // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                           // 该时间点前签发的 Token 失效
	EmailVerifiedAt    *time.Time     `json:"email_verified_at"`                        // 邮箱验证时间
	LastLoginAt        *time.Time     `json:"last_login_at"`                            // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                  // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间

	City *City `gorm:"foreignKey:CityID" json:"city,omitempty"` // 所在城市
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// FullName 返回姓名拼接
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin 是否管理员角色
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}
