package entity

import "time"

// User Clerk 用户同步表
// 由 Clerk Webhook 写入，店铺的 OwnerID 指向这里的 ID
type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"` // Clerk user_id
	Email     string    `gorm:"size:255" json:"email"`
	Name      string    `gorm:"size:100" json:"name"`
	AvatarURL string    `gorm:"size:500" json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
