package repository

import "storefront-go-server/domain/entity"

// UserRepository Clerk 用户同步表仓库接口
type UserRepository interface {
	// Upsert = Update + Insert（存在则更新，不存在则创建）
	Upsert(user *entity.User) error

	// GetByID 根据 Clerk user_id 获取用户
	GetByID(userID string) (*entity.User, error)

	// Delete 删除用户（响应 Clerk user.deleted 事件）
	Delete(userID string) error
}
