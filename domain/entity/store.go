package entity

import "time"

// SubscriptionTier 店铺订阅等级
// 等级决定了店铺可以创建哪些受限页面类型（见 PageType.RequiresTier）
type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "free"
	TierPro        SubscriptionTier = "pro"
	TierProPlus    SubscriptionTier = "pro_plus"
	TierEnterprise SubscriptionTier = "enterprise"
)

// tierRank 等级排序，用于门槛比较
// 未知等级 rank 为 0（与 free 同级），避免脏数据绕过门槛
var tierRank = map[SubscriptionTier]int{
	TierFree:       0,
	TierPro:        1,
	TierProPlus:    2,
	TierEnterprise: 3,
}

// Valid 检查等级是否为合法枚举值
func (t SubscriptionTier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

// AtLeast 当前等级是否达到 min 要求
func (t SubscriptionTier) AtLeast(min SubscriptionTier) bool {
	return tierRank[t] >= tierRank[min]
}

// Store 店铺数据库模型
// 页面和商品都挂在店铺下，OwnerID 关联 Clerk 用户
type Store struct {
	ID        string           `gorm:"primaryKey;size:64" json:"id"`
	OwnerID   string           `gorm:"size:64;index" json:"ownerId"` // Clerk user_id
	Name      string           `gorm:"size:100" json:"name"`
	Tier      SubscriptionTier `gorm:"size:32;default:free" json:"tier"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
