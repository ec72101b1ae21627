package repository

import "storefront-go-server/domain/entity"

// VersionRepository 商品版本数据仓库接口
//
// "有且只有一个当前版本"不变量依赖两个事务方法：
// CreateAsCurrent 和 PromoteExclusively 都必须把"全量降级 + 单个升级"
// 放进同一个数据库事务。拆成两次独立写入会留下零个或多个当前版本的窗口。
type VersionRepository interface {
	// GetByID 根据版本 ID 获取版本，不存在时返回 (nil, nil)
	GetByID(versionID string) (*entity.ProductVersion, error)

	// ListByProduct 获取商品的全部版本，按创建时间倒序（最新在前）
	ListByProduct(productID string) ([]entity.ProductVersion, error)

	// CreateAsCurrent 降级商品下所有旧版本并插入新的当前版本（单事务）
	// 版本号撞库时返回 ErrDuplicateVersion
	CreateAsCurrent(version *entity.ProductVersion) error

	// PromoteExclusively 降级商品下所有版本并独占升级指定版本（单事务）
	// versionID 不属于 productID 或不存在时返回 ErrVersionNotFound
	PromoteExclusively(productID, versionID string) error

	// Delete 删除版本
	// ⚠️ 条件删除：只删 is_current = false 的行，
	// 与 PromoteExclusively 并发竞争时宁可失败也不能删掉当前版本
	Delete(versionID string) error
}
