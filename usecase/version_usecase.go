package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront-go-server/domain/entity"
	domainErrors "storefront-go-server/domain/errors"
	"storefront-go-server/domain/repository"
	"storefront-go-server/internal/keylock"

	"github.com/google/uuid"
)

// VersionUseCase 商品版本业务逻辑层
//
// 管着商品的版本账本和独占的"当前版本"指针：
// - 同一商品下版本号唯一
// - 非空版本集合中有且只有一个当前版本
// - 当前版本不可删除
//
// 当前版本指针的交换（CreateVersion / SetCurrentVersion）有双重保护：
// locks 按商品串行化调用者，仓库层事务保证交换原子落库。
// 两层各司其职——锁挡住"基于过期快照做校验"，事务挡住"交换写了一半"
type VersionUseCase struct {
	versions repository.VersionRepository
	products repository.ProductRepository
	stores   repository.StoreRepository
	locks    *keylock.KeyedMutex
}

// NewVersionUseCase 构造函数，依赖注入
func NewVersionUseCase(
	versions repository.VersionRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
	locks *keylock.KeyedMutex,
) *VersionUseCase {
	return &VersionUseCase{versions: versions, products: products, stores: stores, locks: locks}
}

// GetVersions 获取商品版本列表（最新在前）和当前版本
// 版本集合为空时 current 为 nil
func (uc *VersionUseCase) GetVersions(productID string) ([]entity.ProductVersion, *entity.ProductVersion, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domainErrors.ErrProductNotFound
	}

	versions, err := uc.versions.ListByProduct(productID)
	if err != nil {
		return nil, nil, err
	}

	var current *entity.ProductVersion
	for i := range versions {
		if versions[i].IsCurrent {
			current = &versions[i]
			break
		}
	}
	return versions, current, nil
}

// SuggestNextVersion 推算下一个版本号，纯查询无副作用
//
// 规则：取最近创建的版本号，按 "." 切段，只对最后一段 +1——
// "1.2.3" → "1.2.4"，"2.9" → "2.10"，"5" → "6"，段数不补齐；
// 没有任何版本时返回 "1.0.0"；最新版本号解析不出数字段时也回退 "1.0.0"
func (uc *VersionUseCase) SuggestNextVersion(productID string) (string, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domainErrors.ErrProductNotFound
	}

	versions, err := uc.versions.ListByProduct(productID)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "1.0.0", nil
	}

	// ListByProduct 按创建时间倒序，第一个就是最近创建的版本
	return bumpLastSegment(versions[0].VersionNumber), nil
}

// bumpLastSegment 对版本号的最后一段 +1，其余段原样保留
func bumpLastSegment(versionNumber string) string {
	segments := strings.Split(strings.TrimSpace(versionNumber), ".")
	numbers := make([]int, len(segments))
	for i, seg := range segments {
		n, err := strconv.Atoi(seg)
		if err != nil || n < 0 {
			return "1.0.0" // 脏数据，给一个可用的起点
		}
		numbers[i] = n
	}

	numbers[len(numbers)-1]++

	out := make([]string, len(numbers))
	for i, n := range numbers {
		out[i] = strconv.Itoa(n)
	}
	return strings.Join(out, ".")
}

// CreateVersion 创建新版本并把它设为当前版本
// 旧的当前版本在同一个事务里被降级（见 VersionRepository.CreateAsCurrent）
func (uc *VersionUseCase) CreateVersion(productID, callerID, versionNumber, fileReference, changelog string) (*entity.ProductVersion, error) {
	versionNumber = strings.TrimSpace(versionNumber)
	if versionNumber == "" {
		return nil, fmt.Errorf("%w: version number must not be empty", domainErrors.ErrValidation)
	}
	if strings.TrimSpace(fileReference) == "" {
		return nil, fmt.Errorf("%w: file reference must not be empty", domainErrors.ErrValidation)
	}

	unlock := uc.locks.Lock(productKey(productID))
	defer unlock()

	if err := uc.ownedProduct(productID, callerID); err != nil {
		return nil, err
	}

	// 临界区内的新鲜读做重号检查；唯一索引在仓库层兜底
	existing, err := uc.versions.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	for _, v := range existing {
		if v.VersionNumber == versionNumber {
			return nil, domainErrors.ErrDuplicateVersion
		}
	}

	version := &entity.ProductVersion{
		ID:            uuid.NewString(),
		ProductID:     productID,
		VersionNumber: versionNumber,
		FileReference: fileReference,
		Changelog:     changelog,
		CreatedAt:     time.Now(),
	}
	if err := uc.versions.CreateAsCurrent(version); err != nil {
		return nil, err
	}
	return version, nil
}

// SetCurrentVersion 把指定版本设为当前版本
// 已是当前版本时 no-op；降级 + 升级在仓库层单事务完成
func (uc *VersionUseCase) SetCurrentVersion(versionID, callerID string) (*entity.ProductVersion, error) {
	version, err := uc.versions.GetByID(versionID)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, domainErrors.ErrVersionNotFound
	}

	unlock := uc.locks.Lock(productKey(version.ProductID))
	defer unlock()

	if err := uc.ownedProduct(version.ProductID, callerID); err != nil {
		return nil, err
	}

	// 临界区内重读，拿到当前的真实状态
	version, err = uc.versions.GetByID(versionID)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, domainErrors.ErrVersionNotFound
	}
	if version.IsCurrent {
		return version, nil // 已是当前版本，no-op
	}

	if err := uc.versions.PromoteExclusively(version.ProductID, versionID); err != nil {
		return nil, err
	}
	version.IsCurrent = true
	return version, nil
}

// DeleteVersion 删除版本
// ⚠️ 当前版本受保护；仓库层条件删除兜底并发竞争
func (uc *VersionUseCase) DeleteVersion(versionID, callerID string) error {
	version, err := uc.versions.GetByID(versionID)
	if err != nil {
		return err
	}
	if version == nil {
		return domainErrors.ErrVersionNotFound
	}

	unlock := uc.locks.Lock(productKey(version.ProductID))
	defer unlock()

	if err := uc.ownedProduct(version.ProductID, callerID); err != nil {
		return err
	}

	version, err = uc.versions.GetByID(versionID)
	if err != nil {
		return err
	}
	if version == nil {
		return domainErrors.ErrVersionNotFound
	}
	if version.IsCurrent {
		return domainErrors.ErrCurrentVersionProtected
	}

	return uc.versions.Delete(versionID)
}

// ownedProduct 校验商品存在且其店铺归属调用者
func (uc *VersionUseCase) ownedProduct(productID, callerID string) error {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domainErrors.ErrProductNotFound
	}

	store, err := uc.stores.GetByID(product.StoreID)
	if err != nil {
		return err
	}
	if store == nil {
		return domainErrors.ErrStoreNotFound
	}
	if store.OwnerID != callerID {
		return domainErrors.ErrUnauthorized
	}
	return nil
}

// productKey 版本集合的串行化锁 key
func productKey(productID string) string {
	return "product:" + productID
}
