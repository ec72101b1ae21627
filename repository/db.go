package repository

import (
	"fmt"

	domainErrors "storefront-go-server/domain/errors"
)

// wrapDB 把底层 GORM 错误统一包装为 ErrPersistence
// 业务层只关心"存储挂了"这一事实，用 errors.Is(err, ErrPersistence) 匹配；
// 原始错误保留在消息里便于排查
func wrapDB(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domainErrors.ErrPersistence, err)
}
