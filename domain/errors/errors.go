package errors

import "errors"

// ================= 业务领域错误定义 =================
// 所有业务逻辑相关的错误统一在此定义，避免跨包重复定义
// Controller 层用 errors.Is 匹配并映射为 HTTP 状态码

// ErrValidation 输入校验失败
// 具体原因用 fmt.Errorf("%w: ...", ErrValidation) 包装后返回
var ErrValidation = errors.New("validation failed")

// ErrUnauthorized 调用者不是资源所有者
var ErrUnauthorized = errors.New("caller does not own this resource")

// --- 不存在类错误 ---

var ErrStoreNotFound = errors.New("store not found in database")
var ErrPageNotFound = errors.New("page not found in database")
var ErrProductNotFound = errors.New("product not found in database")
var ErrVersionNotFound = errors.New("version not found in database")

// --- 页面不变量错误 ---

// ErrDuplicatePageType 店铺中已存在同类型页面
var ErrDuplicatePageType = errors.New("store already has a page of this type")

// ErrMaxPagesExceeded 店铺页面数量已达上限
var ErrMaxPagesExceeded = errors.New("store already has the maximum number of pages")

// ErrTierRequired 订阅等级不满足页面类型门槛
var ErrTierRequired = errors.New("subscription tier too low for this page type")

// ErrProtectedPage home 页不可删除
var ErrProtectedPage = errors.New("home page cannot be deleted")

// --- 版本不变量错误 ---

// ErrDuplicateVersion 商品下已存在同号版本
var ErrDuplicateVersion = errors.New("product already has a version with this number")

// ErrCurrentVersionProtected 当前版本不可删除
var ErrCurrentVersionProtected = errors.New("current version cannot be deleted")

// --- 基础设施错误 ---

// ErrConflict 并发写冲突：条件更新没有命中任何行
// 说明调用者看到的状态已过期，需要刷新后重试
var ErrConflict = errors.New("concurrent modification conflict, please refresh and retry")

// ErrPersistence 底层存储失败
// 核心层不做自动重试，原样向调用方传播
var ErrPersistence = errors.New("persistence layer failure")
