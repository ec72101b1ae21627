package controller

import (
	"net/http"

	"storefront-go-server/domain/entity"
	"storefront-go-server/usecase"

	"github.com/gin-gonic/gin"
)

// StoreController 店铺与商品 HTTP 控制器
type StoreController struct {
	storeUseCase   *usecase.StoreUseCase
	productUseCase *usecase.ProductUseCase
}

// NewStoreController 创建 StoreController 实例
func NewStoreController(storeUseCase *usecase.StoreUseCase, productUseCase *usecase.ProductUseCase) *StoreController {
	return &StoreController{storeUseCase: storeUseCase, productUseCase: productUseCase}
}

// CreateStoreRequest 创建店铺请求结构
type CreateStoreRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateStore 创建店铺（自动植入 home 页）
// POST /api/stores
func (sc *StoreController) CreateStore(c *gin.Context) {
	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name 不能为空"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	store, err := sc.storeUseCase.CreateStore(userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, store)
}

// GetStore 获取店铺
// GET /api/stores/:storeId
func (sc *StoreController) GetStore(c *gin.Context) {
	store, err := sc.storeUseCase.GetStore(c.Param("storeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// UpdateTierRequest 等级更新请求结构
type UpdateTierRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// UpdateTier 更新店铺订阅等级
// PUT /api/stores/:storeId/tier
func (sc *StoreController) UpdateTier(c *gin.Context) {
	var req UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "tier 不能为空"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	store, err := sc.storeUseCase.UpdateTier(c.Param("storeId"), userID, entity.SubscriptionTier(req.Tier))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// CreateProductRequest 创建商品请求结构
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
}

// CreateProduct 在店铺下创建商品
// POST /api/stores/:storeId/products
func (sc *StoreController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name 不能为空"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	product, err := sc.productUseCase.CreateProduct(
		c.Param("storeId"), userID, req.Name, req.Description, req.PriceCents)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// ListProducts 获取店铺商品列表
// GET /api/stores/:storeId/products
func (sc *StoreController) ListProducts(c *gin.Context) {
	products, err := sc.productUseCase.ListProducts(c.Param("storeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
