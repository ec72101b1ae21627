package controller

import (
	"net/http"

	"storefront-go-server/usecase"

	"github.com/gin-gonic/gin"
)

// VersionController 商品版本 HTTP 控制器
type VersionController struct {
	versionUseCase *usecase.VersionUseCase
}

// NewVersionController 创建 VersionController 实例
func NewVersionController(versionUseCase *usecase.VersionUseCase) *VersionController {
	return &VersionController{versionUseCase: versionUseCase}
}

// GetVersions 获取商品版本列表和当前版本
// GET /api/products/:productId/versions
func (vc *VersionController) GetVersions(c *gin.Context) {
	versions, current, err := vc.versionUseCase.GetVersions(c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"versions": versions,
		"current":  current, // 版本集合为空时为 null
	})
}

// SuggestNextVersion 推算下一个版本号（纯查询）
// GET /api/products/:productId/versions/suggest
func (vc *VersionController) SuggestNextVersion(c *gin.Context) {
	suggestion, err := vc.versionUseCase.SuggestNextVersion(c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"versionNumber": suggestion})
}

// CreateVersionRequest 创建版本请求结构
type CreateVersionRequest struct {
	VersionNumber string `json:"versionNumber" binding:"required"`
	FileReference string `json:"fileReference" binding:"required"`
	Changelog     string `json:"changelog"`
}

// CreateVersion 创建新版本（自动成为当前版本）
// POST /api/products/:productId/versions
func (vc *VersionController) CreateVersion(c *gin.Context) {
	var req CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "versionNumber 和 fileReference 不能为空"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	version, err := vc.versionUseCase.CreateVersion(
		c.Param("productId"), userID, req.VersionNumber, req.FileReference, req.Changelog)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, version)
}

// SetCurrentVersion 把指定版本设为当前版本
// PUT /api/versions/:versionId/current
func (vc *VersionController) SetCurrentVersion(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	version, err := vc.versionUseCase.SetCurrentVersion(c.Param("versionId"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, version)
}

// DeleteVersion 删除版本
// DELETE /api/versions/:versionId
// 当前版本受保护，返回 422
func (vc *VersionController) DeleteVersion(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	versionID := c.Param("versionId")
	if err := vc.versionUseCase.DeleteVersion(versionID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "版本已删除", ID: versionID})
}
