package controller

import (
	"encoding/json"
	"net/http"

	"storefront-go-server/domain/entity"
	"storefront-go-server/usecase"

	"github.com/gin-gonic/gin"
)

// PageController 店铺页面 HTTP 控制器
type PageController struct {
	pageUseCase *usecase.PageUseCase
}

// NewPageController 创建 PageController 实例
func NewPageController(pageUseCase *usecase.PageUseCase) *PageController {
	return &PageController{pageUseCase: pageUseCase}
}

// GetPages 获取店铺页面列表
// GET /api/stores/:storeId/pages
func (pc *PageController) GetPages(c *gin.Context) {
	pages, err := pc.pageUseCase.GetPages(c.Param("storeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// AddPageRequest 添加页面请求结构
type AddPageRequest struct {
	Type string `json:"type" binding:"required"`
}

// AddPage 为店铺添加页面
// POST /api/stores/:storeId/pages
// 请求体: { "type": "about" }
func (pc *PageController) AddPage(c *gin.Context) {
	var req AddPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "type 不能为空"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	page, err := pc.pageUseCase.AddPage(c.Param("storeId"), userID, entity.PageType(req.Type))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, page)
}

// DeletePage 删除页面
// DELETE /api/pages/:pageId
// home 页受保护，返回 422
func (pc *PageController) DeletePage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	pageID := c.Param("pageId")
	if err := pc.pageUseCase.DeletePage(pageID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "页面已删除", ID: pageID})
}

// RenamePageRequest 重命名请求结构
type RenamePageRequest struct {
	Title string `json:"title" binding:"required"`
}

// RenamePage 重命名页面
// PUT /api/pages/:pageId/title
func (pc *PageController) RenamePage(c *gin.Context) {
	var req RenamePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title 不能为空"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	page, err := pc.pageUseCase.RenamePage(c.Param("pageId"), userID, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// SetEnabledRequest 启用开关请求结构
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetEnabled 切换页面启用状态
// PUT /api/pages/:pageId/enabled
func (pc *PageController) SetEnabled(c *gin.Context) {
	var req SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "enabled 不能为空"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	page, err := pc.pageUseCase.SetEnabled(c.Param("pageId"), userID, *req.Enabled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdateSectionsRequest sections 更新请求结构
// sections 整体替换、patch 增量修改（RFC 6902），二选一
type UpdateSectionsRequest struct {
	Sections json.RawMessage `json:"sections,omitempty"`
	Patch    json.RawMessage `json:"patch,omitempty"`
}

// UpdateSections 更新页面 sections 文档
// PUT /api/pages/:pageId/sections
func (pc *PageController) UpdateSections(c *gin.Context) {
	var req UpdateSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的 JSON 格式"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	page, err := pc.pageUseCase.UpdateSections(c.Param("pageId"), userID, req.Sections, req.Patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ReorderRequest 重排请求结构
// pageIds 完整排列，或 move 拖拽语义，二选一
type ReorderRequest struct {
	PageIDs []string `json:"pageIds,omitempty"`
	Move    *struct {
		PageID string `json:"pageId"`
		Index  int    `json:"index"`
	} `json:"move,omitempty"`
}

// ReorderPages 重排店铺页面
// PUT /api/stores/:storeId/pages/order
// 请求体: { "pageIds": [...] } 或 { "move": { "pageId": "xxx", "index": 2 } }
func (pc *PageController) ReorderPages(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的 JSON 格式"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	storeID := c.Param("storeId")

	var pages []entity.StorePage
	var err error
	switch {
	case req.Move != nil:
		pages, err = pc.pageUseCase.MovePage(storeID, userID, req.Move.PageID, req.Move.Index)
	case len(req.PageIDs) > 0:
		pages, err = pc.pageUseCase.ReorderPages(storeID, userID, req.PageIDs)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "pageIds 或 move 必须提供一个"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}
