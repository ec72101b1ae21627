package route

import (
	"storefront-go-server/api/controller"
	"storefront-go-server/api/middleware"

	"github.com/gin-gonic/gin"
)

// Dependencies 路由依赖注入结构
type Dependencies struct {
	StoreController   *controller.StoreController
	PageController    *controller.PageController
	VersionController *controller.VersionController
	WebhookController *controller.WebhookController
}

// Setup 配置所有路由
func Setup(router *gin.Engine, deps *Dependencies) {
	// --- 公开路由 ---

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "storefront-go-server",
		})
	})

	// Clerk Webhook（使用签名验证，不使用 JWT）
	router.POST("/webhook/clerk", deps.WebhookController.HandleClerkWebhook)

	// --- API 路由（需要 Clerk JWT 认证）---
	api := router.Group("/api")
	api.Use(middleware.ClerkAuth())
	{
		// 店铺
		api.POST("/stores", deps.StoreController.CreateStore)
		api.GET("/stores/:storeId", deps.StoreController.GetStore)
		api.PUT("/stores/:storeId/tier", deps.StoreController.UpdateTier)

		// 页面集合
		api.GET("/stores/:storeId/pages", deps.PageController.GetPages)
		api.POST("/stores/:storeId/pages", deps.PageController.AddPage)
		api.PUT("/stores/:storeId/pages/order", deps.PageController.ReorderPages)
		api.PUT("/pages/:pageId/title", deps.PageController.RenamePage)
		api.PUT("/pages/:pageId/enabled", deps.PageController.SetEnabled)
		api.PUT("/pages/:pageId/sections", deps.PageController.UpdateSections)
		api.DELETE("/pages/:pageId", deps.PageController.DeletePage)

		// 商品
		api.POST("/stores/:storeId/products", deps.StoreController.CreateProduct)
		api.GET("/stores/:storeId/products", deps.StoreController.ListProducts)

		// 版本账本
		api.GET("/products/:productId/versions", deps.VersionController.GetVersions)
		api.GET("/products/:productId/versions/suggest", deps.VersionController.SuggestNextVersion)
		api.POST("/products/:productId/versions", deps.VersionController.CreateVersion)
		api.PUT("/versions/:versionId/current", deps.VersionController.SetCurrentVersion)
		api.DELETE("/versions/:versionId", deps.VersionController.DeleteVersion)
	}
}
