package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-go-server/api/controller"
	"storefront-go-server/api/route"
	"storefront-go-server/bootstrap"
	"storefront-go-server/internal/keylock"
	"storefront-go-server/repository"
	"storefront-go-server/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("[Server] Storefront Go Server 启动中...")

	// 加载环境变量
	env := bootstrap.LoadEnv()

	// 初始化 Clerk
	bootstrap.InitClerk()

	// 连接数据库
	db := bootstrap.NewDatabase(env.DatabaseURL)

	// 依赖注入 - Repository 层
	storeRepo := repository.NewStoreRepository(db)
	pageRepo := repository.NewPageRepository(db)
	productRepo := repository.NewProductRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	userRepo := repository.NewUserRepository(db)

	// 按实体串行化的互斥锁，页面集合和版本账本共用一套目录
	locks := keylock.New()

	// 依赖注入 - UseCase 层
	storeUseCase := usecase.NewStoreUseCase(storeRepo)
	pageUseCase := usecase.NewPageUseCase(pageRepo, storeRepo, locks)
	productUseCase := usecase.NewProductUseCase(productRepo, storeRepo)
	versionUseCase := usecase.NewVersionUseCase(versionRepo, productRepo, storeRepo, locks)

	// 依赖注入 - Controller 层
	storeController := controller.NewStoreController(storeUseCase, productUseCase)
	pageController := controller.NewPageController(pageUseCase)
	versionController := controller.NewVersionController(versionUseCase)
	webhookController := controller.NewWebhookController(userRepo, env.WebhookSecret)

	// 配置 Gin 路由
	router := gin.Default()

	// CORS 配置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 设置路由
	route.Setup(router, &route.Dependencies{
		StoreController:   storeController,
		PageController:    pageController,
		VersionController: versionController,
		WebhookController: webhookController,
	})

	// 启动 HTTP 服务
	srv := &http.Server{
		Addr:    ":" + env.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[Server] 服务已启动: http://localhost:%s", env.Port)
		log.Printf("[Server] API 端点:")
		log.Printf("   GET  /health                               - 健康检查")
		log.Printf("   POST /api/stores                           - 创建店铺")
		log.Printf("   GET  /api/stores/:storeId/pages            - 页面列表")
		log.Printf("   POST /api/stores/:storeId/pages            - 添加页面")
		log.Printf("   PUT  /api/stores/:storeId/pages/order      - 重排页面")
		log.Printf("   POST /api/products/:productId/versions     - 创建版本")
		log.Printf("   PUT  /api/versions/:versionId/current      - 切换当前版本")
		log.Printf("   POST /webhook/clerk                        - Clerk Webhook")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] 服务启动失败: %v", err)
		}
	}()

	// 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] 收到停机信号，正在优雅关闭...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[Server] 服务强制关闭: %v", err)
	}

	log.Println("[Server] 服务已安全停止")
}
