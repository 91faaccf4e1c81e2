package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/onixlab/onix-crm/controllers"
	"github.com/onixlab/onix-crm/repository"
	"github.com/onixlab/onix-crm/service"
	"github.com/onixlab/onix-crm/utils"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, db *mongo.Database, store repository.Store) {
	customerSvc := service.NewCustomerService(store)
	interactionSvc := service.NewInteractionService(store)

	customerCtl := controllers.NewCustomerController(customerSvc)
	interactionCtl := controllers.NewInteractionController(interactionSvc)
	dashboardCtl := controllers.NewDashboardController(customerSvc)

	RegisterCustomerRoutes(router, customerCtl, interactionCtl)
	RegisterInteractionRoutes(router, interactionCtl)
	RegisterDashboardRoutes(router, dashboardCtl)

	// 健康检查路由
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 数据库状态检查路由
	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus(c.Request.Context(), db)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		c.JSON(200, status)
	})
}
