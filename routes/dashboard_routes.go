package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/onixlab/onix-crm/controllers"
)

// RegisterDashboardRoutes 注册数据看板路由
func RegisterDashboardRoutes(router *gin.Engine, dashboardCtl *controllers.DashboardController) {
	router.GET("/", dashboardCtl.HomePage)
	router.GET("/api/dashboard/stats", dashboardCtl.GetDashboardStats)
}
