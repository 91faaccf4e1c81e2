package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/onixlab/onix-crm/controllers"
)

// RegisterCustomerRoutes 注册客户相关路由
func RegisterCustomerRoutes(router *gin.Engine, customerCtl *controllers.CustomerController, interactionCtl *controllers.InteractionController) {
	customerRoutes := router.Group("/api/customers")

	customerRoutes.GET("", customerCtl.GetCustomerList)
	customerRoutes.POST("", customerCtl.CreateCustomer)
	customerRoutes.GET("/:id", customerCtl.GetCustomerDetail)
	customerRoutes.PUT("/:id", customerCtl.UpdateCustomer)
	customerRoutes.DELETE("/:id", customerCtl.DeleteCustomer)
	customerRoutes.GET("/:id/interactions", interactionCtl.GetCustomerInteractions)
}
