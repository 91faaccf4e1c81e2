package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/onixlab/onix-crm/controllers"
)

// RegisterInteractionRoutes 注册互动记录相关路由
func RegisterInteractionRoutes(router *gin.Engine, interactionCtl *controllers.InteractionController) {
	interactionRoutes := router.Group("/api/interactions")

	interactionRoutes.POST("", interactionCtl.CreateInteraction)
}
