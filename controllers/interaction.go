package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onixlab/onix-crm/models"
	"github.com/onixlab/onix-crm/service"
	"github.com/onixlab/onix-crm/utils"
)

// InteractionController 互动记录相关接口
type InteractionController struct {
	Service *service.InteractionService
}

// NewInteractionController 创建InteractionController
func NewInteractionController(svc *service.InteractionService) *InteractionController {
	return &InteractionController{Service: svc}
}

// GetCustomerInteractions 获取某个客户的互动记录列表
func (ctl *InteractionController) GetCustomerInteractions(c *gin.Context) {
	customerID := c.Param("id")

	interactions, err := ctl.Service.ListForCustomer(c.Request.Context(), customerID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"customerId":  customerID,
		"recordCount": len(interactions),
	}, "获取客户互动记录成功")

	c.JSON(http.StatusOK, interactions)
}

// CreateInteraction 创建互动记录
func (ctl *InteractionController) CreateInteraction(c *gin.Context) {
	var req models.InteractionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	interaction, err := ctl.Service.CreateInteraction(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interaction)
}
