package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/onixlab/onix-crm/models"
	"github.com/onixlab/onix-crm/service"
	"github.com/onixlab/onix-crm/utils"
)

// CustomerController 客户相关接口
type CustomerController struct {
	Service *service.CustomerService
}

// NewCustomerController 创建CustomerController
func NewCustomerController(svc *service.CustomerService) *CustomerController {
	return &CustomerController{Service: svc}
}

// GetCustomerList 获取客户列表
func (ctl *CustomerController) GetCustomerList(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 10
	}

	customers, err := ctl.Service.ListCustomers(c.Request.Context(), page, limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"count": len(customers),
		"page":  page,
		"limit": limit,
	}, "成功获取客户列表")

	c.JSON(http.StatusOK, customers)
}

// GetCustomerDetail 获取单个客户
func (ctl *CustomerController) GetCustomerDetail(c *gin.Context) {
	id := c.Param("id")

	customer, err := ctl.Service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// CreateCustomer 创建客户
func (ctl *CustomerController) CreateCustomer(c *gin.Context) {
	var req models.CustomerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	customer, err := ctl.Service.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer 更新客户，仅修改请求中出现的字段
func (ctl *CustomerController) UpdateCustomer(c *gin.Context) {
	id := c.Param("id")

	var req models.CustomerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	customer, err := ctl.Service.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer 删除客户，同时级联删除其互动记录
func (ctl *CustomerController) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")

	if err := ctl.Service.DeleteCustomer(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
