package service

import (
	"context"
	"strings"
	"time"

	"github.com/onixlab/onix-crm/models"
	"github.com/onixlab/onix-crm/repository"
	"github.com/onixlab/onix-crm/utils"

	"github.com/google/uuid"
)

// CustomerService 客户业务逻辑，存储句柄在构造时注入
type CustomerService struct {
	Store repository.Store
}

// NewCustomerService 创建CustomerService
func NewCustomerService(store repository.Store) *CustomerService {
	return &CustomerService{Store: store}
}

// ListCustomers 分页查询客户列表
func (s *CustomerService) ListCustomers(ctx context.Context, page, limit int) ([]models.Customer, error) {
	return s.Store.ListCustomers(ctx, page, limit)
}

// GetCustomer 查询单个客户
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.Store.GetCustomer(ctx, id)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return nil, utils.CreateNotFoundError("Customer")
		}
		return nil, err
	}
	return customer, nil
}

// CreateCustomer 校验并创建客户
func (s *CustomerService) CreateCustomer(ctx context.Context, req models.CustomerCreateRequest) (*models.Customer, error) {
	// 校验必填字段，空字符串视为缺失
	missing := []string{}
	if req.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if req.LastName == "" {
		missing = append(missing, "last_name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, utils.CreateValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}

	// 状态默认为lead，仅接受枚举值
	status := models.CustomerStatusLead
	if req.Status != "" {
		if !isValidStatus(req.Status) {
			return nil, utils.CreateValidationError("Invalid status: must be one of lead, prospect, customer")
		}
		status = models.CustomerStatus(req.Status)
	}

	now := time.Now().UTC()
	customer := &models.Customer{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.InsertCustomer(ctx, customer); err != nil {
		if err == repository.ErrEmailExists {
			return nil, utils.CreateConflictError("Customer with this email already exists")
		}
		return nil, err
	}

	utils.LogInfo(map[string]interface{}{
		"id":    customer.ID,
		"email": customer.Email,
	}, "客户创建成功")
	return customer, nil
}

// UpdateCustomer 合并更新客户，仅修改请求中出现且非空的字段
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req models.CustomerUpdateRequest) (*models.Customer, error) {
	updates := map[string]interface{}{}

	if req.FirstName != nil && *req.FirstName != "" {
		updates["firstName"] = *req.FirstName
	}
	if req.LastName != nil && *req.LastName != "" {
		updates["lastName"] = *req.LastName
	}
	if req.Email != nil && *req.Email != "" {
		updates["email"] = *req.Email
	}
	if req.Company != nil && *req.Company != "" {
		updates["company"] = *req.Company
	}
	if req.Status != nil && *req.Status != "" {
		if !isValidStatus(*req.Status) {
			return nil, utils.CreateValidationError("Invalid status: must be one of lead, prospect, customer")
		}
		updates["status"] = models.CustomerStatus(*req.Status)
	}

	customer, err := s.Store.UpdateCustomer(ctx, id, updates)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return nil, utils.CreateNotFoundError("Customer")
		}
		if err == repository.ErrEmailExists {
			return nil, utils.CreateConflictError("Customer with this email already exists")
		}
		return nil, err
	}

	utils.LogInfo(map[string]interface{}{
		"id":     id,
		"fields": len(updates),
	}, "客户更新成功")
	return customer, nil
}

// DeleteCustomer 删除客户并级联删除其互动记录
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.Store.DeleteCustomer(ctx, id); err != nil {
		if err == repository.ErrCustomerNotFound {
			return utils.CreateNotFoundError("Customer")
		}
		return err
	}

	utils.LogInfo(map[string]interface{}{"id": id}, "客户删除成功")
	return nil
}

// GetDashboardStats 获取数据看板统计信息
func (s *CustomerService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return s.Store.GetDashboardStats(ctx)
}

// isValidStatus 校验客户状态枚举值
func isValidStatus(status string) bool {
	switch models.CustomerStatus(status) {
	case models.CustomerStatusLead, models.CustomerStatusProspect, models.CustomerStatusCustomer:
		return true
	}
	return false
}
