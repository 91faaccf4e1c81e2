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

// InteractionService 互动记录业务逻辑
type InteractionService struct {
	Store repository.Store
}

// NewInteractionService 创建InteractionService
func NewInteractionService(store repository.Store) *InteractionService {
	return &InteractionService{Store: store}
}

// ListForCustomer 查询客户的互动记录，按创建时间倒序
func (s *InteractionService) ListForCustomer(ctx context.Context, customerID string) ([]models.Interaction, error) {
	interactions, err := s.Store.ListInteractionsByCustomer(ctx, customerID)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return nil, utils.CreateNotFoundError("Customer")
		}
		return nil, err
	}
	return interactions, nil
}

// CreateInteraction 校验并创建互动记录
func (s *InteractionService) CreateInteraction(ctx context.Context, req models.InteractionCreateRequest) (*models.Interaction, error) {
	// 校验必填字段，空字符串视为缺失
	missing := []string{}
	if req.CustomerID == "" {
		missing = append(missing, "customer_id")
	}
	if req.Type == "" {
		missing = append(missing, "type")
	}
	if req.Notes == "" {
		missing = append(missing, "notes")
	}
	if len(missing) > 0 {
		return nil, utils.CreateValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}

	if !isValidInteractionType(req.Type) {
		return nil, utils.CreateValidationError("Invalid type: must be one of call, email, meeting")
	}

	interaction := &models.Interaction{
		ID:         uuid.NewString(),
		CustomerID: req.CustomerID,
		Type:       models.InteractionType(req.Type),
		Notes:      req.Notes,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Store.InsertInteraction(ctx, interaction); err != nil {
		if err == repository.ErrCustomerNotFound {
			return nil, utils.CreateNotFoundError("Customer")
		}
		return nil, err
	}

	utils.LogInfo(map[string]interface{}{
		"id":         interaction.ID,
		"customerId": interaction.CustomerID,
		"type":       interaction.Type,
	}, "互动记录创建成功")
	return interaction, nil
}

// isValidInteractionType 校验互动类型枚举值
func isValidInteractionType(t string) bool {
	switch models.InteractionType(t) {
	case models.InteractionTypeCall, models.InteractionTypeEmail, models.InteractionTypeMeeting:
		return true
	}
	return false
}
