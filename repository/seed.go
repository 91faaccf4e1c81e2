package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/onixlab/onix-crm/models"
	"github.com/onixlab/onix-crm/utils"

	"github.com/google/uuid"
)

// InitializeSampleData 初始化演示数据，仅在客户集合为空时执行
func InitializeSampleData(ctx context.Context, store Store) error {
	count, err := store.CountCustomers(ctx)
	if err != nil {
		return fmt.Errorf("检查客户数据失败: %w", err)
	}

	// 已有数据时跳过
	if count > 0 {
		utils.Logger.Info().Msg("客户数据已存在，跳过演示数据初始化")
		return nil
	}

	now := time.Now().UTC()
	customers := []models.Customer{
		{
			ID:        uuid.NewString(),
			FirstName: "John",
			LastName:  "Smith",
			Email:     "john.smith@acme.com",
			Company:   "ACME Inc.",
			Status:    models.CustomerStatusCustomer,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			FirstName: "Sarah",
			LastName:  "Johnson",
			Email:     "sarah.j@techinnovate.com",
			Company:   "Tech Innovate",
			Status:    models.CustomerStatusProspect,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			FirstName: "Michael",
			LastName:  "Brown",
			Email:     "mbrown@globalcorp.com",
			Company:   "Global Corp",
			Status:    models.CustomerStatusLead,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for i := range customers {
		customer := &customers[i]
		if _, err := ExecuteDbOperation(func() (interface{}, error) {
			return nil, store.InsertCustomer(ctx, customer)
		}, 3); err != nil {
			return fmt.Errorf("写入演示客户失败: %w", err)
		}
	}

	// 为第一个客户添加一条演示互动记录
	interaction := &models.Interaction{
		ID:         uuid.NewString(),
		CustomerID: customers[0].ID,
		Type:       models.InteractionTypeMeeting,
		Notes:      "Discussed new product features",
		CreatedAt:  now,
	}
	if _, err := ExecuteDbOperation(func() (interface{}, error) {
		return nil, store.InsertInteraction(ctx, interaction)
	}, 3); err != nil {
		return fmt.Errorf("写入演示互动记录失败: %w", err)
	}

	utils.LogInfo(map[string]interface{}{
		"customers":    len(customers),
		"interactions": 1,
	}, "演示数据初始化完成")
	return nil
}
