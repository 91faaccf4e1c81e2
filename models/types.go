package models

import (
	"time"
)

// CustomerStatus 客户状态枚举
type CustomerStatus string

const (
	CustomerStatusLead     CustomerStatus = "lead"     // 线索
	CustomerStatusProspect CustomerStatus = "prospect" // 潜在客户
	CustomerStatusCustomer CustomerStatus = "customer" // 成交客户
)

// InteractionType 互动记录类型枚举
type InteractionType string

const (
	InteractionTypeCall    InteractionType = "call"    // 电话
	InteractionTypeEmail   InteractionType = "email"   // 邮件
	InteractionTypeMeeting InteractionType = "meeting" // 会议
)

// Customer 客户模型
type Customer struct {
	ID        string         `json:"id" bson:"_id"`
	FirstName string         `json:"first_name" bson:"firstName"`
	LastName  string         `json:"last_name" bson:"lastName"`
	Email     string         `json:"email" bson:"email"`
	Company   string         `json:"company" bson:"company"`
	Status    CustomerStatus `json:"status" bson:"status"`
	CreatedAt time.Time      `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updatedAt"`
}

// Interaction 客户互动记录，创建后不可修改
type Interaction struct {
	ID         string          `json:"id" bson:"_id"`
	CustomerID string          `json:"customer_id" bson:"customerId"`
	Type       InteractionType `json:"type" bson:"type"`
	Notes      string          `json:"notes" bson:"notes"`
	CreatedAt  time.Time       `json:"created_at" bson:"createdAt"`
}

// CustomerCreateRequest 创建客户请求
type CustomerCreateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Status    string `json:"status"`
}

// CustomerUpdateRequest 更新客户请求，仅更新请求中出现的字段
type CustomerUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Company   *string `json:"company"`
	Status    *string `json:"status"`
}

// InteractionCreateRequest 创建互动记录请求
type InteractionCreateRequest struct {
	CustomerID string `json:"customer_id"`
	Type       string `json:"type"`
	Notes      string `json:"notes"`
}

// DashboardStats 数据看板统计信息
type DashboardStats struct {
	TotalCustomers    int64                    `json:"total_customers"`
	TotalInteractions int64                    `json:"total_interactions"`
	StatusCounts      map[CustomerStatus]int64 `json:"status_counts"`
}
