package repository

import (
	"context"
	"errors"
	"time"

	"github.com/onixlab/onix-crm/models"
	"github.com/onixlab/onix-crm/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 存储层哨兵错误，由service层转换为API错误
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmailExists      = errors.New("customer with this email already exists")
)

// Store 客户与互动记录的持久化契约
type Store interface {
	InsertCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, updates map[string]interface{}) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context, page, limit int) ([]models.Customer, error)
	CountCustomers(ctx context.Context) (int64, error)
	InsertInteraction(ctx context.Context, interaction *models.Interaction) error
	ListInteractionsByCustomer(ctx context.Context, customerID string) ([]models.Interaction, error)
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// CustomerStore 基于MongoDB的Store实现
type CustomerStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewCustomerStore 创建CustomerStore
func NewCustomerStore(client *mongo.Client, db *mongo.Database) *CustomerStore {
	return &CustomerStore{client: client, db: db}
}

func (s *CustomerStore) customers() *mongo.Collection {
	return s.db.Collection(CustomersCollection)
}

func (s *CustomerStore) interactions() *mongo.Collection {
	return s.db.Collection(InteractionsCollection)
}

// InsertCustomer 插入客户，邮箱唯一性由唯一索引在写入时保证
func (s *CustomerStore) InsertCustomer(ctx context.Context, customer *models.Customer) error {
	_, err := s.customers().InsertOne(ctx, customer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailExists
		}
		return err
	}

	utils.LogDbOperation("insert", CustomersCollection, customer.ID, nil)
	return nil
}

// GetCustomer 根据ID查询客户
func (s *CustomerStore) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := s.customers().FindOne(ctx, bson.M{"_id": id}).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomer 合并更新客户字段并返回更新后的文档。
// 邮箱与其他客户冲突时由唯一索引拦截。
func (s *CustomerStore) UpdateCustomer(ctx context.Context, id string, updates map[string]interface{}) (*models.Customer, error) {
	setFields := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range updates {
		setFields[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var customer models.Customer
	err := s.customers().FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": setFields},
		opts,
	).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCustomerNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	utils.LogDbOperation("update", CustomersCollection, id, setFields)
	return &customer, nil
}

// DeleteCustomer 删除客户并在同一事务内级联删除其全部互动记录
func (s *CustomerStore) DeleteCustomer(ctx context.Context, id string) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := s.customers().DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if result.DeletedCount == 0 {
			return nil, ErrCustomerNotFound
		}

		if _, err := s.interactions().DeleteMany(sc, bson.M{"customerId": id}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	utils.LogDbOperation("delete", CustomersCollection, id, nil)
	return nil
}

// ListCustomers 按创建顺序稳定分页，越界页返回空结果
func (s *CustomerStore) ListCustomers(ctx context.Context, page, limit int) ([]models.Customer, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	skip := (page - 1) * limit

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := s.customers().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	customers := []models.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CountCustomers 统计客户数量
func (s *CustomerStore) CountCustomers(ctx context.Context) (int64, error) {
	return s.customers().CountDocuments(ctx, bson.M{})
}

// InsertInteraction 插入互动记录。
// 客户存在性检查与写入在同一事务内，避免与级联删除竞争产生孤儿记录。
func (s *CustomerStore) InsertInteraction(ctx context.Context, interaction *models.Interaction) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		err := s.customers().FindOne(sc, bson.M{"_id": interaction.CustomerID}).Err()
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}

		if _, err := s.interactions().InsertOne(sc, interaction); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	utils.LogDbOperation("insert", InteractionsCollection, interaction.ID, nil)
	return nil
}

// ListInteractionsByCustomer 查询客户的互动记录，按创建时间倒序
func (s *CustomerStore) ListInteractionsByCustomer(ctx context.Context, customerID string) ([]models.Interaction, error) {
	// 先验证客户是否存在，已删除的客户返回NotFound而不是空列表
	err := s.customers().FindOne(ctx, bson.M{"_id": customerID}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := s.interactions().Find(ctx, bson.M{"customerId": customerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	interactions := []models.Interaction{}
	if err := cursor.All(ctx, &interactions); err != nil {
		return nil, err
	}
	return interactions, nil
}

// GetDashboardStats 获取数据看板统计信息
func (s *CustomerStore) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	totalCustomers, err := s.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}

	totalInteractions, err := s.interactions().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	// 按状态聚合客户数量
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := s.customers().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grouped []struct {
		Status models.CustomerStatus `bson:"_id"`
		Count  int64                 `bson:"count"`
	}
	if err := cursor.All(ctx, &grouped); err != nil {
		return nil, err
	}

	statusCounts := map[models.CustomerStatus]int64{
		models.CustomerStatusLead:     0,
		models.CustomerStatusProspect: 0,
		models.CustomerStatusCustomer: 0,
	}
	for _, g := range grouped {
		statusCounts[g.Status] = g.Count
	}

	return &models.DashboardStats{
		TotalCustomers:    totalCustomers,
		TotalInteractions: totalInteractions,
		StatusCounts:      statusCounts,
	}, nil
}
