package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/onixlab/onix-crm/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// 集合名
	CustomersCollection    = "customers"
	InteractionsCollection = "interactions"
)

// InitMongoDB 初始化MongoDB连接，返回显式的客户端与数据库句柄
func InitMongoDB(uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	// 设置连接超时
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 创建客户端
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("连接MongoDB失败: %w", err)
	}

	// 检查连接
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("ping MongoDB失败: %w", err)
	}

	// 选择数据库
	db := client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("已连接到MongoDB")

	return client, db, nil
}

// CloseMongoDB 关闭MongoDB连接
func CloseMongoDB(client *mongo.Client) {
	if client != nil {
		if err := client.Disconnect(context.Background()); err != nil {
			utils.Logger.Error().Err(err).Msg("断开MongoDB连接失败")
			return
		}
		utils.Logger.Info().Msg("已断开MongoDB连接")
	}
}

// InitializeCollections 初始化数据库集合
func InitializeCollections(ctx context.Context, db *mongo.Database) error {
	collections := []string{
		CustomersCollection,
		InteractionsCollection,
	}

	for _, collName := range collections {
		// 检查集合是否存在
		existing, err := db.ListCollectionNames(ctx, bson.M{"name": collName})
		if err != nil {
			return fmt.Errorf("检查集合失败: %w", err)
		}

		// 如果不存在则创建
		if len(existing) == 0 {
			if err := db.CreateCollection(ctx, collName); err != nil {
				return fmt.Errorf("创建集合失败: %w", err)
			}
			utils.Logger.Info().Str("collection", collName).Msg("创建集合成功")
		} else {
			utils.Logger.Info().Str("collection", collName).Msg("集合已存在")
		}
	}

	return nil
}

// EnsureIndexes 创建存储层约束所需的索引。
// 邮箱唯一性由唯一索引保证，并发写入时最多只有一个成功。
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	customerIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	}
	if _, err := db.Collection(CustomersCollection).Indexes().CreateMany(ctx, customerIndexes); err != nil {
		return fmt.Errorf("创建客户索引失败: %w", err)
	}

	interactionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("customer_created_at"),
		},
	}
	if _, err := db.Collection(InteractionsCollection).Indexes().CreateMany(ctx, interactionIndexes); err != nil {
		return fmt.Errorf("创建互动记录索引失败: %w", err)
	}

	utils.Logger.Info().Msg("数据库索引初始化完成")
	return nil
}

// ExecuteDbOperation 执行数据库操作，提供错误处理和重试机制
func ExecuteDbOperation(operation func() (interface{}, error), retries int) (interface{}, error) {
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		result, err := operation()
		if err == nil {
			return result, nil
		}

		lastErr = err
		utils.Logger.Error().Err(err).Msgf("数据库操作失败，重试 (%d/%d)", i+1, retries)

		// 如果是不可重试的错误，立即返回
		if !isRetryableError(err) {
			break
		}

		// 延迟后重试
		time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
	}

	return nil, lastErr
}

// isRetryableError 判断错误是否可重试
func isRetryableError(err error) bool {
	// MongoDB可重试错误代码
	retryableCodes := map[int]bool{
		6:     true, // HostUnreachable
		7:     true, // HostNotFound
		89:    true, // NetworkTimeout
		91:    true, // ShutdownInProgress
		189:   true, // PrimarySteppedDown
		10107: true, // NotMaster
		13436: true, // NotMasterNoSlaveOk
		11600: true, // InterruptedAtShutdown
		11602: true, // InterruptedDueToReplStateChange
		10058: true, // ConnectionReset
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		return retryableCodes[int(cmdErr.Code)]
	}

	// 检查常见网络错误
	return isNetworkError(err)
}

// isNetworkError 检查是否是网络错误
func isNetworkError(err error) bool {
	errMsg := strings.ToLower(err.Error())
	networkErrors := []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"no reachable servers",
		"timeout",
		"context deadline exceeded",
		"server selection error",
	}

	for _, ne := range networkErrors {
		if strings.Contains(errMsg, ne) {
			return true
		}
	}

	return false
}

// GetDatabaseStatus 获取数据库状态
func GetDatabaseStatus(ctx context.Context, db *mongo.Database) (map[string]interface{}, error) {
	collections := []string{
		CustomersCollection,
		InteractionsCollection,
	}

	result := make(map[string]interface{})

	for _, collName := range collections {
		count, err := db.Collection(collName).CountDocuments(ctx, bson.M{})
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", collName).Msg("获取集合计数失败")
			result[collName] = map[string]interface{}{
				"count": 0,
				"error": err.Error(),
			}
			continue
		}
		result[collName] = map[string]interface{}{
			"count": count,
		}
	}

	return result, nil
}
