// Package persistence picks the storage backend the service runs on.
package persistence

import (
	"context"
	"fmt"

	"scmicro_tracker/internal/adapter/persistence/memory"
	"scmicro_tracker/internal/adapter/persistence/repository"
	"scmicro_tracker/internal/infrastructure/config"
	"scmicro_tracker/internal/infrastructure/database"
	"scmicro_tracker/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type Repositories struct {
	Customers  interfaces.ICustomerRepository
	WorkOrders interfaces.IWorkOrderRepository
	Projects   interfaces.IProjectRepository
}

// Open builds the repositories for cfg.StorageBackend.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Repositories, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.StorageBackend {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on exit")
		store := memory.NewStore()
		return Repositories{
			Customers:  store.Customers(),
			WorkOrders: store.WorkOrders(),
			Projects:   store.Projects(),
		}, nil
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return Repositories{}, err
		}
		logger.Info("using dynamodb storage",
			zap.String("region", cfg.DynamoDB.Region),
			zap.String("endpoint", cfg.DynamoDB.Endpoint),
		)
		return Repositories{
			Customers:  repository.NewCustomerDynamoRepository(ddb, cfg.DynamoDB.CustomersTable),
			WorkOrders: repository.NewWorkOrderDynamoRepository(ddb, cfg.DynamoDB.WorkOrdersTable),
			Projects:   repository.NewProjectDynamoRepository(ddb, cfg.DynamoDB.ProjectsTable),
		}, nil
	default:
		return Repositories{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
