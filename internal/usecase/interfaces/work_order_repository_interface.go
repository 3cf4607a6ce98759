package interfaces

import (
	"context"
	"scmicro_tracker/internal/domain/entities"
)

// IWorkOrderRepository abstracts persistence for WorkOrder.
//
// Update returns the zero WorkOrder when the record no longer exists.

type IWorkOrderRepository interface {
	FindByQuoteNumber(ctx context.Context, quoteNumber string) ([]entities.WorkOrder, error)
	Create(ctx context.Context, w entities.WorkOrder) (entities.WorkOrder, error)
	Update(ctx context.Context, w entities.WorkOrder) (entities.WorkOrder, error)
}
