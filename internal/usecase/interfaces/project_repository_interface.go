package interfaces

import (
	"context"
	"scmicro_tracker/internal/domain/entities"
)

// IProjectRepository abstracts persistence for Project.
//
// FindByQuoteNumberOrNameAndCustomer matches on quoteNumber when it is not
// empty, otherwise on (name, customerID).

type IProjectRepository interface {
	FindByQuoteNumberOrNameAndCustomer(ctx context.Context, quoteNumber, name, customerID string) ([]entities.Project, error)
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	Update(ctx context.Context, p entities.Project) (entities.Project, error)
}
