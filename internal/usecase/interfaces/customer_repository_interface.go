package interfaces

import (
	"context"
	"scmicro_tracker/internal/domain/entities"
)

// ICustomerRepository abstracts persistence for Customer.
//
// Lookups are case-insensitive on company and contact. A miss returns the
// zero Customer (empty ID) and no error.

type ICustomerRepository interface {
	FindByCompany(ctx context.Context, company string) ([]entities.Customer, error)
	FindByCompanyContact(ctx context.Context, company, contact string) (entities.Customer, error)
	Create(ctx context.Context, c entities.Customer) (entities.Customer, error)
}
