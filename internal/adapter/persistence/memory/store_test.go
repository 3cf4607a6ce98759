package memory

import (
	"context"
	"sync"
	"testing"

	"scmicro_tracker/internal/domain/entities"
	"scmicro_tracker/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Customers()

	_, err := repo.Create(ctx, entities.Customer{ID: "c-1", Company: "Acme", Contact: "Jane"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.Customer{ID: "c-2", Company: "Acme"})
	require.NoError(t, err)

	got, err := repo.FindByCompanyContact(ctx, "ACME", " jane")
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.ID)

	all, err := repo.FindByCompany(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repo.Create(ctx, entities.Customer{ID: "c-3", Company: "acme", Contact: "JANE"})
	assert.ErrorIs(t, err, interfaces.ErrConflict)

	_, err = repo.Create(ctx, entities.Customer{ID: "c-4", Company: "  "})
	assert.ErrorIs(t, err, interfaces.ErrRejected)
}

func TestCustomerRepository_ConcurrentCreateKeepsOneIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Customers()

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = repo.Create(ctx, entities.Customer{ID: id, Company: "Acme", Contact: "Jane"})
		}(id)
	}
	wg.Wait()

	customers, _, _ := store.Counts()
	assert.Equal(t, 1, customers)
}

func TestWorkOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().WorkOrders()

	_, err := repo.Create(ctx, entities.WorkOrder{ID: "w-1", CustomerID: "c-1", QuoteNumber: "Q-1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.WorkOrder{ID: "w-2", CustomerID: "c-1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.WorkOrder{ID: "w-3", CustomerID: "c-1"})
	require.NoError(t, err)

	found, err := repo.FindByQuoteNumber(ctx, "Q-1")
	require.NoError(t, err)
	require.Len(t, found, 1)

	none, err := repo.FindByQuoteNumber(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = repo.Create(ctx, entities.WorkOrder{ID: "w-4", CustomerID: "c-1", QuoteNumber: "Q-1"})
	assert.ErrorIs(t, err, interfaces.ErrConflict)

	updated, err := repo.Update(ctx, entities.WorkOrder{ID: "w-1", CustomerID: "c-1", QuoteNumber: "Q-1", InvoiceNumber: "INV"})
	require.NoError(t, err)
	assert.Equal(t, "INV", updated.InvoiceNumber)

	missing, err := repo.Update(ctx, entities.WorkOrder{ID: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Projects()

	_, err := repo.Create(ctx, entities.Project{ID: "p-1", CustomerID: "c-1", Name: "Line"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.Project{ID: "p-2", CustomerID: "c-2", Name: "Line"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.Project{ID: "p-3", CustomerID: "c-1", Name: "Line", QuoteNumber: "Q-1"})
	require.NoError(t, err)

	byName, err := repo.FindByQuoteNumberOrNameAndCustomer(ctx, "", "Line", "c-1")
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byQuote, err := repo.FindByQuoteNumberOrNameAndCustomer(ctx, "Q-1", "", "")
	require.NoError(t, err)
	require.Len(t, byQuote, 1)
	assert.Equal(t, "p-3", byQuote[0].ID)
}
