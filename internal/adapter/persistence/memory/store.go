// Package memory keeps customers, work orders and projects in process memory.
// It backs STORAGE_BACKEND=memory and end-to-end tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"scmicro_tracker/internal/domain/entities"
	"scmicro_tracker/internal/usecase/interfaces"

	"github.com/pkg/errors"
)

// Store holds all three record kinds behind one lock, so the uniqueness checks
// and the write happen atomically.
type Store struct {
	mu         sync.RWMutex
	customers  map[string]entities.Customer
	workOrders map[string]entities.WorkOrder
	projects   map[string]entities.Project
}

func NewStore() *Store {
	return &Store{
		customers:  make(map[string]entities.Customer),
		workOrders: make(map[string]entities.WorkOrder),
		projects:   make(map[string]entities.Project),
	}
}

func (s *Store) Customers() *CustomerRepository   { return &CustomerRepository{s: s} }
func (s *Store) WorkOrders() *WorkOrderRepository { return &WorkOrderRepository{s: s} }
func (s *Store) Projects() *ProjectRepository     { return &ProjectRepository{s: s} }

// Counts returns the number of stored customers, work orders and projects.
func (s *Store) Counts() (customers, workOrders, projects int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), len(s.workOrders), len(s.projects)
}

type CustomerRepository struct{ s *Store }

var _ interfaces.ICustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) FindByCompany(_ context.Context, company string) ([]entities.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entities.Customer
	for _, c := range r.s.customers {
		if c.SameCompany(company) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CustomerRepository) FindByCompanyContact(_ context.Context, company, contact string) (entities.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.SameIdentity(company, contact) {
			return c, nil
		}
	}
	return entities.Customer{}, nil
}

func (r *CustomerRepository) Create(_ context.Context, c entities.Customer) (entities.Customer, error) {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Company) == "" {
		return entities.Customer{}, errors.Wrap(interfaces.ErrRejected, "customer id and company are required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if existing.ID == c.ID || existing.SameIdentity(c.Company, c.Contact) {
			return entities.Customer{}, errors.Wrapf(interfaces.ErrConflict, "customer %q/%q already exists", c.Company, c.Contact)
		}
	}
	r.s.customers[c.ID] = c
	return c, nil
}

type WorkOrderRepository struct{ s *Store }

var _ interfaces.IWorkOrderRepository = (*WorkOrderRepository)(nil)

func (r *WorkOrderRepository) FindByQuoteNumber(_ context.Context, quoteNumber string) ([]entities.WorkOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entities.WorkOrder
	for _, w := range r.s.workOrders {
		if quoteNumber != "" && w.QuoteNumber == quoteNumber {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *WorkOrderRepository) Create(_ context.Context, w entities.WorkOrder) (entities.WorkOrder, error) {
	if strings.TrimSpace(w.ID) == "" || strings.TrimSpace(w.CustomerID) == "" {
		return entities.WorkOrder{}, errors.Wrap(interfaces.ErrRejected, "work order id and customer are required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workOrders[w.ID]; ok {
		return entities.WorkOrder{}, errors.Wrapf(interfaces.ErrConflict, "work order %s already exists", w.ID)
	}
	if w.QuoteNumber != "" {
		for _, existing := range r.s.workOrders {
			if existing.QuoteNumber == w.QuoteNumber {
				return entities.WorkOrder{}, errors.Wrapf(interfaces.ErrConflict, "quote number %s already used", w.QuoteNumber)
			}
		}
	}
	r.s.workOrders[w.ID] = w
	return w, nil
}

func (r *WorkOrderRepository) Update(_ context.Context, w entities.WorkOrder) (entities.WorkOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workOrders[w.ID]; !ok {
		return entities.WorkOrder{}, nil
	}
	r.s.workOrders[w.ID] = w
	return w, nil
}

type ProjectRepository struct{ s *Store }

var _ interfaces.IProjectRepository = (*ProjectRepository)(nil)

func (r *ProjectRepository) FindByQuoteNumberOrNameAndCustomer(_ context.Context, quoteNumber, name, customerID string) ([]entities.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entities.Project
	for _, p := range r.s.projects {
		if projectMatches(p, quoteNumber, name, customerID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProjectRepository) Create(_ context.Context, p entities.Project) (entities.Project, error) {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.CustomerID) == "" || strings.TrimSpace(p.Name) == "" {
		return entities.Project{}, errors.Wrap(interfaces.ErrRejected, "project id, customer and name are required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; ok {
		return entities.Project{}, errors.Wrapf(interfaces.ErrConflict, "project %s already exists", p.ID)
	}
	for _, existing := range r.s.projects {
		if projectMatches(existing, p.QuoteNumber, p.Name, p.CustomerID) {
			return entities.Project{}, errors.Wrapf(interfaces.ErrConflict, "project %q already exists", p.Name)
		}
	}
	r.s.projects[p.ID] = p
	return p, nil
}

func (r *ProjectRepository) Update(_ context.Context, p entities.Project) (entities.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; !ok {
		return entities.Project{}, nil
	}
	r.s.projects[p.ID] = p
	return p, nil
}

func projectMatches(p entities.Project, quoteNumber, name, customerID string) bool {
	if quoteNumber != "" {
		return p.QuoteNumber == quoteNumber
	}
	return p.CustomerID == customerID && p.Name == name
}
