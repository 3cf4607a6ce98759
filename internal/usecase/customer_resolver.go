package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"scmicro_tracker/internal/domain/entities"
	"scmicro_tracker/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const importedCustomerNote = "Created by spreadsheet import"

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrAmbiguousCustomer    = errors.New("company matches several customers; add a contact to disambiguate")
)

// CustomerResolver turns the (company, contact) pair found on a row into a
// stored Customer, creating one when nothing matches.
//
// A resolver lives for one batch. It remembers every customer it has returned
// so repeated rows resolve to the same record even when the store's secondary
// index has not caught up with customers created earlier in the batch.
// Company-only rows are always matched against the full candidate set.
type CustomerResolver struct {
	repo   interfaces.ICustomerRepository
	logger *zap.Logger
	now    func() time.Time

	byIdentity map[string]entities.Customer
	byCompany  map[string][]entities.Customer
}

func NewCustomerResolver(repo interfaces.ICustomerRepository, logger *zap.Logger) *CustomerResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerResolver{
		repo:       repo,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		byIdentity: make(map[string]entities.Customer),
		byCompany:  make(map[string][]entities.Customer),
	}
}

// Resolve returns the customer for (company, contact) and whether it was
// created by this call.
//
// With a contact, only the exact pair matches. Without one, a customer stored
// without contact wins, then the single customer of that company; several
// candidates are ambiguous.
func (r *CustomerResolver) Resolve(ctx context.Context, company, contact string) (entities.Customer, bool, error) {
	company = strings.TrimSpace(company)
	contact = strings.TrimSpace(contact)
	if company == "" {
		return entities.Customer{}, false, ErrCustomerNameRequired
	}

	// Only exact identities are cached, so a company-only row hits this for a
	// customer stored without contact and nothing else.
	if c, ok := r.byIdentity[identityKey(company, contact)]; ok {
		return c, false, nil
	}

	var (
		found entities.Customer
		err   error
	)
	if contact != "" {
		found, err = r.repo.FindByCompanyContact(ctx, company, contact)
	} else {
		found, err = r.matchCompany(ctx, company)
	}
	if err != nil {
		return entities.Customer{}, false, err
	}
	if found.ID != "" {
		r.remember(found)
		return found, false, nil
	}

	c, created, err := r.create(ctx, company, contact)
	if err != nil {
		return entities.Customer{}, false, err
	}
	r.remember(c)
	return c, created, nil
}

func (r *CustomerResolver) matchCompany(ctx context.Context, company string) (entities.Customer, error) {
	stored, err := r.repo.FindByCompany(ctx, company)
	if err != nil {
		return entities.Customer{}, err
	}
	candidates := mergeCustomers(stored, r.byCompany[entities.CompanyKey(company)])

	for _, c := range candidates {
		if c.SameIdentity(company, "") {
			return c, nil
		}
	}
	switch len(candidates) {
	case 0:
		return entities.Customer{}, nil
	case 1:
		return candidates[0], nil
	default:
		r.logger.Debug("ambiguous company",
			zap.String("company", company),
			zap.Int("candidates", len(candidates)),
		)
		return entities.Customer{}, ErrAmbiguousCustomer
	}
}

func (r *CustomerResolver) create(ctx context.Context, company, contact string) (entities.Customer, bool, error) {
	now := r.now()
	c := entities.Customer{
		ID:        uuid.NewString(),
		Company:   company,
		Contact:   contact,
		Tier:      entities.CustomerTierBronze,
		Notes:     importedCustomerNote,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := r.repo.Create(ctx, c)
	if err == nil {
		r.logger.Info("customer created",
			zap.String("customer_id", created.ID),
			zap.String("company", company),
			zap.String("contact", contact),
		)
		return created, true, nil
	}
	if !errors.Is(err, interfaces.ErrConflict) {
		return entities.Customer{}, false, err
	}

	// Another batch stored the same identity after our lookup.
	existing, ferr := r.repo.FindByCompanyContact(ctx, company, contact)
	if ferr != nil {
		return entities.Customer{}, false, ferr
	}
	if existing.ID == "" {
		return entities.Customer{}, false, err
	}
	return existing, false, nil
}

// remember indexes c under its own identity, never under the lookup that
// found it, so a company-only match is not replayed for later rows.
func (r *CustomerResolver) remember(c entities.Customer) {
	r.byIdentity[identityKey(c.Company, c.Contact)] = c
	company := entities.CompanyKey(c.Company)
	r.byCompany[company] = mergeCustomers(r.byCompany[company], []entities.Customer{c})
}

func identityKey(company, contact string) string {
	return entities.CompanyKey(company) + "\x00" + entities.ContactKey(contact)
}

func mergeCustomers(a, b []entities.Customer) []entities.Customer {
	out := make([]entities.Customer, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, list := range [][]entities.Customer{a, b} {
		for _, c := range list {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	return out
}
