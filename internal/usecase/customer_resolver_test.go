package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"scmicro_tracker/internal/domain/entities"
	"scmicro_tracker/internal/usecase/interfaces"
	mock_interfaces "scmicro_tracker/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestCustomerResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("blank company", func(t *testing.T) {
		r := NewCustomerResolver(nil, nil)
		_, _, err := r.Resolve(ctx, "   ", "Jane")
		if !errors.Is(err, ErrCustomerNameRequired) {
			t.Fatalf("expected ErrCustomerNameRequired, got %v", err)
		}
	})

	t.Run("existing pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		repo.EXPECT().FindByCompanyContact(gomock.Any(), "Acme", "Jane").
			Return(entities.Customer{ID: "c-1", Company: "ACME", Contact: "jane"}, nil)

		c, created, err := r.Resolve(ctx, " Acme ", "Jane")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if created || c.ID != "c-1" {
			t.Fatalf("expected existing c-1, got %+v created=%v", c, created)
		}
	})

	t.Run("creates missing pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		repo.EXPECT().FindByCompanyContact(gomock.Any(), "Acme", "Jane").Return(entities.Customer{}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Customer{})).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) {
				if c.ID == "" || c.Company != "Acme" || c.Contact != "Jane" {
					t.Fatalf("unexpected customer: %+v", c)
				}
				if c.Tier != entities.CustomerTierBronze || c.Notes != "Created by spreadsheet import" {
					t.Fatalf("unexpected defaults: %+v", c)
				}
				if c.Email != "" || c.Phone != "" || c.Address != "" {
					t.Fatalf("expected empty optional fields: %+v", c)
				}
				if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				return c, nil
			},
		)

		c, created, err := r.Resolve(ctx, "Acme", "Jane")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !created || c.ID == "" {
			t.Fatalf("expected created customer, got %+v created=%v", c, created)
		}
	})

	t.Run("batch cache is case insensitive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		repo.EXPECT().FindByCompanyContact(gomock.Any(), "Acme", "Jane").Return(entities.Customer{}, nil).Times(1)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) { return c, nil },
		).Times(1)

		first, created, err := r.Resolve(ctx, "Acme", "Jane")
		if err != nil || !created {
			t.Fatalf("expected creation, got created=%v err=%v", created, err)
		}
		second, created, err := r.Resolve(ctx, "ACME", "jane ")
		if err != nil || created {
			t.Fatalf("expected cached customer, got created=%v err=%v", created, err)
		}
		if first.ID != second.ID {
			t.Fatalf("expected same customer, got %s and %s", first.ID, second.ID)
		}
	})

	t.Run("company only prefers customer without contact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		repo.EXPECT().FindByCompany(gomock.Any(), "Acme").Return([]entities.Customer{
			{ID: "c-1", Company: "Acme", Contact: "Jane"},
			{ID: "c-2", Company: "acme"},
		}, nil)

		c, created, err := r.Resolve(ctx, "Acme", "")
		if err != nil || created || c.ID != "c-2" {
			t.Fatalf("expected c-2, got %+v created=%v err=%v", c, created, err)
		}
	})

	t.Run("company only single candidate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		repo.EXPECT().FindByCompany(gomock.Any(), "Acme").Return([]entities.Customer{
			{ID: "c-1", Company: "Acme", Contact: "Jane"},
		}, nil)

		c, created, err := r.Resolve(ctx, "Acme", "")
		if err != nil || created || c.ID != "c-1" {
			t.Fatalf("expected c-1, got %+v created=%v err=%v", c, created, err)
		}
	})

	t.Run("company only ambiguous", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		repo.EXPECT().FindByCompany(gomock.Any(), "Acme").Return([]entities.Customer{
			{ID: "c-1", Company: "Acme", Contact: "Jane"},
			{ID: "c-2", Company: "Acme", Contact: "Bob"},
		}, nil)

		_, _, err := r.Resolve(ctx, "Acme", "")
		if !errors.Is(err, ErrAmbiguousCustomer) {
			t.Fatalf("expected ErrAmbiguousCustomer, got %v", err)
		}
	})

	t.Run("company only sees customers created earlier in batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		repo.EXPECT().FindByCompanyContact(gomock.Any(), "Acme", "Jane").Return(entities.Customer{}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) { return c, nil },
		)
		// index has not caught up yet
		repo.EXPECT().FindByCompany(gomock.Any(), "acme").Return(nil, nil)

		jane, _, err := r.Resolve(ctx, "Acme", "Jane")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		c, created, err := r.Resolve(ctx, "acme", "")
		if err != nil || created || c.ID != jane.ID {
			t.Fatalf("expected %s, got %+v created=%v err=%v", jane.ID, c, created, err)
		}
	})

	t.Run("company only turns ambiguous once a second contact appears", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		create := func(_ context.Context, c entities.Customer) (entities.Customer, error) { return c, nil }
		repo.EXPECT().FindByCompanyContact(gomock.Any(), "Acme", "Jane").Return(entities.Customer{}, nil)
		repo.EXPECT().FindByCompanyContact(gomock.Any(), "Acme", "Bob").Return(entities.Customer{}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(create).Times(2)
		// index lags behind both creations
		repo.EXPECT().FindByCompany(gomock.Any(), "Acme").Return(nil, nil).Times(2)

		jane, _, err := r.Resolve(ctx, "Acme", "Jane")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		c, _, err := r.Resolve(ctx, "Acme", "")
		if err != nil || c.ID != jane.ID {
			t.Fatalf("expected %s, got %+v err=%v", jane.ID, c, err)
		}
		if _, _, err := r.Resolve(ctx, "Acme", "Bob"); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		_, _, err = r.Resolve(ctx, "Acme", "")
		if !errors.Is(err, ErrAmbiguousCustomer) {
			t.Fatalf("expected ErrAmbiguousCustomer, got %v", err)
		}
	})

	t.Run("company only reuses a cached customer without contact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		repo.EXPECT().FindByCompany(gomock.Any(), "Acme").Return(nil, nil).Times(1)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) { return c, nil },
		).Times(1)

		first, created, err := r.Resolve(ctx, "Acme", "")
		if err != nil || !created {
			t.Fatalf("expected creation, got created=%v err=%v", created, err)
		}
		second, created, err := r.Resolve(ctx, "ACME", "")
		if err != nil || created || second.ID != first.ID {
			t.Fatalf("expected cached %s, got %+v created=%v err=%v", first.ID, second, created, err)
		}
	})

	t.Run("create conflict falls back to stored customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		gomock.InOrder(
			repo.EXPECT().FindByCompanyContact(gomock.Any(), "Acme", "Jane").Return(entities.Customer{}, nil),
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Customer{}, fmt.Errorf("put: %w", interfaces.ErrConflict)),
			repo.EXPECT().FindByCompanyContact(gomock.Any(), "Acme", "Jane").Return(entities.Customer{ID: "c-9", Company: "Acme", Contact: "Jane"}, nil),
		)

		c, created, err := r.Resolve(ctx, "Acme", "Jane")
		if err != nil || created || c.ID != "c-9" {
			t.Fatalf("expected c-9, got %+v created=%v err=%v", c, created, err)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(repo, nil)

		repo.EXPECT().FindByCompany(gomock.Any(), "Acme").Return(nil, errors.New("db"))

		_, _, err := r.Resolve(ctx, "Acme", "")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}
