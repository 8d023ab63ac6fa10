package core

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/edvin/customer-api/internal/metrics"
	"github.com/edvin/customer-api/internal/model"
)

// CustomerStore is the record store the customer service runs on.
// Find methods return a nil customer and a nil error when nothing matches.
type CustomerStore interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	FindByName(ctx context.Context, name string) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	FindByNameAndEmail(ctx context.Context, name, email string) (*model.Customer, error)
	Save(ctx context.Context, c *model.Customer) error
	DeleteByID(ctx context.Context, id string) error
}

type CustomerService struct {
	store CustomerStore
	loc   *time.Location
	now   func() time.Time
}

// NewCustomerService creates a customer service. loc is the timezone used to
// decide what "today" is when computing tiers; nil means time.Local.
func NewCustomerService(store CustomerStore, loc *time.Location) *CustomerService {
	if loc == nil {
		loc = time.Local
	}
	return &CustomerService{store: store, loc: loc, now: time.Now}
}

func (s *CustomerService) Create(ctx context.Context, req *model.CustomerRequest) (*model.CustomerView, error) {
	logger := zerolog.Ctx(ctx)
	if req != nil {
		logger.Debug().Str("email", req.Email).Msg("validating customer request")
	}
	if err := ValidateCustomerRequest(req); err != nil {
		return nil, err
	}

	c := &model.Customer{
		Name:             req.Name,
		Email:            req.Email,
		AnnualSpend:      req.AnnualSpend,
		LastPurchaseDate: req.LastPurchaseDate,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.Info().Str("customer_id", c.ID).Msg("saved customer")

	return s.view(c), nil
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*model.CustomerView, error) {
	if id == "" {
		return nil, invalidArgument("Customer ID must not be empty")
	}
	zerolog.Ctx(ctx).Debug().Str("customer_id", id).Msg("fetching customer by id")

	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &LookupError{Kind: ErrNotFound, Key: "id " + id}
	}
	return s.view(c), nil
}

func (s *CustomerService) GetByName(ctx context.Context, name string) (*model.CustomerView, error) {
	if err := validate.Var(name, "notblank"); err != nil {
		return nil, invalidArgument("Name must not be blank")
	}
	zerolog.Ctx(ctx).Debug().Str("name", name).Msg("fetching customer by name")

	c, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &LookupError{Kind: ErrNotFound, Key: "name " + name}
	}
	return s.view(c), nil
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*model.CustomerView, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("email", email).Msg("fetching customer by email")

	c, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &LookupError{Kind: ErrNotFound, Key: "email " + email}
	}
	return s.view(c), nil
}

// GetByNameAndEmail looks a customer up by both fields. Neither field is
// validated, and a miss is reported as ErrNoSuchElement.
func (s *CustomerService) GetByNameAndEmail(ctx context.Context, name, email string) (*model.CustomerView, error) {
	zerolog.Ctx(ctx).Debug().Str("name", name).Str("email", email).Msg("fetching customer by name and email")

	c, err := s.store.FindByNameAndEmail(ctx, name, email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &LookupError{Kind: ErrNoSuchElement, Key: fmt.Sprintf("name %s, email %s", name, email)}
	}
	return s.view(c), nil
}

// Update replaces every editable field of the customer at id.
func (s *CustomerService) Update(ctx context.Context, id string, req *model.CustomerRequest) (*model.CustomerView, error) {
	if id == "" {
		return nil, invalidArgument("Customer ID must not be empty")
	}
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("customer_id", id).Msg("updating customer")

	if err := ValidateCustomerRequest(req); err != nil {
		return nil, err
	}

	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &LookupError{Kind: ErrNotFound, Key: "id " + id}
	}

	c.Name = req.Name
	c.Email = req.Email
	c.AnnualSpend = req.AnnualSpend
	c.LastPurchaseDate = req.LastPurchaseDate
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	logger.Info().Str("customer_id", c.ID).Msg("customer updated")

	return s.view(c), nil
}

// Delete removes the customer at id. Deleting an unknown id is not an error.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return invalidArgument("Customer ID must not be empty")
	}
	zerolog.Ctx(ctx).Debug().Str("customer_id", id).Msg("deleting customer")

	return s.store.DeleteByID(ctx, id)
}

func (s *CustomerService) today() civil.Date {
	return civil.DateOf(s.now().In(s.loc))
}

func (s *CustomerService) view(c *model.Customer) *model.CustomerView {
	tier := ClassifyTier(c, s.today())
	metrics.TierAssigned.WithLabelValues(string(tier)).Inc()
	return &model.CustomerView{Customer: *c, Tier: tier}
}
