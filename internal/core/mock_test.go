package core

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/edvin/customer-api/internal/model"
)

// mockStore implements CustomerStore for testing.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Create(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	args := m.Called(ctx, id)
	return customerArg(args, 0), args.Error(1)
}

func (m *mockStore) FindByName(ctx context.Context, name string) (*model.Customer, error) {
	args := m.Called(ctx, name)
	return customerArg(args, 0), args.Error(1)
}

func (m *mockStore) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	return customerArg(args, 0), args.Error(1)
}

func (m *mockStore) FindByNameAndEmail(ctx context.Context, name, email string) (*model.Customer, error) {
	args := m.Called(ctx, name, email)
	return customerArg(args, 0), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockStore) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func customerArg(args mock.Arguments, i int) *model.Customer {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*model.Customer)
}
