package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/edvin/customer-api/internal/model"
	"github.com/edvin/customer-api/internal/platform"
)

// DB defines the database operations used by the Postgres store.
// *pgxpool.Pool satisfies this interface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const customerColumns = `id, name, email, annual_spend, last_purchase_date, created_at, updated_at`

// Postgres stores customers in the customers table.
type Postgres struct {
	db DB
}

func NewPostgres(db DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, c *model.Customer) error {
	now := time.Now()
	c.ID = platform.NewID()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := s.db.Exec(ctx,
		`INSERT INTO customers (`+customerColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Email, spendParam(c.AnnualSpend), dateParam(c.LastPurchaseDate), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	c, err := s.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return c, nil
}

// FindByName returns the oldest customer with the given name. Names and
// emails are not unique, so the field lookups all order by creation time.
func (s *Postgres) FindByName(ctx context.Context, name string) (*model.Customer, error) {
	c, err := s.findOne(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE name = $1 ORDER BY created_at, id LIMIT 1`, name)
	if err != nil {
		return nil, fmt.Errorf("get customer by name: %w", err)
	}
	return c, nil
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	c, err := s.findOne(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email = $1 ORDER BY created_at, id LIMIT 1`, email)
	if err != nil {
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return c, nil
}

func (s *Postgres) FindByNameAndEmail(ctx context.Context, name, email string) (*model.Customer, error) {
	c, err := s.findOne(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE name = $1 AND email = $2 ORDER BY created_at, id LIMIT 1`,
		name, email)
	if err != nil {
		return nil, fmt.Errorf("get customer by name and email: %w", err)
	}
	return c, nil
}

func (s *Postgres) Save(ctx context.Context, c *model.Customer) error {
	c.UpdatedAt = time.Now()
	_, err := s.db.Exec(ctx,
		`UPDATE customers SET name = $1, email = $2, annual_spend = $3, last_purchase_date = $4, updated_at = $5
		 WHERE id = $6`,
		c.Name, c.Email, spendParam(c.AnnualSpend), dateParam(c.LastPurchaseDate), c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update customer %s: %w", c.ID, err)
	}
	return nil
}

func (s *Postgres) DeleteByID(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	return nil
}

// Ping checks that the database answers queries.
func (s *Postgres) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping customer db: %w", err)
	}
	return nil
}

func (s *Postgres) findOne(ctx context.Context, query string, args ...any) (*model.Customer, error) {
	var (
		c     model.Customer
		spend decimal.NullDecimal
		date  pgtype.Date
	)
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Email, &spend, &date, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if spend.Valid {
		v := spend.Decimal
		c.AnnualSpend = &v
	}
	if date.Valid {
		d := civil.DateOf(date.Time)
		c.LastPurchaseDate = &d
	}
	return &c, nil
}

func spendParam(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}

func dateParam(d *civil.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.In(time.UTC), Valid: true}
}
