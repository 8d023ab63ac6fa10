package customerctl

import (
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/edvin/customer-api/internal/model"
)

// LoadSeedConfig reads a seed definition file.
func LoadSeedConfig(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg SeedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "http://localhost:8080"
	}
	return &cfg, nil
}

// Seed creates the customers in cfg, or replaces them when a customer with
// the same name and email already exists. Progress is written to out.
func Seed(client *Client, cfg *SeedConfig, out io.Writer) error {
	for i, def := range cfg.Customers {
		req, err := def.request()
		if err != nil {
			return fmt.Errorf("customer %d (%s): %w", i, def.Name, err)
		}

		existing, err := client.FindCustomer(def.Name, def.Email)
		if err != nil {
			return fmt.Errorf("look up customer %q: %w", def.Name, err)
		}

		var view *model.CustomerView
		action := "created"
		if existing != nil {
			action = "updated"
			view, err = client.UpdateCustomer(existing.ID, req)
		} else {
			view, err = client.CreateCustomer(req)
		}
		if err != nil {
			return fmt.Errorf("seed customer %q: %w", def.Name, err)
		}

		fmt.Fprintf(out, "Customer %q %s: %s (%s)\n", view.Name, action, view.ID, view.Tier)
	}
	return nil
}

func (d CustomerDef) request() (*model.CustomerRequest, error) {
	req := &model.CustomerRequest{Name: d.Name, Email: d.Email}
	if d.AnnualSpend != "" {
		spend, err := decimal.NewFromString(d.AnnualSpend)
		if err != nil {
			return nil, fmt.Errorf("annual_spend: %w", err)
		}
		req.AnnualSpend = &spend
	}
	if d.LastPurchaseDate != "" {
		date, err := civil.ParseDate(d.LastPurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("last_purchase_date: %w", err)
		}
		req.LastPurchaseDate = &date
	}
	return req, nil
}
