package customerctl

type SeedConfig struct {
	APIURL    string        `yaml:"api_url"`
	Customers []CustomerDef `yaml:"customers"`
}

type CustomerDef struct {
	Name             string `yaml:"name"`
	Email            string `yaml:"email"`
	AnnualSpend      string `yaml:"annual_spend"`
	LastPurchaseDate string `yaml:"last_purchase_date"`
}
