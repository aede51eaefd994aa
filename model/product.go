package model

// Product is one inventory row. The category and expiry_date columns
// were added after the first release, so they may be NULL in older
// stores; queries coalesce them to empty strings.
type Product struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Unit         string  `db:"unit" json:"unit"`
	Description  string  `db:"description" json:"description"`
	UnitPrice    float64 `db:"unit_price" json:"unitPrice"`
	SellingPrice float64 `db:"selling_price" json:"sellingPrice"`
	IncomePrice  float64 `db:"income_price" json:"-"`
	Quantity     int     `db:"quantity" json:"quantity"`
	Category     string  `db:"category" json:"category"`
	ExpiryDate   string  `db:"expiry_date" json:"expiryDate"`
}

// ProductInput carries the raw form values for a new product. Numeric
// and date fields stay strings until validated.
type ProductInput struct {
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	UnitPrice    string `json:"unitPrice"`
	SellingPrice string `json:"sellingPrice"`
	Quantity     string `json:"quantity"`
	ExpiryDate   string `json:"expiryDate"`
}
