package inventory

import (
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"sarisari/database"
	"sarisari/model"
)

// DateLayout is the only accepted expiry date format.
const DateLayout = "2006-01-02"

// ExpiryState classifies a product's expiry date against today.
type ExpiryState int

const (
	NoExpiry ExpiryState = iota
	Expired
	ExpiringSoon
	OK
)

func (s ExpiryState) String() string {
	switch s {
	case Expired:
		return "expired"
	case ExpiringSoon:
		return "soon"
	case OK:
		return "ok"
	default:
		return "none"
	}
}

// Status returns the expiry classification and, when an expiry date is
// set, the number of days left (negative once expired). A date that
// does not parse counts as no expiry, same as an empty one.
func Status(p *model.Product, today time.Time, thresholdDays int) (ExpiryState, int) {
	raw := strings.TrimSpace(p.ExpiryDate)
	if raw == "" {
		return NoExpiry, 0
	}
	expiry, err := time.Parse(DateLayout, raw)
	if err != nil {
		return NoExpiry, 0
	}
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	daysLeft := int(expiry.Sub(midnight).Hours() / 24)
	switch {
	case daysLeft < 0:
		return Expired, daysLeft
	case daysLeft <= thresholdDays:
		return ExpiringSoon, daysLeft
	default:
		return OK, daysLeft
	}
}

// Summary counts expiry states across a product collection. Products
// without an expiry date count as OK, matching the maintenance banner.
type Summary struct {
	Expired int `json:"expired"`
	Soon    int `json:"soon"`
	OK      int `json:"ok"`
}

func Summarize(products []model.Product, today time.Time, thresholdDays int) Summary {
	var s Summary
	for i := range products {
		switch state, _ := Status(&products[i], today, thresholdDays); state {
		case Expired:
			s.Expired++
		case ExpiringSoon:
			s.Soon++
		default:
			s.OK++
		}
	}
	return s
}

// ProductView is a product plus its expiry classification, ready for
// the maintenance and selling tables.
type ProductView struct {
	model.Product
	ExpiryState string `json:"expiryState"`
	DaysLeft    *int   `json:"daysLeft,omitempty"`
}

// ListProducts lists products (optionally filtered by category
// substring) with expiry classification attached, plus the summary for
// the whole result.
func ListProducts(db *sqlx.DB, categoryFilter string, today time.Time, thresholdDays int) ([]ProductView, Summary, error) {
	products, err := database.ListProducts(db, categoryFilter)
	if err != nil {
		return nil, Summary{}, &model.StorageError{Err: err}
	}

	views := make([]ProductView, len(products))
	var summary Summary
	for i := range products {
		state, daysLeft := Status(&products[i], today, thresholdDays)
		views[i] = ProductView{Product: products[i], ExpiryState: state.String()}
		switch state {
		case Expired:
			summary.Expired++
		case ExpiringSoon:
			summary.Soon++
		default:
			summary.OK++
		}
		if state != NoExpiry {
			d := daysLeft
			views[i].DaysLeft = &d
		}
	}
	return views, summary, nil
}

// ListCategories returns the distinct trimmed categories for the
// filter suggestions.
func ListCategories(db *sqlx.DB) ([]string, error) {
	categories, err := database.ListCategories(db)
	if err != nil {
		return nil, &model.StorageError{Err: err}
	}
	return categories, nil
}

// AddProduct validates the form input and inserts a new product,
// returning its generated id. Description and selling price are
// required; quantity defaults to 0 and unit price to 0.0.
func AddProduct(db *sqlx.DB, in model.ProductInput) (int64, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return 0, model.Invalid("description is required")
	}
	rawSelling := strings.TrimSpace(in.SellingPrice)
	if rawSelling == "" {
		return 0, model.Invalid("selling price is required")
	}
	sellingPrice, err := strconv.ParseFloat(rawSelling, 64)
	if err != nil {
		return 0, model.Invalid("invalid selling price")
	}

	unitPrice := 0.0
	if raw := strings.TrimSpace(in.UnitPrice); raw != "" {
		unitPrice, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, model.Invalid("invalid original price")
		}
	}

	quantity := 0
	if raw := strings.TrimSpace(in.Quantity); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			return 0, model.Invalid("invalid quantity")
		}
	}
	if quantity < 0 {
		return 0, model.Invalid("invalid quantity")
	}

	expiry := ""
	if raw := strings.TrimSpace(in.ExpiryDate); raw != "" {
		if _, err := time.Parse(DateLayout, raw); err != nil {
			return 0, model.Invalid("expiration must be YYYY-MM-DD (e.g., 2025-12-31)")
		}
		expiry = raw
	}

	p := &model.Product{
		Name:         strings.TrimSpace(in.Name),
		Unit:         strings.TrimSpace(in.Unit),
		Category:     strings.TrimSpace(in.Category),
		Description:  description,
		UnitPrice:    unitPrice,
		SellingPrice: sellingPrice,
		Quantity:     quantity,
		ExpiryDate:   expiry,
	}
	id, err := database.InsertProduct(db, p)
	if err != nil {
		return 0, &model.StorageError{Err: err}
	}
	return id, nil
}

// DeleteProduct deletes by id. A missing id is reported as
// model.ErrNotFound rather than silently succeeding. The confirmation
// gesture is the caller's concern.
func DeleteProduct(db *sqlx.DB, id int64) error {
	if err := database.DeleteProduct(db, id); err != nil {
		if err == model.ErrNotFound {
			return err
		}
		return &model.StorageError{Err: err}
	}
	return nil
}
