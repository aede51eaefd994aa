package model

// Sale is one ledger row. Description and price_each are snapshots
// taken at commit time; reports stay valid after the product is
// renamed or deleted.
type Sale struct {
	ID          int64   `db:"id" json:"id"`
	ProductID   int64   `db:"product_id" json:"productId"`
	Description string  `db:"description" json:"description"`
	Qty         int     `db:"qty" json:"qty"`
	PriceEach   float64 `db:"price_each" json:"priceEach"`
	Total       float64 `db:"total" json:"total"`
	Payment     float64 `db:"payment" json:"payment"`
	Change      float64 `db:"change" json:"change"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
}
