package selling

import (
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"sarisari/database"
	"sarisari/model"
)

// Commit performs one sale as a single atomic unit: re-read the
// product, check the guards against the currently stored stock,
// decrement it, and write the ledger row with snapshot description and
// price. Either both writes land or neither does; any persistence
// failure rolls the whole thing back and comes out as a StorageError.
func Commit(db *sqlx.DB, productID int64, rawQty, rawPayment string) (*model.Sale, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(rawQty))
	if err != nil || qty <= 0 {
		return nil, model.Invalid("invalid quantity")
	}
	payment, err := strconv.ParseFloat(strings.TrimSpace(rawPayment), 64)
	if err != nil || payment < 0 {
		return nil, model.Invalid("invalid payment")
	}

	tx, err := db.Beginx()
	if err != nil {
		return nil, &model.StorageError{Err: err}
	}
	defer tx.Rollback()

	p, err := database.GetProductInTx(tx, productID)
	if err == model.ErrNotFound {
		return nil, model.Invalid("product not found")
	}
	if err != nil {
		return nil, &model.StorageError{Err: err}
	}
	if qty > p.Quantity {
		return nil, model.Invalid("insufficient stock")
	}

	total := round2(float64(qty) * p.SellingPrice)
	if payment < total {
		return nil, model.Invalid("insufficient payment")
	}

	n, err := database.DecrementStockInTx(tx, productID, qty)
	if err != nil {
		return nil, &model.StorageError{Err: err}
	}
	if n == 0 {
		// Lost the race against another write between the read above
		// and the guarded update.
		return nil, model.Invalid("insufficient stock")
	}

	sale := &model.Sale{
		ProductID:   productID,
		Description: p.Description,
		Qty:         qty,
		PriceEach:   p.SellingPrice,
		Total:       total,
		Payment:     payment,
		Change:      round2(payment - total),
	}
	id, err := database.InsertSaleInTx(tx, sale)
	if err != nil {
		return nil, &model.StorageError{Err: err}
	}
	sale.ID = id

	if err := tx.Commit(); err != nil {
		return nil, &model.StorageError{Err: err}
	}
	return sale, nil
}
