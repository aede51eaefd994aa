package selling

import (
	"math"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"sarisari/model"
)

// State is where a quick-sell transaction currently stands.
type State int

const (
	// Idle: no product selected yet.
	Idle State = iota
	// Selected: product chosen, quantity or payment not yet valid.
	Selected
	// Ready: all guards hold; commit is allowed.
	Ready
	// Committed: ledger written and stock decremented. Terminal.
	Committed
)

func (s State) String() string {
	switch s {
	case Selected:
		return "selected"
	case Ready:
		return "ready"
	case Committed:
		return "committed"
	default:
		return "idle"
	}
}

// Transaction models one quick-sell: pick a product, set quantity and
// payment, commit. It holds the raw form values and recomputes the
// derived totals on every edit; the view only observes and drives it.
type Transaction struct {
	state   State
	product *model.Product
	rawQty  string
	rawPay  string

	Qty     int
	Total   float64
	Payment float64
	Change  float64
}

func NewTransaction() *Transaction {
	return &Transaction{state: Idle}
}

func (t *Transaction) State() State            { return t.state }
func (t *Transaction) Product() *model.Product { return t.product }

// Select moves to Selected with quantity defaulted to 1 and any prior
// payment cleared.
func (t *Transaction) Select(p *model.Product) {
	if t.state == Committed {
		return
	}
	t.product = p
	t.rawQty = "1"
	t.rawPay = ""
	t.recompute()
}

func (t *Transaction) SetQuantity(raw string) {
	if t.state == Committed {
		return
	}
	t.rawQty = raw
	t.recompute()
}

func (t *Transaction) SetPayment(raw string) {
	if t.state == Committed {
		return
	}
	t.rawPay = raw
	t.recompute()
}

// Reset returns to Idle so the register can take the next customer.
func (t *Transaction) Reset() {
	*t = Transaction{state: Idle}
}

func (t *Transaction) recompute() {
	if t.product == nil {
		t.Qty, t.Total, t.Payment, t.Change = 0, 0, 0, 0
		t.state = Idle
		return
	}

	qty, err := strconv.Atoi(strings.TrimSpace(t.rawQty))
	if err != nil || qty < 0 {
		qty = 0
	}
	t.Qty = qty
	t.Total = round2(float64(qty) * t.product.SellingPrice)

	payment, err := strconv.ParseFloat(strings.TrimSpace(t.rawPay), 64)
	if err != nil || payment < 0 {
		payment = 0
	}
	t.Payment = payment
	t.Change = round2(payment - t.Total)

	if qty > 0 && qty <= t.product.Quantity && payment >= t.Total {
		t.state = Ready
	} else {
		t.state = Selected
	}
}

// Commit writes the ledger entry for this transaction. Only valid from
// Ready; the stock guard is still re-checked against the stored value
// inside the database transaction.
func (t *Transaction) Commit(db *sqlx.DB) (*model.Sale, error) {
	switch t.state {
	case Committed:
		return nil, model.Invalid("sale already committed")
	case Idle:
		return nil, model.Invalid("no product selected")
	}
	sale, err := Commit(db, t.product.ID, t.rawQty, t.rawPay)
	if err != nil {
		return nil, err
	}
	t.state = Committed
	return sale, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
