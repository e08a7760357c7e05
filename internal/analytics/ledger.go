package analytics

import "github.com/GTDGit/gtd_dashboard/internal/models"

// Totals is the number and summed amount of a set of orders.
type Totals struct {
	Count  int
	Amount float64
}

func (t Totals) add(amount float64) Totals {
	return Totals{Count: t.Count + 1, Amount: t.Amount + amount}
}

// Ledger attributes orders to catalog rows. An order linked by id counts
// only for that id; an unlinked order counts for whichever row carries its
// name snapshot.
type Ledger struct {
	byID   map[string]Totals
	byName map[string]Totals
}

// ProductLedger tallies orders per product.
func ProductLedger(orders []models.Order) Ledger {
	return newLedger(orders, func(o models.Order) (*string, string) { return o.ProductID, o.Product })
}

// CustomerLedger tallies orders per customer.
func CustomerLedger(orders []models.Order) Ledger {
	return newLedger(orders, func(o models.Order) (*string, string) { return o.CustomerID, o.Customer })
}

func newLedger(orders []models.Order, key func(models.Order) (*string, string)) Ledger {
	l := Ledger{byID: make(map[string]Totals), byName: make(map[string]Totals)}
	for _, o := range orders {
		id, name := key(o)
		if id != nil {
			l.byID[*id] = l.byID[*id].add(o.Amount)
		} else {
			l.byName[name] = l.byName[name].add(o.Amount)
		}
	}
	return l
}

// For returns the totals attributed to the row with the given id and name.
func (l Ledger) For(id, name string) Totals {
	a, b := l.byID[id], l.byName[name]
	return Totals{Count: a.Count + b.Count, Amount: a.Amount + b.Amount}
}
