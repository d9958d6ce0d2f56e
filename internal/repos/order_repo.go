package repos

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
	"orderdesk/internal/query"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID              string          `db:"id"`
	OrderNumber     string          `db:"order_number"`
	CustomerID      string          `db:"customer_id"`
	CustomerName    string          `db:"customer_name"`
	CustomerEmail   string          `db:"customer_email"`
	Status          string          `db:"status"`
	Total           decimal.Decimal `db:"total"`
	Notes           string          `db:"notes"`
	ShippingAddress string          `db:"shipping_address"`
	BillingAddress  string          `db:"billing_address"`
	OrderDate       string          `db:"order_date"`
	CreatedAt       string          `db:"created_at"`
	UpdatedAt       string          `db:"updated_at"`
}

type orderItemRow struct {
	OrderID     string          `db:"order_id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Qty         int             `db:"qty"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
}

func (r orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:              r.ID,
		OrderNumber:     r.OrderNumber,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		Items:           []domain.OrderItem{},
		Status:          domain.OrderStatus(r.Status),
		TotalAmount:     r.Total,
		Notes:           r.Notes,
		ShippingAddress: r.ShippingAddress,
		BillingAddress:  r.BillingAddress,
		OrderDate:       parseTimestamp(r.OrderDate),
		CreatedAt:       parseTimestamp(r.CreatedAt),
		UpdatedAt:       parseTimestamp(r.UpdatedAt),
	}
}

const orderCols = `id, order_number, customer_id, customer_name, customer_email, status, total,
  COALESCE(notes,'') AS notes, COALESCE(shipping_address,'') AS shipping_address,
  COALESCE(billing_address,'') AS billing_address, order_date, created_at,
  COALESCE(updated_at,'') AS updated_at`

// Create persists a submitted draft. Identity, order number and order date
// are assigned here, never by the caller.
func (r *OrderRepo) Create(o domain.Order) (domain.Order, error) {
	now := time.Now().UTC()
	o.ID = uuid.NewString()
	o.OrderNumber = newOrderNumber(now)
	o.OrderDate = now
	o.CreatedAt = now
	o.UpdatedAt = now

	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Order{}, transport("orders.create", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
	  INSERT INTO orders(id,order_number,customer_id,customer_name,customer_email,status,total,notes,shipping_address,billing_address,order_date,created_at,updated_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.OrderNumber, o.CustomerID, o.CustomerName, o.CustomerEmail, string(o.Status), o.TotalAmount,
		o.Notes, o.ShippingAddress, o.BillingAddress, timestamp(o.OrderDate), timestamp(o.CreatedAt), timestamp(o.UpdatedAt))
	if err != nil {
		return domain.Order{}, transport("orders.create", err)
	}
	if err := insertItems(tx, o.ID, o.Items); err != nil {
		return domain.Order{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Order{}, transport("orders.create", err)
	}
	return o, nil
}

// Update replaces the mutable fields and the whole item list of a persisted
// order. Identity, order number and order date stay as assigned at create.
func (r *OrderRepo) Update(id string, o domain.Order) (domain.Order, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Order{}, transport("orders.update", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE orders SET customer_id=?, customer_name=?, customer_email=?, status=?, total=?,
	    notes=?, shipping_address=?, billing_address=?, updated_at=?
	  WHERE id = ?`,
		o.CustomerID, o.CustomerName, o.CustomerEmail, string(o.Status), o.TotalAmount,
		o.Notes, o.ShippingAddress, o.BillingAddress, timestamp(time.Now()), id)
	if err != nil {
		return domain.Order{}, transport("orders.update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Order{}, domain.NotFoundError{Entity: "order", ID: id}
	}
	if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return domain.Order{}, transport("orders.update", err)
	}
	if err := insertItems(tx, id, o.Items); err != nil {
		return domain.Order{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Order{}, transport("orders.update", err)
	}
	return r.Get(id)
}

func insertItems(tx *sqlx.Tx, orderID string, items []domain.OrderItem) error {
	for i, it := range items {
		_, err := tx.Exec(`
		  INSERT INTO order_items(order_id,position,product_id,product_name,qty,unit_price)
		  VALUES(?,?,?,?,?,?)`,
			orderID, i, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice)
		if err != nil {
			return transport("orders.items.insert", err)
		}
	}
	return nil
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var row orderRow
	if err := r.db.Get(&row, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id); err != nil {
		return domain.Order{}, notFound("orders.get", "order", id, err)
	}
	o := row.toDomain()
	items, err := r.itemsFor([]string{id})
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items[id]
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return o, nil
}

func (r *OrderRepo) List() ([]domain.Order, error) {
	return r.Filter(query.OrderFilter{})
}

// Filter mirrors query.OrderFilter.Match on the SQL side. Results keep the
// insertion order of the orders table.
func (r *OrderRepo) Filter(f query.OrderFilter) ([]domain.Order, error) {
	where := `1=1`
	args := []any{}
	if f.Search != "" {
		q := "%" + lower(f.Search) + "%"
		where += ` AND (LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(id) LIKE ? OR LOWER(order_number) LIKE ?)`
		args = append(args, q, q, q, q)
	}
	if f.Status != "" {
		where += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.CustomerID != "" {
		where += ` AND customer_id = ?`
		args = append(args, f.CustomerID)
	}
	// RFC3339 text compares chronologically
	if !f.From.IsZero() {
		where += ` AND order_date >= ?`
		args = append(args, timestamp(f.From))
	}
	if !f.To.IsZero() {
		where += ` AND order_date < ?`
		args = append(args, timestamp(f.To))
	}

	var rows []orderRow
	err := r.db.Select(&rows, `SELECT `+orderCols+` FROM orders WHERE `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, transport("orders.filter", err)
	}
	if len(rows) == 0 {
		return []domain.Order{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	itemsByOrder, err := r.itemsFor(ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o := row.toDomain()
		if its := itemsByOrder[o.ID]; its != nil {
			o.Items = its
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepo) itemsFor(orderIDs []string) (map[string][]domain.OrderItem, error) {
	q, args, err := sqlx.In(`
	  SELECT order_id, product_id, product_name, qty, unit_price
	  FROM order_items WHERE order_id IN (?) ORDER BY order_id, position`, orderIDs)
	if err != nil {
		return nil, transport("orders.items", err)
	}
	var rows []orderItemRow
	if err := r.db.Select(&rows, r.db.Rebind(q), args...); err != nil {
		return nil, transport("orders.items", err)
	}
	out := make(map[string][]domain.OrderItem, len(orderIDs))
	for _, row := range rows {
		out[row.OrderID] = append(out[row.OrderID], domain.OrderItem{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Qty,
			UnitPrice:   row.UnitPrice,
		})
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(id string, status domain.OrderStatus) error {
	res, err := r.db.Exec(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), timestamp(time.Now()), id)
	if err != nil {
		return transport("orders.status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Entity: "order", ID: id}
	}
	return nil
}

func (r *OrderRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return transport("orders.delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Entity: "order", ID: id}
	}
	return nil
}

func newOrderNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", t.Format("20060102"), suffix)
}
