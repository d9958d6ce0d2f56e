package repos

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"orderdesk/internal/domain"
	"orderdesk/internal/query"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

type customerRow struct {
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Address   string `db:"address"`
	City      string `db:"city"`
	ZipCode   string `db:"zip_code"`
	Country   string `db:"country"`
	Active    bool   `db:"active"`
	CreatedAt string `db:"created_at"`
}

func (r customerRow) toDomain() domain.Customer {
	return domain.Customer{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		City:      r.City,
		ZipCode:   r.ZipCode,
		Country:   r.Country,
		Active:    r.Active,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

const customerCols = `id, first_name, last_name, email,
  COALESCE(phone,'') AS phone, COALESCE(address,'') AS address,
  COALESCE(city,'') AS city, COALESCE(zip_code,'') AS zip_code,
  COALESCE(country,'') AS country, active, created_at`

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	var rows []customerRow
	// rowid keeps insertion order stable for the filter engine
	err := r.db.Select(&rows, `SELECT `+customerCols+` FROM customers ORDER BY rowid`)
	if err != nil {
		return nil, transport("customers.list", err)
	}
	out := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var row customerRow
	if err := r.db.Get(&row, `SELECT `+customerCols+` FROM customers WHERE id = ?`, id); err != nil {
		return domain.Customer{}, notFound("customers.get", "customer", id, err)
	}
	return row.toDomain(), nil
}

// Create assigns the identity and creation time; the caller never does.
func (r *CustomerRepo) Create(c domain.Customer) (domain.Customer, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	_, err := r.db.Exec(`
	  INSERT INTO customers(id,first_name,last_name,email,phone,address,city,zip_code,country,active,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City, c.ZipCode, c.Country, c.Active, timestamp(c.CreatedAt))
	if err != nil {
		return domain.Customer{}, transport("customers.create", err)
	}
	return c, nil
}

func (r *CustomerRepo) Update(id string, c domain.Customer) (domain.Customer, error) {
	res, err := r.db.Exec(`
	  UPDATE customers SET first_name=?, last_name=?, email=?, phone=?, address=?, city=?, zip_code=?, country=?, active=?
	  WHERE id = ?`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City, c.ZipCode, c.Country, c.Active, id)
	if err != nil {
		return domain.Customer{}, transport("customers.update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Customer{}, domain.NotFoundError{Entity: "customer", ID: id}
	}
	return r.Get(id)
}

func (r *CustomerRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return transport("customers.delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Entity: "customer", ID: id}
	}
	return nil
}

// Search is the server-side twin of query.CustomerFilter.Match; the WHERE
// clause must keep the same semantics as the in-memory predicate.
func (r *CustomerRepo) Search(f query.CustomerFilter) ([]domain.Customer, error) {
	where := `1=1`
	args := []any{}
	if f.Search != "" {
		q := "%" + lower(f.Search) + "%"
		where += ` AND (LOWER(TRIM(first_name || ' ' || last_name)) LIKE ? OR LOWER(email) LIKE ?)`
		args = append(args, q, q)
	}
	if f.Active != nil {
		where += ` AND active = ?`
		args = append(args, *f.Active)
	}
	if f.City != "" {
		where += ` AND LOWER(city) = LOWER(?)`
		args = append(args, f.City)
	}
	if f.Country != "" {
		where += ` AND LOWER(country) = LOWER(?)`
		args = append(args, f.Country)
	}

	var rows []customerRow
	err := r.db.Select(&rows, `SELECT `+customerCols+` FROM customers WHERE `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, transport("customers.search", err)
	}
	out := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
