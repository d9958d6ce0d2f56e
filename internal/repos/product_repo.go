package repos

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
	"orderdesk/internal/query"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Category      string          `db:"category"`
	Price         decimal.Decimal `db:"price"`
	StockQuantity int             `db:"stock_quantity"`
	ImageURL      string          `db:"image_url"`
	Active        bool            `db:"active"`
	CreatedAt     string          `db:"created_at"`
	UpdatedAt     string          `db:"updated_at"`
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Category:      domain.Category(r.Category),
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		ImageURL:      r.ImageURL,
		Active:        r.Active,
		CreatedAt:     parseTimestamp(r.CreatedAt),
		UpdatedAt:     parseTimestamp(r.UpdatedAt),
	}
}

const productCols = `id, name, COALESCE(description,'') AS description, category,
  price, stock_quantity, COALESCE(image_url,'') AS image_url, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var rows []productRow
	err := r.db.Select(&rows, `SELECT `+productCols+` FROM products ORDER BY rowid`)
	if err != nil {
		return nil, transport("products.list", err)
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var row productRow
	if err := r.db.Get(&row, `SELECT `+productCols+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, notFound("products.get", "product", id, err)
	}
	return row.toDomain(), nil
}

func (r *ProductRepo) Create(p domain.Product) (domain.Product, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	_, err := r.db.Exec(`
	  INSERT INTO products(id,name,description,category,price,stock_quantity,image_url,active,created_at,updated_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Name, p.Description, string(p.Category), p.Price, p.StockQuantity, p.ImageURL, p.Active,
		timestamp(p.CreatedAt), timestamp(p.UpdatedAt))
	if err != nil {
		return domain.Product{}, transport("products.create", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(id string, p domain.Product) (domain.Product, error) {
	res, err := r.db.Exec(`
	  UPDATE products SET name=?, description=?, category=?, price=?, stock_quantity=?, image_url=?, active=?, updated_at=?
	  WHERE id = ?`,
		p.Name, p.Description, string(p.Category), p.Price, p.StockQuantity, p.ImageURL, p.Active,
		timestamp(time.Now()), id)
	if err != nil {
		return domain.Product{}, transport("products.update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Product{}, domain.NotFoundError{Entity: "product", ID: id}
	}
	return r.Get(id)
}

func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return transport("products.delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Entity: "product", ID: id}
	}
	return nil
}

// Search mirrors query.ProductFilter.Match on the SQL side.
func (r *ProductRepo) Search(f query.ProductFilter) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if f.Search != "" {
		q := "%" + lower(f.Search) + "%"
		where += ` AND (LOWER(name) LIKE ? OR LOWER(COALESCE(description,'')) LIKE ?)`
		args = append(args, q, q)
	}
	if f.Category != "" {
		where += ` AND category = ?`
		args = append(args, string(f.Category))
	}
	if f.Active != nil {
		where += ` AND active = ?`
		args = append(args, *f.Active)
	}
	if f.MinPrice != nil {
		where += ` AND price >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where += ` AND price <= ?`
		args = append(args, *f.MaxPrice)
	}
	if f.InStock != nil {
		if *f.InStock {
			where += ` AND stock_quantity > 0`
		} else {
			where += ` AND stock_quantity = 0`
		}
	}

	var rows []productRow
	err := r.db.Select(&rows, `SELECT `+productCols+` FROM products WHERE `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, transport("products.search", err)
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
