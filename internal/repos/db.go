package repos

import (
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"orderdesk/internal/domain"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo customers/products/orders if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates all tables and indexes. Idempotent; also used by the
// in-memory test fixtures.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  address TEXT,
  city TEXT,
  zip_code TEXT,
  country TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email ON customers(LOWER(email));
CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(LOWER(last_name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL CHECK (category IN ('Elektronik','Möbel','Beleuchtung','Bürobedarf','Kleidung','Haushalt')),
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  image_url TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_stock    ON products(stock_quantity);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE RESTRICT,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING'
    CHECK (status IN ('PENDING','CONFIRMED','PROCESSING','SHIPPED','DELIVERED','CANCELLED')),
  total NUMERIC NOT NULL CHECK (total >= 0),
  notes TEXT,
  shipping_address TEXT,
  billing_address TEXT,
  order_date TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_status     ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_customer   ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date);

-- Line items; position keeps the insertion order for display
CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id),
  product_name TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price NUMERIC NOT NULL CHECK (unit_price >= 0),
  PRIMARY KEY (order_id, position)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM customers`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo customers/products/orders")

	now := timestamp(time.Now())
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO customers(id,first_name,last_name,email,phone,address,city,zip_code,country,active,created_at) VALUES
	  ('cus-mueller','Anna','Müller','anna.mueller@example.de','+49 30 1234567','Hauptstraße 12','Berlin','10115','Deutschland',1,?),
	  ('cus-schmidt','Jonas','Schmidt','jonas.schmidt@example.de','+49 89 7654321','Lindenweg 3','München','80331','Deutschland',1,?),
	  ('cus-weber','Clara','Weber','clara.weber@example.at','+43 1 9876543','Ringstraße 8','Wien','1010','Österreich',1,?),
	  ('cus-fischer','Max','Fischer','max.fischer@example.de','','Am Hafen 21','Hamburg','20095','Deutschland',0,?)`,
		now, now, now, now)

	tx.MustExec(`INSERT INTO products(id,name,description,category,price,stock_quantity,image_url,active,created_at) VALUES
	  ('prd-monitor','27 Zoll Monitor','IPS-Panel, 1440p, 75 Hz','Elektronik',249.99,14,'',1,?),
	  ('prd-tastatur','Mechanische Tastatur','Tastatur mit braunen Schaltern','Elektronik',89.90,6,'',1,?),
	  ('prd-stuhl','Bürostuhl Ergo','Ergonomischer Drehstuhl','Möbel',199.00,3,'',1,?),
	  ('prd-lampe','Schreibtischlampe LED','Dimmbare LED-Lampe','Beleuchtung',34.50,25,'',1,?),
	  ('prd-notizbuch','Notizbuch A5','Liniertes Notizbuch, 200 Seiten','Bürobedarf',4.99,120,'',1,?),
	  ('prd-hoodie','Kapuzenpullover','Baumwoll-Hoodie mit Logo','Kleidung',39.95,0,'',1,?),
	  ('prd-wasserkocher','Wasserkocher 1.7L','Edelstahl, 2200 Watt','Haushalt',29.99,8,'',0,?)`,
		now, now, now, now, now, now, now)

	tx.MustExec(`INSERT INTO orders(id,order_number,customer_id,customer_name,customer_email,status,total,notes,shipping_address,billing_address,order_date,created_at) VALUES
	  ('ord-seed-1','ORD-2025-0001','cus-mueller','Anna Müller','anna.mueller@example.de','DELIVERED',339.89,'','Hauptstraße 12, 10115 Berlin','',?,?),
	  ('ord-seed-2','ORD-2025-0002','cus-schmidt','Jonas Schmidt','jonas.schmidt@example.de','PENDING',199.00,'Rückruf erbeten','Lindenweg 3, 80331 München','',?,?)`,
		now, now, now, now)

	tx.MustExec(`INSERT INTO order_items(order_id,position,product_id,product_name,qty,unit_price) VALUES
	  ('ord-seed-1',0,'prd-monitor','27 Zoll Monitor',1,249.99),
	  ('ord-seed-1',1,'prd-tastatur','Mechanische Tastatur',1,89.90),
	  ('ord-seed-2',0,'prd-stuhl','Bürostuhl Ergo',1,199.00)`)

	return tx.Commit()
}

// timestamp renders a time the way every repo stores it. UTC RFC3339 keeps
// lexicographic order equal to chronological order.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	// sqlite CURRENT_TIMESTAMP fallback
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t.UTC()
}

// notFound maps a missed lookup to the domain taxonomy; anything else is a
// transport failure.
func notFound(op, entity, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Entity: entity, ID: id}
	}
	return domain.TransportError{Op: op, Err: err}
}

func transport(op string, err error) error {
	return domain.TransportError{Op: op, Err: err}
}

func lower(s string) string { return strings.ToLower(s) }
