package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// each pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Products (images is the comma-separated list the catalog ingests)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  summary TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  old_price NUMERIC,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  images TEXT NOT NULL DEFAULT '',
  position INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_position ON products(position);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,summary,category,price,old_price,stock,images,position) VALUES
	  ('tv-samsung-55','TV Samsung 55" Crystal UHD','Smart TV 4K con Tizen','TELEVISOR',2199000,2899000,4,'products/tv-samsung-55/1.jpg, products/tv-samsung-55/2.jpg',1),
	  ('tv-lg-43','TV LG 43" Full HD','Pantalla LED con webOS','TELEVISOR',1299000,NULL,0,'products/tv-lg-43/1.jpg',2),
	  ('roku-express','Roku Express HD','Reproductor de streaming','ENTRETENIMIENTO',189000,229000,12,'products/roku-express/1.jpg',3),
	  ('ps5-slim','Consola PS5 Slim','Incluye control DualSense','ENTRETENIMIENTO',3499000,NULL,2,'products/ps5-slim/1.jpg, products/ps5-slim/2.jpg, ',4),
	  ('jbl-flip-6','Parlante JBL Flip 6','Bluetooth, resistente al agua','AUDIO Y SONIDO',549000,649000,7,'products/jbl-flip-6/1.jpg',5),
	  ('airpods-pro','Audífonos AirPods Pro','Cancelación activa de ruido','AUDIO Y SONIDO',1099000,NULL,0,'',6)`)

	return tx.Commit()
}
