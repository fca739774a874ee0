package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lilutecno/internal/repos"
	"lilutecno/internal/services"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	t.Setenv("MAX_PRICE", "")
	return filepath.Join(t.TempDir(), "lilutecno.db")
}

func TestCatalogList_Seeded(t *testing.T) {
	db := tempDB(t)

	out, err := run(t, "--db", db, "--format", "json", "catalog", "list", "--category", "TELEVISOR")
	require.NoError(t, err)

	var res services.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Products, 2)
	assert.Equal(t, "tv-samsung-55", res.Products[0].ID)
	assert.Equal(t, 6, res.Total)
	assert.Equal(t, 1, res.OnOfferCount)

	out, err = run(t, "--db", db, "catalog", "list", "--stock-only", "--max", "600000")
	require.NoError(t, err)
	assert.Contains(t, out, "roku-express")
	assert.Contains(t, out, "jbl-flip-6")
	assert.NotContains(t, out, "tv-samsung-55")
	assert.Contains(t, out, "2 of 6 product(s), 2 on offer")
}

func TestCatalogImport(t *testing.T) {
	db := tempDB(t)
	file := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
- id: tv-lg-43
  name: TV LG 43" Full HD
  summary: Pantalla LED con webOS
  category: TELEVISOR
  price: 1199000
  old_price: 1299000
  stock: 3
  images: products/tv-lg-43/1.jpg
- id: barra-sonido
  name: Barra de sonido Sony
  category: AUDIO Y SONIDO
  price: 899000
  stock: 1
  images: ""
`), 0o644))

	out, err := run(t, "--db", db, "catalog", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 product(s)")

	out, err = run(t, "--db", db, "--format", "json", "catalog", "list")
	require.NoError(t, err)
	var res services.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, 7, res.Total)
	assert.Equal(t, "barra-sonido", res.Products[6].ID)
	assert.Empty(t, res.Products[6].Images)

	lg := res.Products[1]
	assert.Equal(t, "tv-lg-43", lg.ID)
	assert.Equal(t, 3, lg.Stock)
	assert.True(t, lg.OnOffer())
}

func TestCatalogImport_RejectsInvalid(t *testing.T) {
	db := tempDB(t)
	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"id":"x","name":"X","category":"C","price":-1,"stock":0,"images":""}]`), 0o644))

	_, err := run(t, "--db", db, "catalog", "import", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x")

	out, err := run(t, "--db", db, "--format", "json", "catalog", "list")
	require.NoError(t, err)
	var res services.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 6, res.Total, "rejected file must not be partially imported")
}

func TestCatalogStock(t *testing.T) {
	db := tempDB(t)

	out, err := run(t, "--db", db, "catalog", "stock", "airpods-pro", "3")
	require.NoError(t, err)
	assert.Equal(t, "airpods-pro: LOW_STOCK (3)\n", out)

	_, err = run(t, "--db", db, "catalog", "stock", "airpods-pro", "-1")
	assert.Error(t, err)
	_, err = run(t, "--db", db, "catalog", "stock", "missing", "1")
	assert.Error(t, err)
	_, err = run(t, "--db", db, "catalog", "stock", "airpods-pro", "many")
	assert.Error(t, err)
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "--format", "xml", "catalog", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCatalogImport_TrimsIDs(t *testing.T) {
	db := tempDB(t)
	file := filepath.Join(t.TempDir(), "padded.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"id":" tv-lg-43 ","name":"TV LG 43","category":"TELEVISOR","price":1100000,"stock":9,"images":"lg.jpg"}]`), 0o644))

	_, err := run(t, "--db", db, "catalog", "import", file)
	require.NoError(t, err)

	out, err := run(t, "--db", db, "--format", "json", "catalog", "list")
	require.NoError(t, err, "catalog must stay loadable after importing a padded id")
	var res services.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 6, res.Total)
	assert.Equal(t, "tv-lg-43", res.Products[1].ID)
	assert.Equal(t, 9, res.Products[1].Stock)
}

func TestCatalogImport_RejectsCollisionWithStoredRows(t *testing.T) {
	dbPath := tempDB(t)
	db, err := repos.OpenDB(dbPath)
	require.NoError(t, err)
	// a row written before ids were trimmed on import
	_, err = db.Exec(`INSERT INTO products(id, name, category, price, stock, images, position) VALUES (' roku-express', 'Roku', 'ENTRETENIMIENTO', 1, 1, '', 99)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	file := filepath.Join(t.TempDir(), "one.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"id":"barra","name":"Barra","category":"AUDIO Y SONIDO","price":1,"stock":1,"images":""}]`), 0o644))

	_, err = run(t, "--db", dbPath, "catalog", "import", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate product id roku-express")
}
