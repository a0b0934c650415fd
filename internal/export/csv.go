package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// utf8BOM keeps Excel from misreading accented characters.
const utf8BOM = "\uFEFF"

// InventoryRow is one product line of the inventory export.
type InventoryRow struct {
	ID        string
	Name      string
	Brand     string
	Category  string
	Price     float64
	Cost      float64
	Stock     int
	DateAdded time.Time
}

// WriteInventoryCSV serialises the inventory in the layout the counter staff
// already load into Excel: a BOM prefix, a fixed Spanish header, and text
// columns always double-quoted with embedded quotes doubled. encoding/csv only
// quotes on demand, so the rows are assembled by hand to keep the files
// byte-compatible with the historical exports.
func WriteInventoryCSV(w io.Writer, rows []InventoryRow) error {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, "ID,Nombre,Marca,Categoría,Precio Venta,Costo,Stock,Fecha")
	for _, row := range rows {
		lines = append(lines, strings.Join([]string{
			row.ID,
			quoteField(row.Name),
			quoteField(row.Brand),
			quoteField(row.Category),
			fmt.Sprintf("%.2f", row.Price),
			fmt.Sprintf("%.2f", row.Cost),
			strconv.Itoa(row.Stock),
			row.DateAdded.UTC().Format(time.RFC3339),
		}, ","))
	}
	_, err := io.WriteString(w, utf8BOM+strings.Join(lines, "\n"))
	return err
}

// InventoryCSVFilename names the download after the export date.
func InventoryCSVFilename(now time.Time) string {
	return "inventario_" + now.UTC().Format("2006-01-02") + ".csv"
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
