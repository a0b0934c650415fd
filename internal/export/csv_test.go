package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteInventoryCSV(t *testing.T) {
	added := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rows := []InventoryRow{
		{ID: "STA310", Name: "Cuaderno Profesional", Brand: "Scribe", Category: "stationery",
			Price: 45, Cost: 22.5, Stock: 60, DateAdded: added},
		{ID: "BOO101", Name: "Cien Años de Soledad", Brand: "Penguin", Category: "book",
			Price: 350.999, Cost: 200, Stock: 12, DateAdded: added},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInventoryCSV(&buf, rows))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "\uFEFF"), "missing UTF-8 BOM")

	lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Nombre,Marca,Categoría,Precio Venta,Costo,Stock,Fecha", lines[0])
	assert.Equal(t, `STA310,"Cuaderno Profesional","Scribe","stationery",45.00,22.50,60,2026-03-14T09:26:53Z`, lines[1])
	assert.Equal(t, `BOO101,"Cien Años de Soledad","Penguin","book",351.00,200.00,12,2026-03-14T09:26:53Z`, lines[2])
}

func TestWriteInventoryCSVEscapesQuotes(t *testing.T) {
	rows := []InventoryRow{
		{ID: "STA1", Name: `Cuaderno "Pro" 100h`, Brand: "Scribe", Category: "stationery"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInventoryCSV(&buf, rows))

	assert.Contains(t, buf.String(), `"Cuaderno ""Pro"" 100h"`)
}

func TestWriteInventoryCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInventoryCSV(&buf, nil))
	assert.Equal(t, "\uFEFF"+"ID,Nombre,Marca,Categoría,Precio Venta,Costo,Stock,Fecha", buf.String())
}

func TestInventoryCSVFilename(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "inventario_2026-03-14.csv", InventoryCSVFilename(now))
}
