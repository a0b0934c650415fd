package quotes

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mostrador-pos/mostrador-pos/internal/platform/db"
)

// Repository persists quotes and their detail rows in PostgreSQL.
type Repository interface {
	List(ctx context.Context) ([]Quote, error)
	Get(ctx context.Context, id string) (Quote, error)
	GetLines(ctx context.Context, quoteID string) ([]QuoteLine, error)
	Create(ctx context.Context, quote Quote, lines []QuoteLine) error
	Update(ctx context.Context, id, clientName string, total float64, lines []QuoteLine) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL-backed quote repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Quote, error) {
	query := `
		SELECT id, nombre_cliente, estado, total_estimado, fecha_creacion
		FROM cotizaciones
		ORDER BY fecha_creacion DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.ID, &q.ClientName, &q.Status, &q.EstimatedTotal, &q.CreatedAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Quote, error) {
	query := `
		SELECT id, nombre_cliente, estado, total_estimado, fecha_creacion
		FROM cotizaciones WHERE id = $1`
	var q Quote
	err := r.pool.QueryRow(ctx, query, id).Scan(&q.ID, &q.ClientName, &q.Status, &q.EstimatedTotal, &q.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	return q, err
}

// GetLines loads the detail rows with product name and brand denormalized at
// read time, so the editor shows current names even when the catalog moved
// on. Missing products degrade to placeholder labels instead of failing.
func (r *repository) GetLines(ctx context.Context, quoteID string) ([]QuoteLine, error) {
	query := `
		SELECT d.producto_id,
		       COALESCE(p.nombre, 'Producto Desconocido'),
		       COALESCE(m.nombre, 'Marca Desconocida'),
		       d.precio_unitario_momento, d.cantidad
		FROM cotizacion_detalles d
		LEFT JOIN productos p ON d.producto_id = p.id
		LEFT JOIN marcas m ON p.marca_id = m.id
		WHERE d.cotizacion_id = $1
		ORDER BY d.id`
	rows, err := r.pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []QuoteLine
	for rows.Next() {
		var l QuoteLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Brand, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *repository) Create(ctx context.Context, quote Quote, lines []QuoteLine) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO cotizaciones (id, nombre_cliente, estado, total_estimado, fecha_creacion)
			VALUES ($1, $2, $3, $4, $5)`,
			quote.ID, quote.ClientName, quote.Status, quote.EstimatedTotal, quote.CreatedAt)
		if err != nil {
			return err
		}
		return insertLines(ctx, tx, quote.ID, lines)
	})
}

// Update rewrites the header and replaces every detail row. Delete-and-
// reinsert keeps the line set exactly equal to the working set without
// diffing.
func (r *repository) Update(ctx context.Context, id, clientName string, total float64, lines []QuoteLine) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE cotizaciones SET nombre_cliente = $1, total_estimado = $2 WHERE id = $3`,
			clientName, total, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM cotizacion_detalles WHERE cotizacion_id = $1`, id); err != nil {
			return err
		}
		return insertLines(ctx, tx, id, lines)
	})
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM cotizacion_detalles WHERE cotizacion_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM cotizaciones WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func insertLines(ctx context.Context, tx pgx.Tx, quoteID string, lines []QuoteLine) error {
	for _, l := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO cotizacion_detalles (cotizacion_id, producto_id, cantidad, precio_unitario_momento)
			VALUES ($1, $2, $3, $4)`,
			quoteID, l.ProductID, l.Quantity, l.UnitPrice)
		if err != nil {
			return err
		}
	}
	return nil
}
