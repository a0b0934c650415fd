package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists catalog records in PostgreSQL. Category and brand are
// stored as foreign keys but always read back denormalized to names.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p Product, categoryID int64, brandID string) error
	Update(ctx context.Context, p Product, categoryID int64, brandID string) error
	Delete(ctx context.Context, id string) error
	Sell(ctx context.Context, id string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL-backed catalog repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.nombre, COALESCE(m.nombre, 'Unknown'), COALESCE(c.nombre, 'Unknown'),
	p.precio_venta, p.costo, p.stock, p.ventas,
	COALESCE(p.descripcion, ''), COALESCE(p.imagen, ''), p.fecha_adicion`

const productJoins = `
	FROM productos p
	LEFT JOIN categorias c ON p.categoria_id = c.id
	LEFT JOIN marcas m ON p.marca_id = m.id`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Category,
		&p.Price, &p.Cost, &p.Stock, &p.Sales,
		&p.Description, &p.Image, &p.DateAdded)
	return p, err
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	query := `SELECT` + productColumns + productJoins + ` ORDER BY p.fecha_adicion DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Product, error) {
	query := `SELECT` + productColumns + productJoins + ` WHERE p.id = $1`
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, p Product, categoryID int64, brandID string) error {
	query := `
		INSERT INTO productos (id, nombre, descripcion, precio_venta, costo, stock, ventas, imagen, categoria_id, marca_id, fecha_adicion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Cost, p.Stock, p.Sales, p.Image,
		categoryID, brandID, p.DateAdded)
	return err
}

func (r *repository) Update(ctx context.Context, p Product, categoryID int64, brandID string) error {
	query := `
		UPDATE productos
		SET nombre = $1, descripcion = $2, precio_venta = $3, costo = $4, stock = $5,
		    ventas = $6, imagen = $7, categoria_id = $8, marca_id = $9
		WHERE id = $10`
	tag, err := r.db.Exec(ctx, query,
		p.Name, p.Description, p.Price, p.Cost, p.Stock,
		p.Sales, p.Image, categoryID, brandID, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Sell atomically decrements stock and bumps the cumulative sales counter.
func (r *repository) Sell(ctx context.Context, id string) error {
	query := `UPDATE productos SET stock = stock - 1, ventas = ventas + 1 WHERE id = $1 AND stock > 0`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM productos WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrOutOfStock
	}
	return nil
}
