package categories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the named category does not exist yet.
var ErrNotFound = errors.New("categories: not found")

type Repository interface {
	GetByName(ctx context.Context, name string) (Category, error)
	Create(ctx context.Context, name string) (Category, error)
	List(ctx context.Context) ([]Category, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// GetByName matches case-insensitively so "Arte" and "arte" are one entity.
// Exact comparison, not a pattern: % and _ in a name are literal characters.
func (r *repository) GetByName(ctx context.Context, name string) (Category, error) {
	var c Category
	err := r.db.QueryRow(ctx, `SELECT id, nombre FROM categorias WHERE LOWER(nombre) = LOWER($1)`, name).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, name string) (Category, error) {
	c := Category{Name: name}
	err := r.db.QueryRow(ctx, `INSERT INTO categorias (nombre) VALUES ($1) RETURNING id`, name).Scan(&c.ID)
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, nombre FROM categorias ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
