package brands

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the named brand does not exist yet.
var ErrNotFound = errors.New("brands: not found")

const uniqueViolation = "23505"

type Repository interface {
	GetByName(ctx context.Context, name string) (Brand, error)
	Create(ctx context.Context, brand Brand) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// GetByName matches case-insensitively with an exact comparison; % and _ in
// a brand name are literal characters, not pattern wildcards.
func (r *repository) GetByName(ctx context.Context, name string) (Brand, error) {
	var b Brand
	err := r.db.QueryRow(ctx, `SELECT id, nombre FROM marcas WHERE LOWER(nombre) = LOWER($1)`, name).Scan(&b.ID, &b.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Brand{}, ErrNotFound
	}
	return b, err
}

func (r *repository) Create(ctx context.Context, brand Brand) error {
	_, err := r.db.Exec(ctx, `INSERT INTO marcas (id, nombre) VALUES ($1, $2)`, brand.ID, brand.Name)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrIDConflict
	}
	return err
}
