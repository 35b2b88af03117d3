package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, product_id, quantity, unit_price, sold_at, created_at, updated_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta una venta. Un product_id inexistente se informa como ErrNotFound.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ProductID, s.Quantity, s.UnitPrice, s.SoldAt.UTC(), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	v, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return v, nil
}

// Update reemplaza producto, cantidad, precio y fecha.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales
		SET product_id = $2, quantity = $3, unit_price = $4, sold_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.ProductID, s.Quantity, s.UnitPrice, s.SoldAt.UTC(), s.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// List devuelve las ventas filtradas, de la más reciente a la más antigua.
func (r *SaleRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Sale, error) {
	where, args, ok := movementWhere(filter, "sold_at")
	if !ok {
		return nil, nil
	}
	query := `SELECT ` + saleColumns + ` FROM sales` + where +
		` ORDER BY sold_at DESC, created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		v, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// CountByProduct cuenta las ventas de un producto.
func (r *SaleRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	if !validID(productID) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.SoldAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	utc(&s.SoldAt, &s.CreatedAt, &s.UpdatedAt)
	return &s, nil
}
