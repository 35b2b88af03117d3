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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, product_id, quantity, unit_cost, purchased_at, created_at, updated_at`

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta una compra. Un product_id inexistente se informa como ErrNotFound.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `INSERT INTO purchases (` + purchaseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ProductID, p.Quantity, p.UnitCost, p.PurchasedAt.UTC(), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra; (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	p, err := scanPurchase(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

// Update reemplaza producto, cantidad, costo y fecha.
func (r *PurchaseRepo) Update(ctx context.Context, p *entity.Purchase) error {
	query := `
		UPDATE purchases
		SET product_id = $2, quantity = $3, unit_cost = $4, purchased_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.ProductID, p.Quantity, p.UnitCost, p.PurchasedAt.UTC(), p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

// Delete elimina una compra por ID.
func (r *PurchaseRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

// List devuelve las compras filtradas, de la más reciente a la más antigua.
func (r *PurchaseRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Purchase, error) {
	where, args, ok := movementWhere(filter, "purchased_at")
	if !ok {
		return nil, nil
	}
	query := `SELECT ` + purchaseColumns + ` FROM purchases` + where +
		` ORDER BY purchased_at DESC, created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountByProduct cuenta las compras de un producto.
func (r *PurchaseRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	if !validID(productID) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM purchases WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count purchases: %w", err)
	}
	return n, nil
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := row.Scan(&p.ID, &p.ProductID, &p.Quantity, &p.UnitCost, &p.PurchasedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	utc(&p.PurchasedAt, &p.CreatedAt, &p.UpdatedAt)
	return &p, nil
}
