package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SKURepository = (*SKURepo)(nil)

const skuColumns = `id, base_price, active_discount_id, is_hidden, created_at`

// SKURepo implementación de SKURepository sobre PostgreSQL (usable con pool o tx).
type SKURepo struct {
	q Querier
}

// NewSKURepository construye el adaptador. Pasar pool o tx (Querier).
func NewSKURepository(q Querier) *SKURepo {
	return &SKURepo{q: q}
}

// CreateIfAbsent inserta el SKU; si ya existe no hace nada.
func (r *SKURepo) CreateIfAbsent(ctx context.Context, sku *entity.SKU) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO skus (id, base_price, active_discount_id, is_hidden, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		sku.ID, sku.BasePrice, sku.ActiveDiscountID, sku.IsHidden, sku.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sku: %w", err)
	}
	return nil
}

// GetByID obtiene un SKU. Retorna (nil, nil) si no existe.
func (r *SKURepo) GetByID(ctx context.Context, id string) (*entity.SKU, error) {
	return r.get(ctx, `SELECT `+skuColumns+` FROM skus WHERE id = $1`, id)
}

// GetForUpdate obtiene el SKU bloqueando la fila.
func (r *SKURepo) GetForUpdate(ctx context.Context, id string) (*entity.SKU, error) {
	return r.get(ctx, `SELECT `+skuColumns+` FROM skus WHERE id = $1 FOR UPDATE`, id)
}

func (r *SKURepo) get(ctx context.Context, query, id string) (*entity.SKU, error) {
	s, err := scanSKU(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sku: %w", err)
	}
	return s, nil
}

// ListByDiscount lista los SKU que referencian el descuento, ordenados por id.
func (r *SKURepo) ListByDiscount(ctx context.Context, discountID string) ([]*entity.SKU, error) {
	rows, err := r.q.Query(ctx, `SELECT `+skuColumns+` FROM skus WHERE active_discount_id = $1 ORDER BY id`, discountID)
	if err != nil {
		return nil, fmt.Errorf("list skus by discount: %w", err)
	}
	defer rows.Close()
	var list []*entity.SKU
	for rows.Next() {
		s, err := scanSKU(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateBasePrice actualiza el precio base.
func (r *SKURepo) UpdateBasePrice(ctx context.Context, id string, price decimal.Decimal) error {
	return r.exec(ctx, "update sku price", `UPDATE skus SET base_price = $2 WHERE id = $1`, id, price)
}

// SetActiveDiscount fija o limpia (nil) la referencia al descuento activo.
func (r *SKURepo) SetActiveDiscount(ctx context.Context, id string, discountID *string) error {
	return r.exec(ctx, "update sku discount", `UPDATE skus SET active_discount_id = $2 WHERE id = $1`, id, discountID)
}

// SetHidden actualiza la visibilidad.
func (r *SKURepo) SetHidden(ctx context.Context, id string, hidden bool) error {
	return r.exec(ctx, "update sku hidden", `UPDATE skus SET is_hidden = $2 WHERE id = $1`, id, hidden)
}

func (r *SKURepo) exec(ctx context.Context, op, query string, args ...any) error {
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func scanSKU(row pgx.Row) (*entity.SKU, error) {
	var s entity.SKU
	if err := row.Scan(&s.ID, &s.BasePrice, &s.ActiveDiscountID, &s.IsHidden, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
