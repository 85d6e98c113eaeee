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

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const itemColumns = `id, sku_id, stock, reserved, on_shelf, markdown, actual_price, created_at`

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de unidades. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Create persiste una unidad nueva.
func (r *StockItemRepo) Create(ctx context.Context, i *entity.StockItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		i.ID, i.SKUID, string(i.Stock), i.Reserved, i.OnShelf, i.Markdown, i.ActualPrice, i.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert stock item %s: %w", i.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad. Retorna (nil, nil) si no existe.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM stock_items WHERE id = $1`, id)
}

// GetForUpdate obtiene la unidad y bloquea la fila (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM stock_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockItemRepo) get(ctx context.Context, query string, args ...any) (*entity.StockItem, error) {
	i, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return i, nil
}

// ListBySKU lista las unidades del SKU en orden de creación.
func (r *StockItemRepo) ListBySKU(ctx context.Context, skuID string) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM stock_items WHERE sku_id = $1 ORDER BY created_at, id`, skuID)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Update persiste clase, reserva, ubicación y rebaja. El precio se escribe con UpdatePrice.
func (r *StockItemRepo) Update(ctx context.Context, i *entity.StockItem) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_items SET stock = $2, reserved = $3, on_shelf = $4, markdown = $5
		WHERE id = $1`,
		i.ID, string(i.Stock), i.Reserved, i.OnShelf, i.Markdown,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update stock item %s: %w", i.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdatePrice escribe actual_price.
func (r *StockItemRepo) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE stock_items SET actual_price = $2 WHERE id = $1`, id, price)
	if err != nil {
		return fmt.Errorf("update stock item price: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update stock item price %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// TryReserve update condicional reserved=false→true; false si ninguna fila cumplió la condición.
func (r *StockItemRepo) TryReserve(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_items SET reserved = true
		WHERE id = $1 AND reserved = false AND on_shelf = true`, id)
	if err != nil {
		return false, fmt.Errorf("reserve stock item: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// FindSubstitute toma la unidad reservable más antigua del SKU y clase, saltando filas
// bloqueadas por otras transacciones.
func (r *StockItemRepo) FindSubstitute(ctx context.Context, skuID string, class entity.StockClass, excludeID string) (*entity.StockItem, error) {
	return r.get(ctx, `
		SELECT `+itemColumns+` FROM stock_items
		WHERE sku_id = $1 AND stock = $2 AND id <> $3 AND reserved = false AND on_shelf = true
		ORDER BY created_at, id
		LIMIT 1
		FOR UPDATE SKIP LOCKED`, skuID, string(class), excludeID)
}

func scanItem(row pgx.Row) (*entity.StockItem, error) {
	var i entity.StockItem
	if err := row.Scan(&i.ID, &i.SKUID, &i.Stock, &i.Reserved, &i.OnShelf, &i.Markdown, &i.ActualPrice, &i.CreatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}
