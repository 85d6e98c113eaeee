package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.SKURepository        = (*SKURepo)(nil)
	_ repository.StockItemRepository  = (*StockItemRepo)(nil)
	_ repository.TaskRepository       = (*TaskRepo)(nil)
	_ repository.PostingRepository    = (*PostingRepo)(nil)
	_ repository.DiscountRepository   = (*DiscountRepo)(nil)
	_ repository.AcceptanceRepository = (*AcceptanceRepo)(nil)
)

// ── SKU ─────────────────────────────────────────────────────────────────────

// SKURepo SKURepository sobre el estado de una transacción.
type SKURepo struct{ st *state }

func (r *SKURepo) CreateIfAbsent(_ context.Context, sku *entity.SKU) error {
	if _, ok := r.st.skus[sku.ID]; ok {
		return nil
	}
	r.st.skus[sku.ID] = copySKU(sku)
	return nil
}

func (r *SKURepo) GetByID(_ context.Context, id string) (*entity.SKU, error) {
	s, ok := r.st.skus[id]
	if !ok {
		return nil, nil
	}
	return copySKU(s), nil
}

// GetForUpdate equivale a GetByID: la transacción ya es exclusiva.
func (r *SKURepo) GetForUpdate(ctx context.Context, id string) (*entity.SKU, error) {
	return r.GetByID(ctx, id)
}

func (r *SKURepo) ListByDiscount(_ context.Context, discountID string) ([]*entity.SKU, error) {
	var out []*entity.SKU
	for _, s := range r.st.skus {
		if s.ActiveDiscountID != nil && *s.ActiveDiscountID == discountID {
			out = append(out, copySKU(s))
		}
	}
	sortByID(out, func(s *entity.SKU) string { return s.ID })
	return out, nil
}

func (r *SKURepo) UpdateBasePrice(_ context.Context, id string, price decimal.Decimal) error {
	s, ok := r.st.skus[id]
	if !ok {
		return fmt.Errorf("update base price %s: %w", id, domain.ErrNotFound)
	}
	s.BasePrice = price
	return nil
}

func (r *SKURepo) SetActiveDiscount(_ context.Context, id string, discountID *string) error {
	s, ok := r.st.skus[id]
	if !ok {
		return fmt.Errorf("set discount %s: %w", id, domain.ErrNotFound)
	}
	if discountID == nil {
		s.ActiveDiscountID = nil
		return nil
	}
	d := *discountID
	s.ActiveDiscountID = &d
	return nil
}

func (r *SKURepo) SetHidden(_ context.Context, id string, hidden bool) error {
	s, ok := r.st.skus[id]
	if !ok {
		return fmt.Errorf("set hidden %s: %w", id, domain.ErrNotFound)
	}
	s.IsHidden = hidden
	return nil
}

// ── StockItem ───────────────────────────────────────────────────────────────

// StockItemRepo StockItemRepository sobre el estado de una transacción.
type StockItemRepo struct{ st *state }

func (r *StockItemRepo) Create(_ context.Context, item *entity.StockItem) error {
	if _, ok := r.st.items[item.ID]; ok {
		return fmt.Errorf("create item %s: %w", item.ID, domain.ErrConflict)
	}
	r.st.items[item.ID] = copyItem(item)
	r.st.itemOrder = append(r.st.itemOrder, item.ID)
	return nil
}

func (r *StockItemRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	i, ok := r.st.items[id]
	if !ok {
		return nil, nil
	}
	return copyItem(i), nil
}

func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *StockItemRepo) ListBySKU(_ context.Context, skuID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, id := range r.st.itemOrder {
		if i := r.st.items[id]; i.SKUID == skuID {
			out = append(out, copyItem(i))
		}
	}
	return out, nil
}

func (r *StockItemRepo) Update(_ context.Context, item *entity.StockItem) error {
	cur, ok := r.st.items[item.ID]
	if !ok {
		return fmt.Errorf("update item %s: %w", item.ID, domain.ErrNotFound)
	}
	cur.Stock = item.Stock
	cur.Reserved = item.Reserved
	cur.OnShelf = item.OnShelf
	cur.Markdown = item.Markdown
	return nil
}

func (r *StockItemRepo) UpdatePrice(_ context.Context, id string, price decimal.Decimal) error {
	cur, ok := r.st.items[id]
	if !ok {
		return fmt.Errorf("update item price %s: %w", id, domain.ErrNotFound)
	}
	cur.ActualPrice = price
	return nil
}

func (r *StockItemRepo) TryReserve(_ context.Context, id string) (bool, error) {
	cur, ok := r.st.items[id]
	if !ok || cur.Reserved || !cur.OnShelf {
		return false, nil
	}
	cur.Reserved = true
	return true, nil
}

func (r *StockItemRepo) FindSubstitute(_ context.Context, skuID string, class entity.StockClass, excludeID string) (*entity.StockItem, error) {
	for _, id := range r.st.itemOrder {
		i := r.st.items[id]
		if id != excludeID && i.SKUID == skuID && i.Reservable(class) {
			return copyItem(i), nil
		}
	}
	return nil, nil
}

// ── Task ────────────────────────────────────────────────────────────────────

// TaskRepo TaskRepository sobre el estado de una transacción.
type TaskRepo struct{ st *state }

func (r *TaskRepo) Create(_ context.Context, task *entity.Task) error {
	if _, ok := r.st.tasks[task.ID]; ok {
		return fmt.Errorf("create task %s: %w", task.ID, domain.ErrConflict)
	}
	r.st.tasks[task.ID] = copyTask(task)
	r.st.taskOrder = append(r.st.taskOrder, task.ID)
	return nil
}

func (r *TaskRepo) GetByID(_ context.Context, id string) (*entity.Task, error) {
	t, ok := r.st.tasks[id]
	if !ok {
		return nil, nil
	}
	return copyTask(t), nil
}

func (r *TaskRepo) GetForUpdate(ctx context.Context, id string) (*entity.Task, error) {
	return r.GetByID(ctx, id)
}

func (r *TaskRepo) UpdateStatus(_ context.Context, id string, status entity.TaskStatus) error {
	t, ok := r.st.tasks[id]
	if !ok {
		return fmt.Errorf("update task %s: %w", id, domain.ErrNotFound)
	}
	t.Status = status
	return nil
}

func (r *TaskRepo) ListByPosting(_ context.Context, postingID string) ([]*entity.Task, error) {
	return r.filter(func(t *entity.Task) bool {
		return t.PostingID != nil && *t.PostingID == postingID
	}), nil
}

func (r *TaskRepo) ListByPostingForUpdate(ctx context.Context, postingID string) ([]*entity.Task, error) {
	return r.ListByPosting(ctx, postingID)
}

func (r *TaskRepo) ListByProcess(_ context.Context, processID string) ([]*entity.Task, error) {
	return r.filter(func(t *entity.Task) bool {
		return t.ProcessID != nil && *t.ProcessID == processID
	}), nil
}

func (r *TaskRepo) ListByItem(_ context.Context, itemID string) ([]*entity.Task, error) {
	return r.filter(func(t *entity.Task) bool { return t.ItemID == itemID }), nil
}

func (r *TaskRepo) CountByPosting(ctx context.Context, postingID string) (int, int, error) {
	tasks, _ := r.ListByPosting(ctx, postingID)
	var inWork, completed int
	for _, t := range tasks {
		switch t.Status {
		case entity.TaskInWork:
			inWork++
		case entity.TaskCompleted:
			completed++
		}
	}
	return inWork, completed, nil
}

func (r *TaskRepo) filter(keep func(*entity.Task) bool) []*entity.Task {
	var out []*entity.Task
	for _, id := range r.st.taskOrder {
		if t := r.st.tasks[id]; keep(t) {
			out = append(out, copyTask(t))
		}
	}
	return out
}

// ── Posting / Discount / Acceptance ────────────────────────────────────────

// PostingRepo PostingRepository sobre el estado de una transacción.
type PostingRepo struct{ st *state }

func (r *PostingRepo) Create(_ context.Context, p *entity.Posting) error {
	if _, ok := r.st.postings[p.ID]; ok {
		return fmt.Errorf("create posting %s: %w", p.ID, domain.ErrConflict)
	}
	c := *p
	r.st.postings[p.ID] = &c
	return nil
}

func (r *PostingRepo) GetByID(_ context.Context, id string) (*entity.Posting, error) {
	p, ok := r.st.postings[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *PostingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Posting, error) {
	return r.GetByID(ctx, id)
}

func (r *PostingRepo) UpdateStatus(_ context.Context, id string, status entity.PostingStatus) error {
	p, ok := r.st.postings[id]
	if !ok {
		return fmt.Errorf("update posting %s: %w", id, domain.ErrNotFound)
	}
	p.Status = status
	return nil
}

// DiscountRepo DiscountRepository sobre el estado de una transacción.
type DiscountRepo struct{ st *state }

func (r *DiscountRepo) Create(_ context.Context, d *entity.Discount) error {
	if _, ok := r.st.discounts[d.ID]; ok {
		return fmt.Errorf("create discount %s: %w", d.ID, domain.ErrConflict)
	}
	c := *d
	r.st.discounts[d.ID] = &c
	return nil
}

func (r *DiscountRepo) GetByID(_ context.Context, id string) (*entity.Discount, error) {
	d, ok := r.st.discounts[id]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (r *DiscountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Discount, error) {
	return r.GetByID(ctx, id)
}

func (r *DiscountRepo) UpdateStatus(_ context.Context, id string, status entity.DiscountStatus) error {
	d, ok := r.st.discounts[id]
	if !ok {
		return fmt.Errorf("update discount %s: %w", id, domain.ErrNotFound)
	}
	d.Status = status
	return nil
}

// AcceptanceRepo AcceptanceRepository sobre el estado de una transacción.
type AcceptanceRepo struct{ st *state }

func (r *AcceptanceRepo) Create(_ context.Context, a *entity.Acceptance) error {
	if _, ok := r.st.acceptances[a.ID]; ok {
		return fmt.Errorf("create acceptance %s: %w", a.ID, domain.ErrConflict)
	}
	c := *a
	r.st.acceptances[a.ID] = &c
	return nil
}

func (r *AcceptanceRepo) GetByID(_ context.Context, id string) (*entity.Acceptance, error) {
	a, ok := r.st.acceptances[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}
