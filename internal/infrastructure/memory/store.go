// Package memory implementa los repositorios sobre un estado en memoria con
// transacciones serializadas. Se usa con STORAGE_DRIVER=memory y en los tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// state contiene todas las tablas. Cada transacción trabaja sobre una copia.
type state struct {
	skus        map[string]*entity.SKU
	items       map[string]*entity.StockItem
	itemOrder   []string
	tasks       map[string]*entity.Task
	taskOrder   []string
	postings    map[string]*entity.Posting
	discounts   map[string]*entity.Discount
	acceptances map[string]*entity.Acceptance
}

func newState() *state {
	return &state{
		skus:        make(map[string]*entity.SKU),
		items:       make(map[string]*entity.StockItem),
		tasks:       make(map[string]*entity.Task),
		postings:    make(map[string]*entity.Posting),
		discounts:   make(map[string]*entity.Discount),
		acceptances: make(map[string]*entity.Acceptance),
	}
}

// clone copia mapas y registros; las entidades se tratan como valores.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.skus {
		c.skus[k] = copySKU(v)
	}
	for k, v := range s.items {
		c.items[k] = copyItem(v)
	}
	for k, v := range s.tasks {
		c.tasks[k] = copyTask(v)
	}
	for k, v := range s.postings {
		p := *v
		c.postings[k] = &p
	}
	for k, v := range s.discounts {
		d := *v
		c.discounts[k] = &d
	}
	for k, v := range s.acceptances {
		a := *v
		c.acceptances[k] = &a
	}
	c.itemOrder = append([]string(nil), s.itemOrder...)
	c.taskOrder = append([]string(nil), s.taskOrder...)
	return c
}

// Store es el dueño único del estado. Run toma el mutex durante toda la transacción,
// por lo que las transacciones no se intercalan y un error descarta la copia de trabajo.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
// No debe llamarse de forma anidada.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(reposFor(work)); err != nil {
		return err
	}
	s.state = work
	return nil
}

func reposFor(st *state) repository.Repositories {
	return repository.Repositories{
		SKUs:        &SKURepo{st: st},
		Items:       &StockItemRepo{st: st},
		Tasks:       &TaskRepo{st: st},
		Postings:    &PostingRepo{st: st},
		Discounts:   &DiscountRepo{st: st},
		Acceptances: &AcceptanceRepo{st: st},
	}
}

func copySKU(s *entity.SKU) *entity.SKU {
	c := *s
	if s.ActiveDiscountID != nil {
		id := *s.ActiveDiscountID
		c.ActiveDiscountID = &id
	}
	return &c
}

func copyItem(i *entity.StockItem) *entity.StockItem {
	c := *i
	return &c
}

func copyTask(t *entity.Task) *entity.Task {
	c := *t
	if t.ProcessID != nil {
		id := *t.ProcessID
		c.ProcessID = &id
	}
	if t.PostingID != nil {
		id := *t.PostingID
		c.PostingID = &id
	}
	return &c
}
