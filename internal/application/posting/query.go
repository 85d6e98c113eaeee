package posting

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// snapshot lectura consistente de un pedido, sus tareas y las unidades referenciadas.
type snapshot struct {
	posting *entity.Posting
	tasks   []*entity.Task
	items   map[string]*entity.StockItem
}

func (uc *UseCase) load(ctx context.Context, postingID string) (*snapshot, error) {
	var s snapshot
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Postings.GetByID(ctx, postingID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("pedido %s: %w", postingID, domain.ErrNotFound)
		}
		tasks, err := repos.Tasks.ListByPosting(ctx, postingID)
		if err != nil {
			return err
		}
		items := make(map[string]*entity.StockItem, len(tasks))
		for _, t := range tasks {
			if _, ok := items[t.ItemID]; ok {
				continue
			}
			item, err := repos.Items.GetByID(ctx, t.ItemID)
			if err != nil {
				return err
			}
			if item != nil {
				items[t.ItemID] = item
			}
		}
		s = snapshot{posting: p, tasks: tasks, items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// cost suma el precio efectivo de las unidades encontradas detrás de tareas no canceladas.
func (s *snapshot) cost() decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.tasks {
		if t.Status == entity.TaskCanceled {
			continue
		}
		if item, ok := s.items[t.ItemID]; ok && item.Stock != entity.StockNotFound {
			total = total.Add(item.ActualPrice)
		}
	}
	return total
}

// GetInfo retorna el pedido con su costo, unidades pedidas por SKU, unidades perdidas y tareas.
func (uc *UseCase) GetInfo(ctx context.Context, postingID string) (*dto.PostingResponse, error) {
	s, err := uc.load(ctx, postingID)
	if err != nil {
		return nil, err
	}

	goods := make([]dto.OrderedGoodsDTO, 0)
	bySKU := make(map[string]int)
	seen := make(map[string]struct{})
	notFound := make([]string, 0)
	tasks := make([]dto.TaskSummaryDTO, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, dto.TaskSummaryDTO{ID: t.ID, Type: string(t.Type), Status: string(t.Status)})
		if _, dup := seen[t.ItemID]; dup {
			continue
		}
		seen[t.ItemID] = struct{}{}

		idx, ok := bySKU[t.SKUID]
		if !ok {
			idx = len(goods)
			bySKU[t.SKUID] = idx
			goods = append(goods, dto.OrderedGoodsDTO{SKU: t.SKUID, FromValidIDs: []string{}, FromDefectIDs: []string{}})
		}
		switch t.Stock {
		case entity.StockValid:
			goods[idx].FromValidIDs = append(goods[idx].FromValidIDs, t.ItemID)
		case entity.StockDefect:
			goods[idx].FromDefectIDs = append(goods[idx].FromDefectIDs, t.ItemID)
		}
		if item, ok := s.items[t.ItemID]; ok && item.Stock == entity.StockNotFound {
			notFound = append(notFound, t.ItemID)
		}
	}

	return &dto.PostingResponse{
		ID:           s.posting.ID,
		Status:       string(s.posting.Status),
		CreatedAt:    s.posting.CreatedAt,
		Cost:         s.cost(),
		OrderedGoods: goods,
		NotFound:     notFound,
		Tasks:        tasks,
	}, nil
}

// ErrPickListUnavailable el servidor no tiene generador de PDF configurado.
var ErrPickListUnavailable = errors.New("generador de hoja de picking no configurado")

// PickListPDF renderiza la hoja de picking del pedido. Retorna los bytes y el nombre de archivo.
func (uc *UseCase) PickListPDF(ctx context.Context, postingID string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", ErrPickListUnavailable
	}
	s, err := uc.load(ctx, postingID)
	if err != nil {
		return nil, "", err
	}
	list := PickList{
		PostingID: s.posting.ID,
		Status:    string(s.posting.Status),
		CreatedAt: s.posting.CreatedAt,
		Cost:      s.cost(),
	}
	for _, t := range s.tasks {
		line := PickListLine{TaskID: t.ID, SKUID: t.SKUID, ItemID: t.ItemID, Stock: string(t.Stock), Status: string(t.Status)}
		if item, ok := s.items[t.ItemID]; ok {
			line.Stock = string(item.Stock)
			line.ActualPrice = item.ActualPrice
		}
		list.Lines = append(list.Lines, line)
	}
	b, err := uc.pdf.Generate(list)
	if err != nil {
		return nil, "", fmt.Errorf("pick list pdf: %w", err)
	}
	return b, fmt.Sprintf("picking-%s.pdf", s.posting.ID), nil
}
