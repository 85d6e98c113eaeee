// Package acceptance registra recepciones de mercancía: una tarea de placing por unidad.
package acceptance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/Fulfillment-api/pkg/logger"
)

// UseCase casos de uso de recepción.
type UseCase struct {
	tx  ports.TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, log: log, now: time.Now}
}

// Create crea la recepción y una tarea de placing in_work por cada unidad, cada una con
// un id de unidad nuevo y el id de la recepción como process_id.
// El esquema de la solicitud ya garantiza count > 0 y clase valid|defect.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateAcceptanceRequest) (*dto.IDResponse, error) {
	if len(in.ItemsToAccept) == 0 {
		return nil, fmt.Errorf("items_to_accept vacío: %w", domain.ErrInvalidInput)
	}
	now := uc.now()
	acc := &entity.Acceptance{ID: uuid.New().String(), CreatedAt: now}

	var tasks int
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		for _, line := range in.ItemsToAccept {
			class := entity.StockClass(line.Stock)
			if !class.Orderable() || line.Count <= 0 {
				return fmt.Errorf("línea %s/%s/%d: %w", line.SKUID, line.Stock, line.Count, domain.ErrInvalidInput)
			}
			for i := 0; i < line.Count; i++ {
				t := entity.NewPlacingTask(line.SKUID, class, uuid.New().String(), &acc.ID, now)
				if err := repos.Tasks.Create(ctx, t); err != nil {
					return err
				}
				tasks++
			}
		}
		return repos.Acceptances.Create(ctx, acc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("acceptance_id", acc.ID).Int("tasks", tasks).Msg("recepción registrada")
	return &dto.IDResponse{ID: acc.ID}, nil
}

// Get retorna la recepción con el conteo de unidades por SKU y clase y sus tareas.
func (uc *UseCase) Get(ctx context.Context, acceptanceID string) (*dto.AcceptanceResponse, error) {
	var out *dto.AcceptanceResponse
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		acc, err := repos.Acceptances.GetByID(ctx, acceptanceID)
		if err != nil {
			return err
		}
		if acc == nil {
			return fmt.Errorf("recepción %s: %w", acceptanceID, domain.ErrNotFound)
		}
		tasks, err := repos.Tasks.ListByProcess(ctx, acc.ID)
		if err != nil {
			return err
		}
		out = &dto.AcceptanceResponse{
			ID:        acc.ID,
			CreatedAt: acc.CreatedAt,
			Accepted:  make([]dto.AcceptedCountDTO, 0),
			Tasks:     make([]dto.TaskSummaryDTO, 0, len(tasks)),
		}
		idx := make(map[string]int)
		for _, t := range tasks {
			out.Tasks = append(out.Tasks, dto.TaskSummaryDTO{ID: t.ID, Type: string(t.Type), Status: string(t.Status)})
			key := t.SKUID + "/" + string(t.Stock)
			i, ok := idx[key]
			if !ok {
				i = len(out.Accepted)
				idx[key] = i
				out.Accepted = append(out.Accepted, dto.AcceptedCountDTO{SKUID: t.SKUID, Stock: string(t.Stock)})
			}
			out.Accepted[i].Count++
		}
		return nil
	})
	return out, err
}
