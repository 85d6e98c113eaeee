package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/task"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// TaskHandler maneja la finalización y consulta de tareas.
type TaskHandler struct {
	uc *task.UseCase
}

// NewTaskHandler construye el handler.
func NewTaskHandler(uc *task.UseCase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Finish godoc
// @Summary      Finalizar tarea
// @Description  Completa o cancela una tarea en curso. Un picking completado puede terminar
// @Description  cancelado si la unidad se pierde; el estado persistido se devuelve en la respuesta.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la tarea"
// @Param        body  body  dto.FinishTaskRequest  true  "completed | canceled"
// @Success      200   {object}  dto.FinishTaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "CONFLICT o UNFULFILLABLE"
// @Router       /api/tasks/{id}/finish [post]
func (h *TaskHandler) Finish(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.FinishTaskRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Finish(c.UserContext(), id, entity.TaskStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tarea
// @Tags         tasks
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
