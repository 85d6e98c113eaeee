package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fulfillment-api/internal/application/acceptance"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/ledger"
	"github.com/jhoicas/Fulfillment-api/internal/application/posting"
	"github.com/jhoicas/Fulfillment-api/internal/application/task"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	Ledger      *ledger.UseCase
	Tasks       *task.UseCase
	Postings    *posting.UseCase
	Acceptances *acceptance.UseCase
	// Ping verifica el almacenamiento en /health. Opcional.
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")

	acceptanceHandler := NewAcceptanceHandler(deps.Acceptances)
	acceptances := api.Group("/acceptances")
	acceptances.Post("/", acceptanceHandler.Create)
	acceptances.Get("/:id", acceptanceHandler.GetByID)

	discountHandler := NewDiscountHandler(deps.Ledger)
	discounts := api.Group("/discounts")
	discounts.Post("/", discountHandler.Create)
	discounts.Get("/:id", discountHandler.GetByID)
	discounts.Post("/:id/cancel", discountHandler.Cancel)

	stockHandler := NewStockHandler(deps.Ledger)
	items := api.Group("/items")
	items.Get("/:id", stockHandler.GetItem)
	items.Post("/:id/markdown", stockHandler.SetMarkdown)
	items.Post("/:id/not-found", stockHandler.MoveToNotFound)

	skus := api.Group("/skus")
	skus.Get("/:id", stockHandler.GetSku)
	skus.Get("/:id/items", stockHandler.ListItems)
	skus.Put("/:id/price", stockHandler.SetPrice)
	skus.Put("/:id/hidden", stockHandler.SetHidden)

	postingHandler := NewPostingHandler(deps.Postings)
	postings := api.Group("/postings")
	postings.Post("/", postingHandler.Create)
	postings.Get("/:id", postingHandler.GetByID)
	postings.Get("/:id/pick-list", postingHandler.PickList)
	postings.Post("/:id/cancel", postingHandler.Cancel)

	taskHandler := NewTaskHandler(deps.Tasks)
	tasks := api.Group("/tasks")
	tasks.Get("/:id", taskHandler.GetByID)
	tasks.Post("/:id/finish", taskHandler.Finish)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	}
}
