package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC *usecase.MaterialUseCase
	LedgerUC   *inventory.LedgerUseCase
	KittingUC  *inventory.KittingUseCase
	KardexUC   *inventory.KardexUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.KardexUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/summary", materialHandler.Summary)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Delete("/:id", materialHandler.Delete)
	materials.Get("/:id/reconcile", materialHandler.Reconcile)
	materials.Get("/:id/kardex.pdf", materialHandler.KardexPDF)

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Post("/transactions", inventoryHandler.RecordTransaction)
	invGroup.Get("/transactions", inventoryHandler.ListTransactions)

	kitting := api.Group("/kitting")
	kittingHandler := NewKittingHandler(deps.KittingUC)
	kitting.Get("/options", kittingHandler.Options)
	kitting.Post("/execute", kittingHandler.Execute)
}
