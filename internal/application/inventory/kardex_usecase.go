package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// KardexUseCase lecturas derivadas del kardex de un material: conciliación y PDF.
type KardexUseCase struct {
	materialRepo repository.MaterialRepository
	txRepo       repository.TransactionRepository
	pdf          KardexPDFGenerator
	log          *logger.Logger
}

// NewKardexUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewKardexUseCase(
	materialRepo repository.MaterialRepository,
	txRepo repository.TransactionRepository,
	pdf KardexPDFGenerator,
	log *logger.Logger,
) *KardexUseCase {
	return &KardexUseCase{
		materialRepo: materialRepo,
		txRepo:       txRepo,
		pdf:          pdf,
		log:          log.Component("kardex"),
	}
}

// Reconcile reconstruye el stock desde la apertura plegando el kardex y lo compara con el stock guardado.
func (uc *KardexUseCase) Reconcile(ctx context.Context, materialID string) (*dto.ReconcileResponse, error) {
	material, txs, err := uc.load(ctx, materialID)
	if err != nil {
		return nil, err
	}
	replayed := inventory.ReplayStock(material.InitialStock, txs)
	drift := material.CurrentStock.Sub(replayed)
	if !drift.IsZero() {
		uc.log.Warn().
			Str("material_id", material.ID).
			Str("current_stock", material.CurrentStock.String()).
			Str("replayed_stock", replayed.String()).
			Msg("stock descuadrado respecto al kardex")
	}
	return &dto.ReconcileResponse{
		MaterialID:    material.ID,
		OpeningStock:  material.InitialStock,
		CurrentStock:  material.CurrentStock,
		ReplayedStock: replayed,
		Drift:         drift,
		Consistent:    drift.IsZero(),
		Transactions:  len(txs),
	}, nil
}

// KardexPDF genera el kardex imprimible del material en orden cronológico.
func (uc *KardexUseCase) KardexPDF(ctx context.Context, materialID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("%w: exportación PDF no configurada", domain.ErrInvalidInput)
	}
	material, txs, err := uc.load(ctx, materialID)
	if err != nil {
		return nil, err
	}
	out, err := uc.pdf.GenerateKardexPDF(ctx, material, inventory.Chronological(txs))
	if err != nil {
		return nil, fmt.Errorf("generar kardex pdf: %w", err)
	}
	return out, nil
}

func (uc *KardexUseCase) load(ctx context.Context, materialID string) (*entity.Material, []*entity.Transaction, error) {
	if materialID == "" {
		return nil, nil, fmt.Errorf("%w: material_id requerido", domain.ErrInvalidInput)
	}
	material, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if material == nil {
		return nil, nil, domain.ErrNotFound
	}
	// Limit 0: kardex completo del material
	txs, err := uc.txRepo.List(ctx, entity.TransactionFilter{MaterialID: materialID})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return material, txs, nil
}
