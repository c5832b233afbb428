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
	"github.com/shopspring/decimal"
)

// DefaultKittingPrecision decimales al redondear el consumo requerido × cantidad.
const DefaultKittingPrecision = inventory.QuantityScale

// KittingUseCase calcula la factibilidad de kits y ejecuta el armado sobre el kardex.
type KittingUseCase struct {
	recorder     TransactionRecorder
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
	bomRepo      repository.BOMRepository
	precision    int32
	log          *logger.Logger
}

// NewKittingUseCase construye el caso de uso. precision < 0 usa DefaultKittingPrecision y nunca
// supera la escala de cantidades del kardex.
func NewKittingUseCase(
	recorder TransactionRecorder,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
	bomRepo repository.BOMRepository,
	precision int32,
	log *logger.Logger,
) *KittingUseCase {
	if precision < 0 {
		precision = DefaultKittingPrecision
	}
	if precision > inventory.QuantityScale {
		precision = inventory.QuantityScale
	}
	return &KittingUseCase{
		recorder:     recorder,
		productRepo:  productRepo,
		materialRepo: materialRepo,
		bomRepo:      bomRepo,
		precision:    precision,
		log:          log.Component("kitting"),
	}
}

// Options lee productos, materiales y recetas vigentes y calcula las opciones de armado.
func (uc *KittingUseCase) Options(ctx context.Context) ([]entity.KittingOption, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	materials, err := uc.materialRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	boms, err := uc.bomRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return inventory.ComputeKittingOptions(products, materials, boms), nil
}

// ExecuteKitting consume los componentes (una salida por componente resuelto) y luego ingresa
// el producto terminado. Los consumos son independientes: un fallo no detiene los demás y
// nada se revierte. El kit solo ingresa si todos los componentes resueltos se consumieron y hubo
// al menos una salida. Solo devuelve error si requestedQty no es positivo.
func (uc *KittingUseCase) ExecuteKitting(ctx context.Context, option entity.KittingOption, requestedQty int64, actor string) (*KitExecutionResult, error) {
	if requestedQty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad de kits debe ser mayor que cero", domain.ErrInvalidQuantity)
	}
	qty := decimal.NewFromInt(requestedQty)
	result := &KitExecutionResult{ProductID: option.Product.ID, Quantity: requestedQty}

	// Paso 1: consumir componentes
	failures, consumed := 0, 0
	for _, c := range option.Components {
		step := ComponentStep{
			MaterialID: c.MaterialID,
			Name:       c.Name,
			Quantity:   c.RequiredPerUnit.Mul(qty).Round(uc.precision),
		}
		// Material inexistente: no hay salida posible y el kit no puede armarse completo
		if !c.Resolved {
			failures++
			step.Skipped = true
			step.Err = fmt.Errorf("%w: material %s de la receta", domain.ErrNotFound, c.MaterialID)
			result.Components = append(result.Components, step)
			continue
		}
		// Línea sin consumo (cantidad <= 0): no hay salida que registrar
		if !step.Quantity.IsPositive() {
			step.Skipped = true
			result.Components = append(result.Components, step)
			continue
		}
		tx, err := uc.recorder.RecordTransaction(ctx, RecordTransactionInput{
			MaterialID: c.MaterialID,
			Type:       entity.TransactionOUT,
			Quantity:   step.Quantity,
			Notes:      fmt.Sprintf("Consumo para kit: %s x%d", option.Product.Name, requestedQty),
			Actor:      actor,
		})
		if err != nil {
			failures++
			step.Err = err
			uc.log.Error().Err(err).
				Str("product_id", option.Product.ID).
				Str("material_id", c.MaterialID).
				Msg("consumo de componente fallido")
		} else {
			consumed++
			step.Transaction = tx
		}
		result.Components = append(result.Components, step)
	}
	// Sin ninguna salida confirmada el ingreso del kit sería stock sin respaldo
	if consumed == 0 {
		result.Outcome = KitNothingConsumed
		uc.log.Warn().
			Str("product_id", option.Product.ID).
			Int("failures", failures).
			Msg("armado sin consumos confirmados; no se ingresa el kit")
		return result, nil
	}
	if failures > 0 {
		result.Outcome = KitPartiallyConsumed
		return result, nil
	}

	// Paso 2: ingresar producto terminado (material con el mismo código del producto)
	output, err := uc.materialRepo.GetByCode(ctx, option.Product.Code)
	if err != nil {
		result.Outcome = KitConsumed
		result.ReceiptErr = fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		return result, nil
	}
	if option.Product.Code == "" || output == nil {
		result.Outcome = KitConsumedNoReceipt
		uc.log.Warn().
			Str("product_id", option.Product.ID).
			Str("product_code", option.Product.Code).
			Msg("componentes consumidos sin material de producto terminado")
		return result, nil
	}
	receipt, err := uc.recorder.RecordTransaction(ctx, RecordTransactionInput{
		MaterialID: output.ID,
		Type:       entity.TransactionIN,
		Quantity:   qty,
		Notes:      fmt.Sprintf("Armado de kit: %s x%d", option.Product.Name, requestedQty),
		Actor:      actor,
	})
	if err != nil {
		result.Outcome = KitConsumed
		result.ReceiptErr = err
		uc.log.Error().Err(err).Str("product_id", option.Product.ID).Msg("entrada de producto terminado fallida")
		return result, nil
	}
	result.Receipt = receipt
	result.Outcome = KitConsumedAndReceived
	return result, nil
}

// ExecuteForProduct recalcula las opciones con el stock actual y arma requestedQty kits del producto.
func (uc *KittingUseCase) ExecuteForProduct(ctx context.Context, productID string, requestedQty int64, actor string) (*KitExecutionResult, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if requestedQty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad de kits debe ser mayor que cero", domain.ErrInvalidQuantity)
	}
	options, err := uc.Options(ctx)
	if err != nil {
		return nil, err
	}
	for _, opt := range options {
		if opt.Product.ID == productID {
			return uc.ExecuteKitting(ctx, opt, requestedQty, actor)
		}
	}
	return nil, fmt.Errorf("%w: producto sin receta vigente", domain.ErrNotFound)
}

// OptionsResponse opciones mapeadas a DTO, marcando el componente limitante.
func (uc *KittingUseCase) OptionsResponse(ctx context.Context) ([]dto.KittingOptionDTO, error) {
	options, err := uc.Options(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.KittingOptionDTO, 0, len(options))
	for _, opt := range options {
		out = append(out, ToKittingOptionDTO(opt))
	}
	return out, nil
}

// ExecuteFromRequest adapta el request HTTP.
func (uc *KittingUseCase) ExecuteFromRequest(ctx context.Context, actor string, in dto.ExecuteKitRequest) (*dto.KitExecutionResponse, error) {
	res, err := uc.ExecuteForProduct(ctx, in.ProductID, in.Quantity, actor)
	if err != nil {
		return nil, err
	}
	out := ToKitExecutionResponse(res)
	return &out, nil
}

// ToKittingOptionDTO mapea una opción de armado.
func ToKittingOptionDTO(opt entity.KittingOption) dto.KittingOptionDTO {
	bottleneck := opt.BottleneckIndex()
	components := make([]dto.KitComponentDTO, 0, len(opt.Components))
	for i, c := range opt.Components {
		item := dto.KitComponentDTO{
			MaterialID:      c.MaterialID,
			Name:            c.Name,
			RequiredPerUnit: c.RequiredPerUnit,
			CurrentStock:    c.CurrentStock,
		}
		if !c.Unconstrained {
			possible := c.Possible
			item.Possible = &possible
			item.Bottleneck = i == bottleneck
		}
		components = append(components, item)
	}
	return dto.KittingOptionDTO{
		ProductID:   opt.Product.ID,
		ProductCode: opt.Product.Code,
		ProductName: opt.Product.Name,
		MaxKits:     opt.MaxKits,
		Components:  components,
	}
}

// ToKitExecutionResponse mapea el resultado del armado.
func ToKitExecutionResponse(res *KitExecutionResult) dto.KitExecutionResponse {
	out := dto.KitExecutionResponse{
		ProductID:  res.ProductID,
		Quantity:   res.Quantity,
		Outcome:    string(res.Outcome),
		Status:     res.Outcome.Status(),
		Components: make([]dto.KitStepDTO, 0, len(res.Components)),
	}
	for _, s := range res.Components {
		step := dto.KitStepDTO{MaterialID: s.MaterialID, Name: s.Name, Quantity: s.Quantity, Skipped: s.Skipped}
		if s.Transaction != nil {
			step.TransactionID = s.Transaction.ID
		}
		if s.Err != nil {
			step.Error = s.Err.Error()
		}
		out.Components = append(out.Components, step)
	}
	if res.Receipt != nil {
		out.ReceiptTransactionID = res.Receipt.ID
	}
	switch res.Outcome {
	case KitConsumedNoReceipt:
		out.Warning = "producto terminado no encontrado: los componentes se consumieron pero el kit no ingresó al stock"
	case KitConsumed:
		out.Warning = "los componentes se consumieron pero la entrada del kit falló: " + res.ReceiptErr.Error()
	case KitPartiallyConsumed:
		out.Warning = "uno o más componentes no se consumieron; revise el detalle y ajuste manualmente si es necesario"
	case KitNothingConsumed:
		out.Warning = "no se consumió ningún componente; el kit no ingresó al stock"
	}
	return out
}
