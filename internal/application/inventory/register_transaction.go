package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/pkg/numparse"
	"github.com/shopspring/decimal"
)

// RecordTransactionFromRequest adapta el request HTTP al caso de uso: normaliza las cantidades
// con numparse y resuelve el valor de compra.
func (uc *LedgerUseCase) RecordTransactionFromRequest(ctx context.Context, actor string, in dto.RecordTransactionRequest) (*dto.TransactionResponse, error) {
	txType := entity.TransactionType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if !txType.IsValid() {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
	}
	if isBlank(in.Quantity) {
		return nil, fmt.Errorf("%w: quantity requerido", domain.ErrInvalidQuantity)
	}
	qty, err := parseQuantity(in.Quantity, "quantity")
	if err != nil {
		return nil, err
	}
	purchaseTotal, err := resolvePurchaseTotal(qty, in.PurchaseTotal, in.UnitCost)
	if err != nil {
		return nil, err
	}

	tx, err := uc.RecordTransaction(ctx, RecordTransactionInput{
		MaterialID:    in.MaterialID,
		Type:          txType,
		Quantity:      qty,
		Notes:         strings.TrimSpace(in.Notes),
		PurchaseTotal: purchaseTotal,
		Actor:         actor,
	})
	if err != nil {
		return nil, err
	}
	out := ToTransactionResponse(tx)
	return &out, nil
}

// ListTransactionsFromRequest aplica la paginación por defecto y mapea a DTO.
func (uc *LedgerUseCase) ListTransactionsFromRequest(ctx context.Context, in dto.ListTransactionsRequest) (*dto.TransactionListResponse, error) {
	in.DefaultPage()
	txs, err := uc.ListTransactions(ctx, entity.TransactionFilter{
		MaterialID: in.MaterialID,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, ToTransactionResponse(tx))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ToTransactionResponse mapea una fila del kardex a DTO.
func ToTransactionResponse(tx *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:             tx.ID,
		MaterialID:     tx.MaterialID,
		Type:           string(tx.Type),
		Quantity:       tx.Quantity,
		Notes:          tx.Notes,
		Actor:          tx.Actor,
		PreviousStock:  tx.PreviousStock,
		ResultingStock: tx.ResultingStock,
		CreatedAt:      tx.CreatedAt,
	}
}

// resolvePurchaseTotal: PurchaseTotal explícito gana; si solo hay costo unitario, total = costo × cantidad.
func resolvePurchaseTotal(qty decimal.Decimal, purchaseTotal, unitCost any) (*decimal.Decimal, error) {
	if isBlank(purchaseTotal) && isBlank(unitCost) {
		return nil, nil
	}
	if !isBlank(purchaseTotal) {
		total, err := parseQuantity(purchaseTotal, "purchase_total")
		if err != nil {
			return nil, err
		}
		return &total, nil
	}
	cost, err := parseQuantity(unitCost, "unit_cost")
	if err != nil {
		return nil, err
	}
	total := cost.Mul(qty)
	return &total, nil
}

func parseQuantity(v any, field string) (decimal.Decimal, error) {
	d, err := numparse.Parse(v)
	if err != nil {
		if errors.Is(err, numparse.ErrNotANumber) {
			return decimal.Zero, fmt.Errorf("%w: %s no numérico", domain.ErrInvalidQuantity, field)
		}
		return decimal.Zero, err
	}
	return d, nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
