package inventory

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El stock/costo del material y la fila del kardex se confirman juntos o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// TransactionRecorder contrato mínimo que usa el orquestador de kits para escribir en el kardex.
type TransactionRecorder interface {
	RecordTransaction(ctx context.Context, in RecordTransactionInput) (*entity.Transaction, error)
}

// KardexPDFGenerator genera la representación imprimible del kardex de un material.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, material *entity.Material, txs []*entity.Transaction) ([]byte, error)
}
