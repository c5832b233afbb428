package memory

import (
	"context"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta fn con repositorios que acumulan los cambios y los confirman juntos al final.
// Si fn devuelve error no se aplica nada.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run serializa las escrituras: mientras fn corre ningún otro Run puede leer stock para escribir.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	txRepo repository.TransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.writeMu.Lock()
	defer r.s.writeMu.Unlock()

	tx := &pendingTx{s: r.s, materials: make(map[string]*entity.Material)}
	if err := fn(&txMaterialRepo{MaterialRepository: NewMaterialRepository(r.s), tx: tx}, &txTransactionRepo{TransactionRepository: NewTransactionRepository(r.s), tx: tx}); err != nil {
		return err
	}
	return tx.commit()
}

type pendingTx struct {
	s         *Store
	materials map[string]*entity.Material
	txs       []*entity.Transaction
}

func (p *pendingTx) commit() error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for id, m := range p.materials {
		if _, ok := p.s.materials[id]; !ok {
			return domain.ErrNotFound
		}
		cp := *m
		p.s.materials[id] = &cp
	}
	for _, tx := range p.txs {
		cp := *tx
		p.s.txs = append(p.s.txs, &cp)
	}
	return nil
}

type txMaterialRepo struct {
	repository.MaterialRepository
	tx *pendingTx
}

func (r *txMaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	if m, ok := r.tx.materials[id]; ok {
		cp := *m
		return &cp, nil
	}
	return r.MaterialRepository.GetByID(ctx, id)
}

func (r *txMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

func (r *txMaterialRepo) UpdateStockAndCost(ctx context.Context, id string, stock, unitCost decimal.Decimal) error {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	m.UnitCost = unitCost
	m.UpdatedAt = time.Now()
	r.tx.materials[id] = m
	return nil
}

type txTransactionRepo struct {
	repository.TransactionRepository
	tx *pendingTx
}

// Create valida con el hook y reserva Sequence; la fila queda visible solo tras el commit.
func (r *txTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	s := r.tx.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hook != nil {
		if err := s.hook(tx); err != nil {
			return err
		}
	}
	tx.Sequence = s.nextSeq()
	cp := *tx
	r.tx.txs = append(r.tx.txs, &cp)
	return nil
}
