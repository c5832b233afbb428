// Package memory implementa los puertos de persistencia en memoria. Se usa en tests y con
// APP_STORAGE=memory; las escrituras del kardex se serializan con un único lock de escritura.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// InsertHook se invoca antes de guardar cada fila del kardex; si devuelve error la inserción falla.
type InsertHook func(tx *entity.Transaction) error

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	writeMu   sync.Mutex // serializa TxRunner.Run (equivalente al bloqueo de fila)
	materials map[string]*entity.Material
	txs       []*entity.Transaction
	products  []*entity.Product
	boms      []*entity.BOMHeader
	seq       int64
	hook      InsertHook
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{materials: make(map[string]*entity.Material)}
}

// SetInsertHook permite simular fallos de persistencia al insertar en el kardex.
func (s *Store) SetInsertHook(h InsertHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = h
}

// AddProduct registra un producto terminado.
func (s *Store) AddProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products = append(s.products, &cp)
}

// AddBOM registra una receta con sus líneas.
func (s *Store) AddBOM(h *entity.BOMHeader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boms = append(s.boms, cloneBOM(h))
}

// nextSeq requiere s.mu tomado.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func (s *Store) insertLocked(tx *entity.Transaction) error {
	if s.hook != nil {
		if err := s.hook(tx); err != nil {
			return err
		}
	}
	cp := *tx
	cp.Sequence = s.nextSeq()
	tx.Sequence = cp.Sequence
	s.txs = append(s.txs, &cp)
	return nil
}

func (s *Store) referencedLocked(materialID string) bool {
	for _, tx := range s.txs {
		if tx.MaterialID == materialID {
			return true
		}
	}
	for _, b := range s.boms {
		for _, item := range b.Items {
			if item.MaterialID == materialID {
				return true
			}
		}
	}
	return false
}

func (s *Store) sortedMaterialsLocked() []*entity.Material {
	out := make([]*entity.Material, 0, len(s.materials))
	for _, m := range s.materials {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func cloneBOM(h *entity.BOMHeader) *entity.BOMHeader {
	cp := *h
	cp.Items = append([]entity.BOMItem(nil), h.Items...)
	return &cp
}
