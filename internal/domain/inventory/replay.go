package inventory

import (
	"sort"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Chronological copia de txs ordenada del más antiguo al más reciente.
func Chronological(txs []*entity.Transaction) []*entity.Transaction {
	out := make([]*entity.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out
}

// ReplayStock reconstruye el stock desde el stock de apertura plegando el kardex en orden
// de creación: IN suma, OUT resta, ADJ fija.
func ReplayStock(opening decimal.Decimal, txs []*entity.Transaction) decimal.Decimal {
	stock := opening
	for _, tx := range Chronological(txs) {
		stock = stock.Add(SignedDelta(tx.Type, tx.Quantity, stock))
	}
	return stock
}
