package seed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
)

// LoadMemory carga el catálogo en el almacén en memoria.
func LoadMemory(ctx context.Context, store *memory.Store, data *Data) error {
	materials := memory.NewMaterialRepository(store)
	for _, m := range data.Materials {
		if err := materials.Create(ctx, m); err != nil {
			return fmt.Errorf("material %s: %w", m.Code, err)
		}
	}
	for _, p := range data.Products {
		store.AddProduct(p)
	}
	for _, b := range data.BOMs {
		store.AddBOM(b)
	}
	return nil
}

// WriteSQL escribe el catálogo como INSERT idempotentes (ON CONFLICT DO NOTHING).
func WriteSQL(w io.Writer, data *Data) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial de materiales, productos y recetas\n")
	fmt.Fprintf(&b, "-- Generado %s\n\n", time.Now().UTC().Format(time.RFC3339))

	b.WriteString("-- 1. Materiales\n")
	for _, m := range data.Materials {
		fmt.Fprintf(&b, "INSERT INTO materials (id, code, name, category, material_group, unit, current_stock, initial_stock, unit_cost, min_stock)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', %s, %s, %s, %s)\n",
			m.ID, escapeSQL(m.Code), escapeSQL(m.Name), escapeSQL(string(m.Category)), escapeSQL(m.Group), escapeSQL(m.Unit),
			m.CurrentStock.String(), m.InitialStock.String(), m.UnitCost.String(), m.MinStock.String())
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n")
	}

	b.WriteString("\n-- 2. Productos\n")
	for _, p := range data.Products {
		fmt.Fprintf(&b, "INSERT INTO products (id, code, name) VALUES ('%s', '%s', '%s') ON CONFLICT (id) DO NOTHING;\n",
			p.ID, escapeSQL(p.Code), escapeSQL(p.Name))
	}

	b.WriteString("\n-- 3. Recetas\n")
	for _, h := range data.BOMs {
		writeBOM(&b, h)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeBOM(b *strings.Builder, h *entity.BOMHeader) {
	fmt.Fprintf(b, "INSERT INTO bom_headers (id, product_id, status) VALUES ('%s', '%s', '%s') ON CONFLICT (id) DO NOTHING;\n",
		h.ID, h.ProductID, escapeSQL(h.Status))
	for i, it := range h.Items {
		fmt.Fprintf(b, "INSERT INTO bom_items (bom_id, position, material_id, quantity) VALUES ('%s', %d, '%s', %s) ON CONFLICT DO NOTHING;\n",
			h.ID, i+1, it.MaterialID, it.Quantity.String())
	}
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
