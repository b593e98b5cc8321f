package http

import (
	"context"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/view"
	"github.com/jhoicas/inventario-console/internal/application/workspace"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Las caches se llenan al primer uso dentro de la sesión; las lecturas siguientes
// se sirven desde memoria hasta un refresh explícito.

func ensureMovements(ctx context.Context, ws *workspace.Workspace) error {
	if ws.Movements.Loaded() {
		return nil
	}
	return ws.Movements.FetchAll(ctx)
}

func ensureItems(ctx context.Context, ws *workspace.Workspace) error {
	if ws.Items.Loaded() {
		return nil
	}
	return ws.Items.FetchAll(ctx)
}

func ensureCatalogs(ctx context.Context, ws *workspace.Workspace) error {
	if ws.Catalogs.Loaded() {
		return nil
	}
	return ws.Catalogs.Load(ctx)
}

func pageOf(p *view.Paginator, total int) dto.PageResponse {
	return dto.PageResponse{
		Page:       p.Page(),
		PageSize:   p.Size(),
		Total:      total,
		TotalPages: p.TotalPages(),
		HasNext:    p.HasNext(),
		HasPrev:    p.HasPrev(),
	}
}

// paginate observa la lista, salta a page si está en rango y devuelve la porción visible.
func paginate[T any](p *view.Paginator, list []T, page int) []T {
	p.Observe(len(list))
	if page > 0 {
		p.Go(page)
	}
	return view.Window(p, list)
}

func movementResponse(m entity.Movement, r *view.Resolver) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		ItemName:  r.ItemName(m.ItemID),
		Type:      string(m.Kind),
		TypeLabel: m.Kind.Label(),
		Quantity:  m.Quantity,
		Date:      m.Date,
		Reason:    m.Reason,
		CreatedBy: m.CreatedBy,
	}
}

func movementResponses(list []entity.Movement, r *view.Resolver) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, movementResponse(m, r))
	}
	return out
}

func itemResponse(it entity.Item, r *view.Resolver) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		UnitOfMeasure: it.UnitOfMeasure,
		Batch:         it.Batch,
		GroupID:       it.GroupID,
		GroupName:     r.GroupName(it.GroupID),
		Barcode:       it.Barcodes[0],
		Barcode2:      it.Barcodes[1],
		Barcode3:      it.Barcodes[2],
		Cost:          it.Cost,
		Price:         it.Prices[0],
		Price2:        it.Prices[1],
		Price3:        it.Prices[2],
		ReorderPoint:  it.ReorderPoint,
		VatID:         it.VatID,
		VatLabel:      r.VatLabel(it.VatID),
		VatApplicable: it.VatApplicable,
		WarehouseID:   it.WarehouseID,
		WarehouseName: r.WarehouseName(it.WarehouseID),
		PhotoFileName: it.PhotoFileName,
		Comment:       it.Comment,
		AllowDecimal:  it.AllowDecimal,
		Margin:        it.Margin,
	}
}
