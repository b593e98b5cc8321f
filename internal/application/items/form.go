package items

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// FormUseCase alta y edición de artículos desde el formulario.
// Toda la validación ocurre antes de cualquier llamada a la API.
type FormUseCase struct {
	store    *ItemStore
	catalogs *Catalogs
	now      func() time.Time
}

// NewFormUseCase construye el caso de uso del formulario.
func NewFormUseCase(store *ItemStore, catalogs *Catalogs) *FormUseCase {
	return &FormUseCase{store: store, catalogs: catalogs, now: time.Now}
}

// Create valida, resuelve el grupo (creándolo si es nuevo) y registra el artículo.
func (uc *FormUseCase) Create(ctx context.Context, in dto.ItemRequest) (*entity.Item, error) {
	input, err := uc.Prepare(in)
	if err != nil {
		return nil, err
	}
	if input.GroupID, err = uc.resolveGroup(ctx, in); err != nil {
		return nil, err
	}
	return uc.store.Create(ctx, input)
}

// Update igual que Create pero reemplaza el artículo id.
func (uc *FormUseCase) Update(ctx context.Context, id int64, in dto.ItemRequest) (*entity.Item, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "debe ser mayor a 0")
	}
	input, err := uc.Prepare(in)
	if err != nil {
		return nil, err
	}
	if input.GroupID, err = uc.resolveGroup(ctx, in); err != nil {
		return nil, err
	}
	return uc.store.Update(ctx, id, input)
}

// Prepare aplica las reglas del formulario y produce el registro a enviar:
// precio calculado desde costo y margen, código autogenerado y precio >= costo.
func (uc *FormUseCase) Prepare(in dto.ItemRequest) (entity.ItemInput, error) {
	if err := dto.Validate(in); err != nil {
		return entity.ItemInput{}, err
	}

	price := in.Price
	if in.AutoCalculatePrice {
		price = PriceFromMargin(in.Cost, in.Margin)
	}
	if price.LessThan(in.Cost) {
		return entity.ItemInput{}, domain.NewValidationError("price", "el precio debe ser mayor o igual al costo")
	}

	barcode := strings.TrimSpace(in.Barcode)
	if barcode == "" && in.AutoGenerateBarcode {
		barcode = GenerateBarcode(uc.now())
	}

	return entity.ItemInput{
		Name:          strings.TrimSpace(in.ItemName),
		UnitOfMeasure: in.UnitOfMeasure,
		Batch:         in.Batch,
		GroupID:       in.GroupID,
		Barcodes:      [3]string{barcode, strings.TrimSpace(in.Barcode2), strings.TrimSpace(in.Barcode3)},
		Cost:          in.Cost,
		Prices:        [3]decimal.Decimal{price, in.Price2, in.Price3},
		ReorderPoint:  in.ReorderPoint,
		VatID:         in.VatID,
		VatApplicable: in.VatApplicable,
		WarehouseID:   in.WarehouseID,
		PhotoFileName: in.PhotoFileName,
		Comment:       in.Comment,
		AllowDecimal:  in.AllowDecimal,
		Margin:        in.Margin,
	}, nil
}

// resolveGroup un nombre de grupo escrito a mano tiene prioridad sobre el ID elegido.
func (uc *FormUseCase) resolveGroup(ctx context.Context, in dto.ItemRequest) (int64, error) {
	name := strings.TrimSpace(in.GroupName)
	if name == "" || uc.catalogs == nil {
		return in.GroupID, nil
	}
	id, err := uc.catalogs.EnsureGroup(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("grupo %q: %w", name, err)
	}
	return id, nil
}

// PriceFromMargin costo * (1 + margen/100) redondeado a 2 decimales.
func PriceFromMargin(cost, margin decimal.Decimal) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(1).Add(margin.Div(hundred))).Round(2)
}

// GenerateBarcode BAR-<milisegundos>-<9 caracteres alfanuméricos en mayúscula>.
func GenerateBarcode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return fmt.Sprintf("BAR-%d-%s", now.UnixMilli(), suffix)
}
