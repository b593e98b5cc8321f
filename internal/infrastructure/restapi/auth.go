package restapi

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
)

var (
	_ repository.AuthRepository    = (*AuthAPI)(nil)
	_ repository.BarcodeRepository = (*BarcodeAPI)(nil)
)

// AuthAPI login contra /Users/login.
type AuthAPI struct{ c *Client }

// NewAuthAPI construye el adaptador de autenticación.
func NewAuthAPI(c *Client) *AuthAPI { return &AuthAPI{c: c} }

// Login devuelve el token emitido y el nombre de usuario que confirma el servidor
// ("" si no lo incluye). Nunca envía el token guardado.
func (a *AuthAPI) Login(ctx context.Context, cred entity.Credentials) (string, string, error) {
	var res loginResponseDTO
	req := loginRequestDTO{UserName: cred.UserName, Password: cred.Password}
	if err := a.c.do(ctx, http.MethodPost, "/Users/login", req, &res, false); err != nil {
		return "", "", err
	}
	return res.Token, res.UserName, nil
}

// BarcodeAPI validación de códigos escaneados.
type BarcodeAPI struct{ c *Client }

// NewBarcodeAPI construye el adaptador de escaneo.
func NewBarcodeAPI(c *Client) *BarcodeAPI { return &BarcodeAPI{c: c} }

// Scan envía el código leído; scannedAt en ISO 8601.
func (a *BarcodeAPI) Scan(ctx context.Context, barcode, scannedAt string) (*entity.BarcodeValidation, error) {
	var res barcodeValidationDTO
	if err := a.c.Do(ctx, http.MethodPost, "/barcode/scan", barcodeScanDTO{Barcode: barcode, ScannedAt: scannedAt}, &res); err != nil {
		return nil, err
	}
	return &entity.BarcodeValidation{
		Valid:    res.IsValid,
		ItemID:   res.ItemID,
		ItemName: res.ItemName,
		Message:  res.Message,
	}, nil
}
