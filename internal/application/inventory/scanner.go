package inventory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
)

// DefaultScanDebounce ventana en la que se ignora la relectura del mismo código.
const DefaultScanDebounce = 2 * time.Second

// ScanResult resultado de procesar un código leído.
type ScanResult struct {
	Code       string
	Skipped    bool // descartado por rebote
	Validation *entity.BarcodeValidation
	Err        error
}

// ScanValidator valida contra la API los códigos que entrega el decodificador,
// descartando lecturas repetidas del mismo código dentro de la ventana.
type ScanValidator struct {
	repo     repository.BarcodeRepository
	notifier notify.Publisher
	window   time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastCode string
	lastAt   time.Time
}

// NewScanValidator window <= 0 usa DefaultScanDebounce.
func NewScanValidator(repo repository.BarcodeRepository, notifier notify.Publisher, window time.Duration) *ScanValidator {
	if window <= 0 {
		window = DefaultScanDebounce
	}
	return &ScanValidator{repo: repo, notifier: notifier, window: window, now: time.Now}
}

// SetClock reemplaza el reloj (tests).
func (v *ScanValidator) SetClock(now func() time.Time) { v.now = now }

// Handle procesa un código. Las relecturas del mismo código dentro de la ventana no llaman a la API.
func (v *ScanValidator) Handle(ctx context.Context, raw string) ScanResult {
	code := strings.TrimSpace(raw)
	res := ScanResult{Code: code}
	if code == "" {
		res.Skipped = true
		return res
	}

	now := v.now()
	v.mu.Lock()
	if code == v.lastCode && now.Sub(v.lastAt) < v.window {
		v.mu.Unlock()
		res.Skipped = true
		return res
	}
	v.lastCode = code
	v.lastAt = now
	v.mu.Unlock()

	val, err := v.repo.Scan(ctx, code, now.UTC().Format(time.RFC3339Nano))
	if err != nil {
		res.Err = err
		return res
	}
	res.Validation = val
	switch {
	case val.Valid && val.ItemName != "":
		v.publish("Código válido: "+val.ItemName, notify.Success)
	case val.Valid:
		v.publish("Código válido", notify.Success)
	case val.Message != "":
		v.publish(val.Message, notify.Warning)
	default:
		v.publish("Código no reconocido: "+code, notify.Warning)
	}
	return res
}

// Run consume codes hasta que se cierre el canal o se cancele ctx, entregando cada resultado a sink.
func (v *ScanValidator) Run(ctx context.Context, codes <-chan string, sink func(ScanResult)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case code, ok := <-codes:
			if !ok {
				return nil
			}
			res := v.Handle(ctx, code)
			if sink != nil {
				sink(res)
			}
		}
	}
}

func (v *ScanValidator) publish(msg string, sev notify.Severity) {
	if v.notifier != nil {
		v.notifier.Notify(msg, sev)
	}
}
