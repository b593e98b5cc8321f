// Package scan adapta la salida de un lector de códigos (lector USB en modo teclado
// o un decodificador de cámara externo) a un canal de códigos.
package scan

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// Decoder fuente de códigos decodificados.
type Decoder interface {
	Codes(ctx context.Context) <-chan string
	Err() error
}

// LineDecoder entrega una lectura por línea; ignora líneas vacías.
type LineDecoder struct {
	r io.Reader

	mu  sync.Mutex
	err error
}

var _ Decoder = (*LineDecoder)(nil)

// NewLineDecoder construye un decodificador sobre r (normalmente os.Stdin).
func NewLineDecoder(r io.Reader) *LineDecoder {
	return &LineDecoder{r: r}
}

// Codes arranca la lectura. El canal se cierra al llegar a EOF, ante un error de
// lectura (consultar Err) o al cancelarse ctx.
func (d *LineDecoder) Codes(ctx context.Context) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(d.r)
		for sc.Scan() {
			code := strings.TrimSpace(sc.Text())
			if code == "" {
				continue
			}
			select {
			case out <- code:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			d.mu.Lock()
			d.err = err
			d.mu.Unlock()
		}
	}()
	return out
}

// Err error de lectura, si lo hubo.
func (d *LineDecoder) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
