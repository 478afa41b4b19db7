// Package export escribe exportaciones CSV legibles por hojas de cálculo.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/stockflow/internal/application/maintenance"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var _ maintenance.CSVWriter = (*BOMWriter)(nil)

// BOMWriter escribe el CSV en UTF-8 con BOM para que Excel detecte la codificación.
type BOMWriter struct{}

// NewBOMWriter construye el writer.
func NewBOMWriter() *BOMWriter { return &BOMWriter{} }

// WriteCSV crea path (y su directorio) con data precedido del BOM.
func (BOMWriter) WriteCSV(path string, data []byte) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("crear directorio de exportación: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	return w.Close()
}
