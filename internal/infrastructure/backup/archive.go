// Package backup escribe los respaldos de la base como tar comprimido con zstd.
package backup

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/stockflow/internal/application/maintenance"
	"github.com/klauspost/compress/zstd"
)

var _ maintenance.Archiver = (*TarZstdArchiver)(nil)

// TarZstdArchiver implementa maintenance.Archiver con archive/tar + zstd.
type TarZstdArchiver struct {
	level zstd.EncoderLevel
}

// NewTarZstdArchiver construye el archivador con nivel de compresión por defecto.
func NewTarZstdArchiver() *TarZstdArchiver {
	return &TarZstdArchiver{level: zstd.SpeedDefault}
}

// WriteArchive crea path (y su directorio) con una entrada tar por archivo.
// Si falla a mitad, elimina el archivo parcial.
func (a *TarZstdArchiver) WriteArchive(path string, entries []maintenance.ArchiveEntry) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("crear directorio de backup: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return a.write(f, entries)
}

func (a *TarZstdArchiver) write(w io.Writer, entries []maintenance.ArchiveEntry) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(a.level))
	if err != nil {
		return fmt.Errorf("zstd: %w", err)
	}
	tw := tar.NewWriter(zw)
	now := time.Now()
	for _, e := range entries {
		hdr := &tar.Header{
			Name:    e.Name,
			Mode:    0o644,
			Size:    int64(len(e.Data)),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			_ = zw.Close()
			return fmt.Errorf("tar header %s: %w", e.Name, err)
		}
		if _, err := tw.Write(e.Data); err != nil {
			_ = zw.Close()
			return fmt.Errorf("tar %s: %w", e.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		_ = zw.Close()
		return fmt.Errorf("cerrar tar: %w", err)
	}
	return zw.Close()
}

// ReadArchive lee un backup .tar.zst y devuelve sus entradas (restauración y tests).
func ReadArchive(path string) ([]maintenance.ArchiveEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	defer zr.Close()

	var out []maintenance.ArchiveEntry
	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("tar: %w", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("tar %s: %w", hdr.Name, err)
		}
		out = append(out, maintenance.ArchiveEntry{Name: hdr.Name, Data: data})
	}
}
