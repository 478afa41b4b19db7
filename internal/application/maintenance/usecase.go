// Package maintenance agrupa las tareas de mantenimiento de la base: migraciones,
// backups comprimidos y exportación CSV.
package maintenance

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/pkg/logger"
)

const timestampLayout = "20060102_150405"

// BackupTables tablas incluidas en el backup, en orden de dependencias.
var BackupTables = []string{"categories", "suppliers", "products", "movements", "users"}

// ExportTables tablas exportables a CSV.
var ExportTables = []string{"categories", "suppliers", "products", "movements"}

// Config directorios de salida.
type Config struct {
	BackupDir string
	ExportDir string
}

// MaintenanceUseCase orquesta backup, exportación y migraciones.
type MaintenanceUseCase struct {
	dumper   TableDumper
	archiver Archiver
	csv      CSVWriter
	migrator Migrator
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewMaintenanceUseCase construye el caso de uso.
func NewMaintenanceUseCase(
	dumper TableDumper,
	archiver Archiver,
	csv CSVWriter,
	migrator Migrator,
	cfg Config,
	log *logger.Logger,
) *MaintenanceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MaintenanceUseCase{
		dumper:   dumper,
		archiver: archiver,
		csv:      csv,
		migrator: migrator,
		cfg:      cfg,
		log:      log.Component("maintenance"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *MaintenanceUseCase) WithClock(now func() time.Time) *MaintenanceUseCase {
	uc.now = now
	return uc
}

// Backup vuelca todas las tablas en un .tar.zst: <BackupDir>/backup_YYYYMMDD_HHMMSS.tar.zst.
// Devuelve la ruta del archivo.
func (uc *MaintenanceUseCase) Backup(ctx context.Context) (string, error) {
	path := filepath.Join(uc.cfg.BackupDir, "backup_"+uc.now().Format(timestampLayout)+".tar.zst")

	entries := make([]ArchiveEntry, 0, len(BackupTables))
	err := uc.dumper.DumpTables(ctx, BackupTables, func(table string, data []byte) error {
		entries = append(entries, ArchiveEntry{Name: table + ".csv", Data: data})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("backup: volcar tablas: %w", err)
	}
	if err := uc.archiver.WriteArchive(path, entries); err != nil {
		return "", fmt.Errorf("backup: escribir archivo: %w", err)
	}
	uc.log.Info().Str("path", path).Int("tables", len(entries)).Msg("backup creado")
	return path, nil
}

// ExportCSV exporta una tabla a <ExportDir>/<tabla>_YYYYMMDD_HHMMSS.csv.
func (uc *MaintenanceUseCase) ExportCSV(ctx context.Context, table string) (string, error) {
	table = strings.TrimSpace(strings.ToLower(table))
	if !isExportable(table) {
		return "", domain.NewValidationError("table", fmt.Sprintf("tabla no exportable: %q", table))
	}
	path := filepath.Join(uc.cfg.ExportDir, table+"_"+uc.now().Format(timestampLayout)+".csv")

	var data []byte
	err := uc.dumper.DumpTables(ctx, []string{table}, func(_ string, d []byte) error {
		data = d
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("export %s: %w", table, err)
	}
	if err := uc.csv.WriteCSV(path, data); err != nil {
		return "", fmt.Errorf("export %s: %w", table, err)
	}
	uc.log.Info().Str("path", path).Str("table", table).Msg("tabla exportada")
	return path, nil
}

// Migrate aplica las migraciones pendientes.
func (uc *MaintenanceUseCase) Migrate(ctx context.Context) ([]string, error) {
	applied, err := uc.migrator.Migrate(ctx)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	return applied, nil
}

func isExportable(table string) bool {
	for _, t := range ExportTables {
		if t == table {
			return true
		}
	}
	return false
}
