package maintenance_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/maintenance"
	"github.com/jhoicas/stockflow/internal/domain"
)

type fakeDumper struct{ asked [][]string }

func (f *fakeDumper) DumpTables(_ context.Context, tables []string, fn func(string, []byte) error) error {
	f.asked = append(f.asked, tables)
	for _, t := range tables {
		if err := fn(t, []byte("id\n"+t+"-1\n")); err != nil {
			return err
		}
	}
	return nil
}

type fakeArchiver struct {
	path    string
	entries []maintenance.ArchiveEntry
}

func (f *fakeArchiver) WriteArchive(path string, entries []maintenance.ArchiveEntry) error {
	f.path, f.entries = path, entries
	return nil
}

type fakeCSV struct {
	path string
	data []byte
}

func (f *fakeCSV) WriteCSV(path string, data []byte) error {
	f.path, f.data = path, data
	return nil
}

type fakeMigrator struct{ err error }

func (f fakeMigrator) Migrate(context.Context) ([]string, error) {
	return []string{"0001_init"}, f.err
}

var fixedNow = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }

func newMaintenance(m maintenance.Migrator) (*maintenance.MaintenanceUseCase, *fakeDumper, *fakeArchiver, *fakeCSV) {
	d, a, c := &fakeDumper{}, &fakeArchiver{}, &fakeCSV{}
	uc := maintenance.NewMaintenanceUseCase(d, a, c, m, maintenance.Config{
		BackupDir: "data/backup", ExportDir: "data/export",
	}, nil).WithClock(fixedNow)
	return uc, d, a, c
}

func TestBackup_NombreConMarcaDeTiempoYTodasLasTablas(t *testing.T) {
	uc, d, a, _ := newMaintenance(fakeMigrator{})

	path, err := uc.Backup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data/backup", "backup_20240309_140507.tar.zst"), path)
	assert.Equal(t, path, a.path)
	require.Len(t, d.asked, 1, "una sola instantánea para todas las tablas")
	assert.Equal(t, maintenance.BackupTables, d.asked[0])
	require.Len(t, a.entries, len(maintenance.BackupTables))
	assert.Equal(t, "movements.csv", a.entries[3].Name)
}

func TestExportCSV(t *testing.T) {
	uc, _, _, c := newMaintenance(fakeMigrator{})

	path, err := uc.ExportCSV(context.Background(), "Products")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data/export", "products_20240309_140507.csv"), path)
	assert.Equal(t, "id\nproducts-1\n", string(c.data))

	_, err = uc.ExportCSV(context.Background(), "users")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "users no es exportable")
}

func TestMigrate_PropagaError(t *testing.T) {
	uc, _, _, _ := newMaintenance(fakeMigrator{})
	applied, err := uc.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init"}, applied)

	uc, _, _, _ = newMaintenance(fakeMigrator{err: errors.New("boom")})
	_, err = uc.Migrate(context.Background())
	assert.Error(t, err)
}
