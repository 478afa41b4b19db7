package maintenance

import "context"

// TableDumper vuelca tablas completas en CSV (con cabecera) desde una misma instantánea.
// fn recibe cada tabla en el orden pedido.
type TableDumper interface {
	DumpTables(ctx context.Context, tables []string, fn func(table string, data []byte) error) error
}

// ArchiveEntry archivo dentro del backup.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// Archiver escribe un archivo comprimido con las entradas dadas.
type Archiver interface {
	WriteArchive(path string, entries []ArchiveEntry) error
}

// CSVWriter escribe un CSV para abrir en hojas de cálculo (UTF-8 con BOM).
type CSVWriter interface {
	WriteCSV(path string, data []byte) error
}

// Migrator aplica las migraciones pendientes y devuelve las versiones aplicadas.
type Migrator interface {
	Migrate(ctx context.Context) ([]string, error)
}
