package postgres

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stockflow/internal/application/maintenance"
)

var _ maintenance.TableDumper = (*TableDumper)(nil)

// TableDumper vuelca tablas con COPY ... TO STDOUT dentro de una transacción
// REPEATABLE READ de solo lectura: todas las tablas ven la misma instantánea.
type TableDumper struct {
	pool *pgxpool.Pool
}

// NewTableDumper construye el volcador.
func NewTableDumper(pool *pgxpool.Pool) *TableDumper {
	return &TableDumper{pool: pool}
}

// DumpTables llama a fn con el CSV (con cabecera) de cada tabla.
func (d *TableDumper) DumpTables(ctx context.Context, tables []string, fn func(table string, data []byte) error) error {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	conn := tx.Conn().PgConn()
	for _, table := range tables {
		var buf bytes.Buffer
		sql := fmt.Sprintf("COPY %s TO STDOUT WITH (FORMAT csv, HEADER true)", pgx.Identifier{table}.Sanitize())
		if _, err := conn.CopyTo(ctx, &buf, sql); err != nil {
			return fmt.Errorf("copy %s: %w", table, err)
		}
		if err := fn(table, buf.Bytes()); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
