// maintenance ejecuta las tareas de mantenimiento desde la terminal.
//
// Uso:
//
//	go run ./cmd/maintenance migrate
//	go run ./cmd/maintenance backup
//	go run ./cmd/maintenance export <categories|suppliers|products|movements>
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/stockflow/internal/application/maintenance"
	"github.com/jhoicas/stockflow/internal/infrastructure/backup"
	"github.com/jhoicas/stockflow/internal/infrastructure/export"
	"github.com/jhoicas/stockflow/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow/pkg/config"
	"github.com/jhoicas/stockflow/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, "uso: maintenance migrate | backup | export <tabla>")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := maintenance.NewMaintenanceUseCase(
		postgres.NewTableDumper(pool),
		backup.NewTarZstdArchiver(),
		export.NewBOMWriter(),
		postgres.NewMigrator(pool),
		maintenance.Config{BackupDir: cfg.Backup.Dir, ExportDir: cfg.Backup.ExportDir},
		log,
	)

	switch os.Args[1] {
	case "migrate":
		applied, err := uc.Migrate(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		fmt.Printf("%d migraciones aplicadas\n", len(applied))
	case "backup":
		path, err := uc.Backup(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("backup")
		}
		fmt.Println(path)
	case "export":
		if len(os.Args) < 3 {
			usage()
		}
		path, err := uc.ExportCSV(ctx, os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Str("table", os.Args[2]).Msg("exportación")
		}
		fmt.Println(path)
	default:
		usage()
	}
}
