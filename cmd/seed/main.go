// seed aplica las migraciones y carga datos de demostración: categorías, proveedores,
// productos PROD-001..PROD-005 y el usuario administrador.
//
// Uso: go run ./cmd/seed
// Es idempotente: lo que ya existe (por nombre o referencia) no se vuelve a crear.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow/internal/application/auth"
	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow/pkg/config"
	"github.com/jhoicas/stockflow/pkg/logger"
)

type demoProduct struct {
	reference, name, description string
	category, supplier           string
	quantity, threshold          int
	purchase, sale               string
}

var (
	demoCategories = []dto.CreateCategoryRequest{
		{Name: "Electrónica", Color: "#FF6B6B"},
		{Name: "Informática", Color: "#4ECDC4"},
		{Name: "Oficina", Color: "#FFD166"},
		{Name: "Mobiliario", Color: "#06D6A0"},
		{Name: "Cables", Color: "#118AB2"},
		{Name: "Varios", Color: "#073B4C"},
	}
	demoSuppliers = []dto.CreateSupplierRequest{
		{Name: "TechCorp", Email: "contact@techcorp.com", Phone: "01 23 45 67 89"},
		{Name: "OfficePlus", Email: "info@officeplus.fr", Phone: "09 87 65 43 21"},
		{Name: "ElectroWorld", Email: "sales@electroworld.com", Phone: "05 67 89 12 34"},
	}
	demoProducts = []demoProduct{
		{"PROD-001", "Teclado mecánico", "Teclado gaming RGB", "Electrónica", "TechCorp", 25, 5, "40.00", "89.99"},
		{"PROD-002", "Ratón gaming", "Ratón 16000 DPI", "Electrónica", "TechCorp", 18, 3, "25.00", "45.50"},
		{"PROD-003", "Monitor 24\"", "Monitor Full HD", "Informática", "ElectroWorld", 8, 2, "150.00", "199.99"},
		{"PROD-004", "Silla de oficina", "Silla ergonómica", "Mobiliario", "OfficePlus", 12, 5, "120.00", "199.99"},
		{"PROD-005", "Cable HDMI 2m", "Cable de alta calidad", "Cables", "ElectroWorld", 50, 10, "5.00", "12.99"},
	}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.NewMigrator(pool).Migrate(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("applied", applied).Msg("migraciones al día")

	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool), categoryRepo, supplierRepo, postgres.NewTxRunner(pool), cfg.Stock.DefaultThreshold)
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	})

	categoryIDs, err := seedCategories(ctx, categoryUC)
	if err != nil {
		log.Fatal().Err(err).Msg("categorías")
	}
	supplierIDs, err := seedSuppliers(ctx, supplierUC)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedores")
	}

	created := 0
	for _, p := range demoProducts {
		purchase := decimal.RequireFromString(p.purchase)
		sale := decimal.RequireFromString(p.sale)
		qty, threshold := p.quantity, p.threshold
		_, err := productUC.Create(ctx, "seed", dto.CreateProductRequest{
			Reference:     p.reference,
			Name:          p.name,
			Description:   p.description,
			CategoryID:    categoryIDs[p.category],
			SupplierID:    supplierIDs[p.supplier],
			Quantity:      &qty,
			MinThreshold:  &threshold,
			PurchasePrice: &purchase,
			SalePrice:     &sale,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("reference", p.reference).Msg("producto")
		}
		created++
	}
	log.Info().Int("created", created).Msg("productos de demostración")

	if cfg.Admin.Password == "" {
		log.Warn().Msg("ADMIN_PASSWORD vacío, no se crea el usuario administrador")
		os.Exit(0)
	}
	_, err = authUC.RegisterUser(ctx, cfg.Admin.Username, cfg.Admin.Password, entity.RoleAdmin)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		log.Info().Str("username", cfg.Admin.Username).Msg("el administrador ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("usuario administrador")
	default:
		log.Info().Str("username", cfg.Admin.Username).Msg("administrador creado")
	}
}

func seedCategories(ctx context.Context, uc *usecase.CategoryUseCase) (map[string]string, error) {
	existing, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(existing))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}
	for _, in := range demoCategories {
		if _, ok := ids[in.Name]; ok {
			continue
		}
		out, err := uc.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		ids[out.Name] = out.ID
	}
	return ids, nil
}

func seedSuppliers(ctx context.Context, uc *usecase.SupplierUseCase) (map[string]string, error) {
	existing, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(existing))
	for _, s := range existing {
		ids[s.Name] = s.ID
	}
	for _, in := range demoSuppliers {
		if _, ok := ids[in.Name]; ok {
			continue
		}
		out, err := uc.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		ids[out.Name] = out.ID
	}
	return ids, nil
}
