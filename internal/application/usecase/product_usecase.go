package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// InitialStockReason motivo de la entrada que registra la cantidad inicial de un producto.
const InitialStockReason = "Stock inicial"

// TxRunner ejecuta fn en una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ProductUseCase casos de uso para productos. La cantidad solo cambia vía movimientos.
type ProductUseCase struct {
	repo             repository.ProductRepository
	categoryRepo     repository.CategoryRepository
	supplierRepo     repository.SupplierRepository
	txRunner         TxRunner
	defaultThreshold int
}

// NewProductUseCase construye el caso de uso. defaultThreshold < 0 usa entity.DefaultMinThreshold.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	txRunner TxRunner,
	defaultThreshold int,
) *ProductUseCase {
	if defaultThreshold < 0 {
		defaultThreshold = entity.DefaultMinThreshold
	}
	return &ProductUseCase{
		repo:             repo,
		categoryRepo:     categoryRepo,
		supplierRepo:     supplierRepo,
		txRunner:         txRunner,
		defaultThreshold: defaultThreshold,
	}
}

// Create crea un producto. Requiere referencia, nombre y categoría.
// El producto nace en 0; una cantidad inicial se registra como entrada "Stock inicial"
// en la misma transacción. actor vacío = system.
func (uc *ProductUseCase) Create(ctx context.Context, actor string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Reference = strings.TrimSpace(in.Reference)
	in.Name = strings.TrimSpace(in.Name)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.SupplierID = strings.TrimSpace(in.SupplierID)
	switch {
	case in.Reference == "":
		return nil, domain.MissingField("reference")
	case in.Name == "":
		return nil, domain.MissingField("name")
	case in.CategoryID == "":
		return nil, domain.MissingField("category_id")
	}

	quantity, threshold := 0, uc.defaultThreshold
	purchase, sale := decimal.Zero, decimal.Zero
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if in.MinThreshold != nil {
		threshold = *in.MinThreshold
	}
	if in.PurchasePrice != nil {
		purchase = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		sale = *in.SalePrice
	}
	switch {
	case quantity < 0:
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	case threshold < 0:
		return nil, domain.NewValidationError("min_threshold", "no puede ser negativo")
	case purchase.IsNegative():
		return nil, domain.NewValidationError("purchase_price", "no puede ser negativo")
	case sale.IsNegative():
		return nil, domain.NewValidationError("sale_price", "no puede ser negativo")
	}

	existing, err := uc.repo.GetByReference(ctx, in.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NewValidationError("category_id", "categoría inexistente")
	}
	var supplierID *string
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.NewValidationError("supplier_id", "proveedor inexistente")
		}
		supplierID = &supplier.ID
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Reference:     in.Reference,
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    &category.ID,
		SupplierID:    supplierID,
		Quantity:      0,
		MinThreshold:  threshold,
		PurchasePrice: purchase,
		SalePrice:     sale,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if actor == "" {
		actor = entity.SystemActor
	}
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if quantity == 0 {
			return nil
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, quantity, now); err != nil {
			return err
		}
		before, after := 0, quantity
		return movRepo.Create(ctx, &entity.Movement{
			ID:             uuid.New().String(),
			ProductID:      product.ID,
			Kind:           entity.MovementEntry,
			Quantity:       quantity,
			QuantityBefore: &before,
			QuantityAfter:  &after,
			Reason:         InitialStockReason,
			Actor:          actor,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, product.ID)
}

// GetByID obtiene un producto con nombre de categoría y proveedor.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	view, err := uc.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToProductResponse(view)
	return &resp, nil
}

// List lista productos por nombre; search filtra por nombre o referencia.
func (uc *ProductUseCase) List(ctx context.Context, search string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListViews(ctx, search)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: ToProductResponses(list), Total: len(list)}, nil
}

// Delete elimina un producto y, en cascada, su historial de movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// ToProductResponse convierte la vista de producto al DTO.
func ToProductResponse(p *entity.ProductView) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Reference:     p.Reference,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		CategoryColor: p.CategoryColor,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		Quantity:      p.Quantity,
		MinThreshold:  p.MinThreshold,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		LowStock:      p.Quantity <= p.MinThreshold,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses convierte una lista de vistas.
func ToProductResponses(list []*entity.ProductView) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, ToProductResponse(p))
	}
	return items
}
