package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/application/ports"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos. El stock se calcula desde compras y ventas.
type ProductUseCase struct {
	txRunner ports.TxRunner
	repo     repository.ProductRepository
	cache    ports.ReportCache
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(
	txRunner ports.TxRunner,
	repo repository.ProductRepository,
	cache ports.ReportCache,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, cache: cache, log: log}
}

// Create crea un nuevo producto. El código se guarda en minúsculas y el precio con 2 decimales.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := normalizeCode(in.Code)
	name := strings.TrimSpace(in.Name)

	verr := domain.NewValidationError()
	if code == "" {
		verr.Add("code", "el código es obligatorio")
	}
	if name == "" {
		verr.Add("name", "el nombre es obligatorio")
	}
	checkAmount(verr, "price", in.Price)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por código (sin distinguir mayúsculas).
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos enviados de un producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	verr := domain.NewValidationError()
	if in.Code != nil {
		product.Code = normalizeCode(*in.Code)
		if product.Code == "" {
			verr.Add("code", "el código es obligatorio")
		}
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
		if product.Name == "" {
			verr.Add("name", "el nombre es obligatorio")
		}
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		checkAmount(verr, "price", *in.Price)
		product.Price = in.Price.Round(2)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if in.Code != nil {
		other, err := uc.repo.GetByCode(ctx, product.Code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
	}

	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return toProductResponse(product), nil
}

// List lista todos los productos ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto. Se rechaza si tiene compras o ventas.
// El conteo y el borrado corren en la misma transacción con el producto bloqueado,
// así una compra o venta concurrente no puede quedar huérfana.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		purchases, err := purchaseRepo.CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		sales, err := saleRepo.CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if purchases > 0 || sales > 0 {
			return domain.ErrProductInUse
		}
		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
