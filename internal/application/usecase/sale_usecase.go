package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/application/ports"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

// SaleUseCase registra salidas de stock de forma transaccional: bloquea el producto
// (SELECT FOR UPDATE), reconstruye su libro mensual con la venta candidata y hace
// Commit o Rollback.
type SaleUseCase struct {
	txRunner    ports.TxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	cache       ports.ReportCache
	log         *logger.Logger
}

// NewSaleUseCase construye el caso de uso. cache puede ser nil.
func NewSaleUseCase(
	txRunner ports.TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	cache ports.ReportCache,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		cache:       cache,
		log:         log,
	}
}

// List ventas filtradas por producto y rango de fechas, más recientes primero.
func (uc *SaleUseCase) List(ctx context.Context, q dto.MovementListQuery) ([]dto.SaleResponse, error) {
	from, to, err := ParseDateRange(q.From, q.To, "from", "to")
	if err != nil {
		return nil, err
	}
	list, err := uc.saleRepo.List(ctx, repository.MovementFilter{ProductID: q.ProductID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := productIndex(products)
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, idx[s.ProductID]))
	}
	return items, nil
}

// Create registra una venta si el producto tiene stock para cubrirla en su fecha.
// Devuelve *domain.InsufficientStockError con el disponible cuando no alcanza.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	verr := domain.NewValidationError()
	if in.ProductID == "" {
		verr.Add("productId", "el producto es obligatorio")
	}
	checkQuantity(verr, "quantity", in.Quantity)
	checkAmount(verr, "unitPrice", in.UnitPrice)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice.Round(2),
		SoldAt:    now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.SoldAt != nil {
		sale.SoldAt = in.SoldAt.UTC()
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Bloquea el producto para serializar ventas concurrentes del mismo SKU
		p, err := productRepo.GetForUpdate(ctx, sale.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := inventory.CheckSale(ctx, p, purchaseRepo, saleRepo, sale); err != nil {
			return err
		}
		product = p
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		uc.logRejection(err, sale)
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return toSaleResponse(sale, product), nil
}

// Update modifica los campos enviados de una venta; la venta editada no cuenta
// contra el stock disponible.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	verr := domain.NewValidationError()
	if in.ProductID != nil && *in.ProductID == "" {
		verr.Add("productId", "el producto es obligatorio")
	}
	if in.Quantity != nil {
		checkQuantity(verr, "quantity", *in.Quantity)
	}
	if in.UnitPrice != nil {
		checkAmount(verr, "unitPrice", *in.UnitPrice)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var (
		updated *entity.Sale
		product *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if in.ProductID != nil {
			sale.ProductID = *in.ProductID
		}
		if in.Quantity != nil {
			sale.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			sale.UnitPrice = in.UnitPrice.Round(2)
		}
		if in.SoldAt != nil {
			sale.SoldAt = in.SoldAt.UTC()
		}
		sale.UpdatedAt = time.Now().UTC()
		updated = sale

		p, err := productRepo.GetForUpdate(ctx, sale.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := inventory.CheckSale(ctx, p, purchaseRepo, saleRepo, sale); err != nil {
			return err
		}
		product = p
		return saleRepo.Update(ctx, sale)
	})
	if err != nil {
		if updated != nil {
			uc.logRejection(err, updated)
		}
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return toSaleResponse(updated, product), nil
}

// Delete elimina una venta. Quitar una salida nunca deja stock negativo.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if err := uc.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return nil
}

func (uc *SaleUseCase) logRejection(err error, sale *entity.Sale) {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		uc.log.Warn().
			Str("product_id", insufficient.ProductID).
			Float64("requested", insufficient.Requested).
			Float64("available", insufficient.Available).
			Time("sold_at", sale.SoldAt).
			Msg("venta: stock insuficiente")
		return
	}
	if domain.IsStockRejection(err) {
		uc.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("venta: rechazada por el libro de stock")
	}
}

func toSaleResponse(s *entity.Sale, product *entity.Product) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		SoldAt:    s.SoldAt,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Product:   toProductRef(product),
	}
}
