package usecase

import (
	"context"
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

// PurchaseUseCase registra entradas de stock. Editar o borrar una compra se
// valida contra el libro del producto para no dejar ventas sin respaldo.
type PurchaseUseCase struct {
	txRunner     ports.TxRunner
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	cache        ports.ReportCache
	log          *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso. cache puede ser nil.
func NewPurchaseUseCase(
	txRunner ports.TxRunner,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	cache ports.ReportCache,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		cache:        cache,
		log:          log,
	}
}

// List compras filtradas por producto y rango de fechas, más recientes primero.
func (uc *PurchaseUseCase) List(ctx context.Context, q dto.MovementListQuery) ([]dto.PurchaseResponse, error) {
	from, to, err := ParseDateRange(q.From, q.To, "from", "to")
	if err != nil {
		return nil, err
	}
	list, err := uc.purchaseRepo.List(ctx, repository.MovementFilter{ProductID: q.ProductID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := productIndex(products)
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p, idx[p.ProductID]))
	}
	return items, nil
}

// Create registra una compra. PurchasedAt por defecto es ahora.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	verr := domain.NewValidationError()
	if in.ProductID == "" {
		verr.Add("productId", "el producto es obligatorio")
	}
	checkQuantity(verr, "quantity", in.Quantity)
	checkAmount(verr, "unitCost", in.UnitCost)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	purchase := &entity.Purchase{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost.Round(2),
		PurchasedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.PurchasedAt != nil {
		purchase.PurchasedAt = in.PurchasedAt.UTC()
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.SaleRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, purchase.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		product = p
		return purchaseRepo.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return toPurchaseResponse(purchase, product), nil
}

// Update modifica los campos enviados de una compra.
func (uc *PurchaseUseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	verr := domain.NewValidationError()
	if in.ProductID != nil && *in.ProductID == "" {
		verr.Add("productId", "el producto es obligatorio")
	}
	if in.Quantity != nil {
		checkQuantity(verr, "quantity", *in.Quantity)
	}
	if in.UnitCost != nil {
		checkAmount(verr, "unitCost", *in.UnitCost)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var (
		updated *entity.Purchase
		product *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error {
		purchase, err := purchaseRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		previous, err := productRepo.GetForUpdate(ctx, purchase.ProductID)
		if err != nil {
			return err
		}

		if in.ProductID != nil {
			purchase.ProductID = *in.ProductID
		}
		if in.Quantity != nil {
			purchase.Quantity = *in.Quantity
		}
		if in.UnitCost != nil {
			purchase.UnitCost = in.UnitCost.Round(2)
		}
		if in.PurchasedAt != nil {
			purchase.PurchasedAt = in.PurchasedAt.UTC()
		}
		purchase.UpdatedAt = time.Now().UTC()

		target := previous
		if previous == nil || purchase.ProductID != previous.ID {
			target, err = productRepo.GetForUpdate(ctx, purchase.ProductID)
			if err != nil {
				return err
			}
			if target == nil {
				return domain.ErrNotFound
			}
		}
		if err := purchaseRepo.Update(ctx, purchase); err != nil {
			return err
		}
		// menos entrada o una fecha posterior pueden dejar sin stock ventas ya registradas
		if previous != nil {
			if err := inventory.CheckProduct(ctx, previous, purchaseRepo, saleRepo); err != nil {
				return err
			}
		}
		if previous == nil || target.ID != previous.ID {
			if err := inventory.CheckProduct(ctx, target, purchaseRepo, saleRepo); err != nil {
				return err
			}
		}
		updated, product = purchase, target
		return nil
	})
	if err != nil {
		uc.logRejection(err, id)
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return toPurchaseResponse(updated, product), nil
}

// Delete elimina una compra si el stock del producto sigue cubriendo sus ventas.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error {
		purchase, err := purchaseRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(ctx, purchase.ProductID)
		if err != nil {
			return err
		}
		if err := purchaseRepo.Delete(ctx, id); err != nil {
			return err
		}
		if product == nil {
			return nil
		}
		return inventory.CheckProduct(ctx, product, purchaseRepo, saleRepo)
	})
	if err != nil {
		uc.logRejection(err, id)
		return err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return nil
}

func (uc *PurchaseUseCase) logRejection(err error, id string) {
	if domain.IsStockRejection(err) {
		uc.log.Warn().Err(err).Str("purchase_id", id).Msg("compra: cambio rechazado por el libro de stock")
	}
}

func toPurchaseResponse(p *entity.Purchase, product *entity.Product) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:          p.ID,
		ProductID:   p.ProductID,
		Quantity:    p.Quantity,
		UnitCost:    p.UnitCost,
		PurchasedAt: p.PurchasedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Product:     toProductRef(product),
	}
}
