package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

// NoteInitialStock nota del movimiento que registra el stock inicial de un producto.
const NoteInitialStock = "Inventario inicial"

// ProductUseCase alta, edición y búsqueda de productos. El stock solo cambia vía kardex.
type ProductUseCase struct {
	tx    ports.TxRunner
	repos repository.Repos
	log   *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx ports.TxRunner, repos repository.Repos, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{tx: tx, repos: repos, log: logger.OrNop(log)}
}

// Create crea el producto con stock 0 y, si InitialStock > 0, registra la Entrada inicial
// en la misma transacción. Así la suma del kardex siempre parte de cero.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, domain.Validation("código y nombre son obligatorios")
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.Validation("los precios no pueden ser negativos")
	}
	if err := domain.CheckMoney("purchase_price", in.PurchasePrice); err != nil {
		return nil, err
	}
	if err := domain.CheckMoney("sale_price", in.SalePrice); err != nil {
		return nil, err
	}
	if in.InitialStock < 0 || in.MinStock < 0 {
		return nil, domain.Validation("stock inicial y stock mínimo no pueden ser negativos")
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          in.Code,
		Name:          in.Name,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		MinStock:      in.MinStock,
		CategoryID:    in.CategoryID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		existing, err := r.Products.GetByCode(ctx, in.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict("ya existe un producto con el código " + in.Code)
		}
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		p, _, err := ApplyMovement(ctx, r, MovementInput{
			ProductID: product.ID,
			Kind:      entity.MovementKindEntrada,
			Quantity:  in.InitialStock,
			UnitCost:  in.PurchasePrice,
			Note:      NoteInitialStock,
			ActorID:   actorID,
			Date:      now,
		})
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("code", product.Code).Int("stock", product.StockActual).Msg("producto creado")
	return toProductResponse(product), nil
}

// Update modifica datos del producto. Nunca toca stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("producto no encontrado")
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.Validation("el nombre no puede estar vacío")
			}
			p.Name = name
		}
		if in.SalePrice != nil {
			if in.SalePrice.IsNegative() {
				return domain.Validation("el precio de venta no puede ser negativo")
			}
			if err := domain.CheckMoney("sale_price", *in.SalePrice); err != nil {
				return err
			}
			p.SalePrice = *in.SalePrice
		}
		if in.PurchasePrice != nil {
			if in.PurchasePrice.IsNegative() {
				return domain.Validation("el precio de compra no puede ser negativo")
			}
			if err := domain.CheckMoney("purchase_price", *in.PurchasePrice); err != nil {
				return err
			}
			if err := r.Products.UpdatePurchasePrice(ctx, p.ID, *in.PurchasePrice); err != nil {
				return err
			}
			p.PurchasePrice = *in.PurchasePrice
		}
		if in.MinStock != nil {
			if *in.MinStock < 0 {
				return domain.Validation("el stock mínimo no puede ser negativo")
			}
			p.MinStock = *in.MinStock
		}
		if in.CategoryID != nil {
			p.CategoryID = *in.CategoryID
		}
		if in.Active != nil {
			p.Active = *in.Active
		}
		p.UpdatedAt = time.Now()
		out = p
		return r.Products.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto no encontrado")
	}
	return toProductResponse(p), nil
}

// Search busca por texto (código o nombre), categoría y estado de stock.
func (uc *ProductUseCase) Search(ctx context.Context, in dto.ProductSearchRequest) (*dto.ProductListResponse, error) {
	switch in.StockStatus {
	case "", entity.StockStatusLow, entity.StockStatusOut, entity.StockStatusNormal:
	default:
		return nil, domain.Validation("estado de stock inválido: " + in.StockStatus)
	}
	in.DefaultPage()
	list, err := uc.repos.Products.Search(ctx, repository.ProductFilter{
		Text:        in.Text,
		CategoryID:  in.CategoryID,
		StockStatus: in.StockStatus,
		ActiveOnly:  in.ActiveOnly,
		Limit:       in.FetchLimit(),
		Offset:      in.Offset,
	})
	if err != nil {
		return nil, err
	}
	list, page := dto.Paginate(list, in.PageRequest)
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  page,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		StockActual:   p.StockActual,
		MinStock:      p.MinStock,
		StockStatus:   p.StockStatus(),
		CategoryID:    p.CategoryID,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
