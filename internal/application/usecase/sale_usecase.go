package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/importer"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// SaleUseCase alta manual y consultas de ventas. A diferencia del
// reconciliador de importación, el alta manual sí descuenta stock y rechaza
// la venta si el stock quedaría negativo.
type SaleUseCase struct {
	sales repository.SaleRepository
	tx    importer.TxRunner
}

func NewSaleUseCase(sales repository.SaleRepository, tx importer.TxRunner) *SaleUseCase {
	return &SaleUseCase{sales: sales, tx: tx}
}

// Create registra la venta y descuenta stock en la misma transacción.
// Devuelve ErrNotFound si el SKU no existe y ErrInsufficientStock si el stock
// no alcanza.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.SKU == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	channel := in.Channel
	if channel == "" {
		channel = "unknown"
	}

	sale := &entity.ProductSale{Channel: channel, Date: date, SKU: in.SKU, Quantity: in.Quantity}
	err = uc.tx.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		product, err := products.GetBySKU(in.SKU)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := products.DecrementStock(in.SKU, in.Quantity); err != nil {
			return err
		}
		return sales.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// List lista todas las ventas.
func (uc *SaleUseCase) List() ([]dto.SaleResponse, error) {
	list, err := uc.sales.List()
	if err != nil {
		return nil, err
	}
	return toSaleResponses(list), nil
}

// ListBySKU lista las ventas de un SKU concreto.
func (uc *SaleUseCase) ListBySKU(sku string) ([]dto.SaleResponse, error) {
	list, err := uc.sales.ListBySKU(sku)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(list), nil
}

func toSaleResponses(list []*entity.ProductSale) []dto.SaleResponse {
	out := []dto.SaleResponse{}
	for _, s := range list {
		out = append(out, *toSaleResponse(s))
	}
	return out
}

func toSaleResponse(s *entity.ProductSale) *dto.SaleResponse {
	return &dto.SaleResponse{
		SaleID:   s.SaleID,
		Channel:  s.Channel,
		Date:     s.Date.Format("2006-01-02"),
		SKU:      s.SKU,
		Quantity: s.Quantity,
	}
}
