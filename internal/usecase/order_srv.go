package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// Checkout pricing rules. Totals are always recomputed here from the
// catalog prices; anything the client sends is advisory.
const (
	flatShipping          = 10.0
	freeShippingThreshold = 100.0
	taxRate               = 0.10
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.OrderDetailResponse, error)
	GetUserOrders(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetOrder(ctx context.Context, userID, role, orderID string) (*response.OrderDetailResponse, error)
	CancelOrder(ctx context.Context, userID, role, orderID string) (*response.OrderResponse, error)

	// UpdateStatus enforces forward-only transitions.
	UpdateStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error)
	// ConfirmPayment moves a pending order to processing. Called from the
	// webhook path.
	ConfirmPayment(ctx context.Context, orderID string) error
	AdjustStock(ctx context.Context, productID string, req *request.AdjustStockRequest) (*response.StockResponse, error)
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *orderService) CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.OrderDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	uid, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrNotFound)
	}

	now := time.Now()
	orderID := utils.GenerateUUID()

	var subtotal float64
	items := make([]*entity.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		pid, err := utils.ParseUUID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product ID %s", ErrNotFound, line.ProductID)
		}

		product, err := s.repo.Product.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("find product: %w", err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: product %s not found", ErrNotFound, line.ProductID)
		}

		unitPrice := product.Price
		item := &entity.OrderItem{
			ID:        utils.GenerateUUID(),
			OrderID:   orderID,
			ProductID: pid,
			Quantity:  line.Quantity,
		}

		if line.VariantID != nil {
			vid, err := utils.ParseUUID(*line.VariantID)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid variant ID %s", ErrNotFound, *line.VariantID)
			}
			variants, err := s.repo.Product.FindVariants(ctx, pid)
			if err != nil {
				return nil, fmt.Errorf("load variants: %w", err)
			}
			var matched *entity.ProductVariant
			for _, variant := range variants {
				if variant.ID == vid {
					matched = variant
					break
				}
			}
			if matched == nil {
				return nil, fmt.Errorf("%w: variant %s not found for product %s", ErrNotFound, *line.VariantID, line.ProductID)
			}
			if !matched.Available {
				return nil, fmt.Errorf("%w: variant %s unavailable", ErrInsufficientStock, matched.SKU)
			}
			unitPrice = matched.Price
			item.VariantID = &vid
		}

		item.UnitPrice = unitPrice
		subtotal += unitPrice * float64(line.Quantity)
		items = append(items, item)
	}

	subtotal = round2(subtotal)
	shipping := flatShipping
	if subtotal >= freeShippingThreshold {
		shipping = 0
	}
	tax := round2(subtotal * taxRate)
	total := round2(subtotal + shipping + tax)

	order := &entity.Order{
		Base: entity.Base{
			ID:        orderID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber:    utils.GenerateOrderNumber(),
		UserID:         uid,
		Subtotal:       subtotal,
		Shipping:       shipping,
		Tax:            tax,
		Total:          total,
		Status:         entity.OrderStatusPending,
		ShipName:       req.ShippingAddress.Name,
		ShipLine1:      req.ShippingAddress.Line1,
		ShipLine2:      req.ShippingAddress.Line2,
		ShipCity:       req.ShippingAddress.City,
		ShipState:      req.ShippingAddress.State,
		ShipPostalCode: req.ShippingAddress.PostalCode,
		ShipCountry:    req.ShippingAddress.Country,
	}

	if err := s.repo.Order.CreateWithItems(ctx, order, items); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: not enough stock for one or more items", ErrInsufficientStock)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	detail := response.OrderDetailToResponse(order, items)
	return &detail, nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	uid, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrNotFound)
	}

	orders, err := s.repo.Order.FindByUserID(ctx, uid, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.repo.Order.CountByUserID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	return response.NewPaginatedResponse(response.OrdersToResponse(orders), page, req.Limit(), total), nil
}

// ownedOrder loads an order and checks the caller may see it. Admins see
// every order; customers only their own.
func (s *orderService) ownedOrder(ctx context.Context, userID, role, orderID string) (*entity.Order, error) {
	oid, err := utils.ParseUUID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order ID", ErrNotFound)
	}

	order, err := s.repo.Order.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}

	if role != string(entity.RoleAdmin) && order.UserID.String() != userID {
		return nil, fmt.Errorf("%w: not your order", ErrForbidden)
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, role, orderID string) (*response.OrderDetailResponse, error) {
	order, err := s.ownedOrder(ctx, userID, role, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Order.FindItemsByOrderID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	detail := response.OrderDetailToResponse(order, items)
	return &detail, nil
}

func (s *orderService) CancelOrder(ctx context.Context, userID, role, orderID string) (*response.OrderResponse, error) {
	order, err := s.ownedOrder(ctx, userID, role, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(entity.OrderStatusCancelled) {
		return nil, fmt.Errorf("%w: order in status %s cannot be cancelled", ErrValidation, order.Status)
	}

	if err := s.repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	// Cancelled stock flows back to the catalog.
	items, err := s.repo.Order.FindItemsByOrderID(ctx, order.ID)
	if err != nil {
		s.log.Error("Failed to load items for restock", zap.Error(err), zap.String("order_id", order.ID.String()))
	} else {
		for _, item := range items {
			if _, err := s.repo.Product.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				s.log.Error("Failed to restock product",
					zap.Error(err),
					zap.String("product_id", item.ProductID.String()),
				)
			}
		}
	}

	order.Status = entity.OrderStatusCancelled
	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	oid, err := utils.ParseUUID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order ID", ErrNotFound)
	}

	order, err := s.repo.Order.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}

	next := entity.OrderStatus(req.Status)
	if !order.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrValidation, order.Status, next)
	}

	if err := s.repo.Order.UpdateStatus(ctx, order.ID, next); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = next
	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) ConfirmPayment(ctx context.Context, orderID string) error {
	oid, err := utils.ParseUUID(orderID)
	if err != nil {
		return fmt.Errorf("%w: invalid order ID", ErrNotFound)
	}

	order, err := s.repo.Order.FindByID(ctx, oid)
	if err != nil {
		return fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return fmt.Errorf("%w: order not found", ErrNotFound)
	}

	if !order.Status.CanTransition(entity.OrderStatusProcessing) {
		// Paid again after moving on; nothing to do.
		s.log.Warn("Payment confirmation for order past pending",
			zap.String("order_id", orderID),
			zap.String("status", string(order.Status)),
		)
		return nil
	}

	if err := s.repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusProcessing); err != nil {
		return fmt.Errorf("confirm payment: %w", err)
	}

	return nil
}

func (s *orderService) AdjustStock(ctx context.Context, productID string, req *request.AdjustStockRequest) (*response.StockResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	pid, err := utils.ParseUUID(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product ID", ErrNotFound)
	}

	newStock, err := s.repo.Product.AdjustStock(ctx, pid, req.Delta)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}

	return &response.StockResponse{ProductID: productID, Stock: newStock}, nil
}
