package usecase

import (
	"context"
	"testing"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProductRepo struct {
	products     map[uuid.UUID]*entity.Product
	variants     map[uuid.UUID][]*entity.ProductVariant
	adjustments  map[uuid.UUID]int
	adjustResult int
	adjustErr    error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:    map[uuid.UUID]*entity.Product{},
		variants:    map[uuid.UUID][]*entity.ProductVariant{},
		adjustments: map[uuid.UUID]int{},
	}
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, _ *uuid.UUID, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) CountAll(_ context.Context, _ *uuid.UUID) (int64, error) { return 0, nil }

func (f *fakeProductRepo) FindFeatured(_ context.Context, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) FindImages(_ context.Context, _ uuid.UUID) ([]*entity.ProductImage, error) {
	return nil, nil
}

func (f *fakeProductRepo) FindTags(_ context.Context, _ uuid.UUID) ([]string, error) {
	return nil, nil
}

func (f *fakeProductRepo) FindVariants(_ context.Context, productID uuid.UUID) ([]*entity.ProductVariant, error) {
	return f.variants[productID], nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) (int, error) {
	if f.adjustErr != nil {
		return 0, f.adjustErr
	}
	f.adjustments[id] += delta
	return f.adjustResult, nil
}

type fakeOrderRepo struct {
	orders    map[uuid.UUID]*entity.Order
	items     map[uuid.UUID][]*entity.OrderItem
	createErr error
	statuses  []entity.OrderStatus
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[uuid.UUID]*entity.Order{},
		items:  map[uuid.UUID][]*entity.OrderItem{},
	}
}

func (f *fakeOrderRepo) CreateWithItems(_ context.Context, order *entity.Order, items []*entity.OrderItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.orders[order.ID] = order
	f.items[order.ID] = items
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) FindItemsByOrderID(_ context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) FindByUserID(_ context.Context, _ uuid.UUID, _, _ int) ([]*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) CountByUserID(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil }

func (f *fakeOrderRepo) FindAll(_ context.Context, _, _ int) ([]*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) CountAll(_ context.Context) (int64, error) { return 0, nil }

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) error {
	if order, ok := f.orders[id]; ok {
		order.Status = status
	}
	f.statuses = append(f.statuses, status)
	return nil
}

func orderTestService(products *fakeProductRepo, orders *fakeOrderRepo) OrderService {
	repo := &repository.Repository{
		Product: products,
		Order:   orders,
	}
	return NewOrderService(repo, zap.NewNop())
}

func addressReq() request.ShippingAddressRequest {
	return request.ShippingAddressRequest{
		Name:       "Jane Doe",
		Line1:      "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
	}
}

func seedProduct(products *fakeProductRepo, price float64, stock int) *entity.Product {
	product := &entity.Product{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Slug:         "widget",
		Name:         "Widget",
		Price:        price,
		Stock:        stock,
	}
	products.products[product.ID] = product
	return product
}

func TestCreateOrderComputesTotals(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	product := seedProduct(products, 30.00, 10)
	svc := orderTestService(products, orders)

	userID := uuid.New().String()
	detail, err := svc.CreateOrder(context.Background(), userID, &request.CreateOrderRequest{
		Items: []request.OrderItemRequest{
			{ProductID: product.ID.String(), Quantity: 2},
		},
		ShippingAddress: addressReq(),
	})
	require.NoError(t, err)

	assert.Equal(t, 60.00, detail.Subtotal)
	assert.Equal(t, 10.00, detail.Shipping)
	assert.Equal(t, 6.00, detail.Tax)
	assert.Equal(t, 76.00, detail.Total)
	assert.Equal(t, entity.OrderStatusPending, detail.Status)
	assert.Len(t, detail.Items, 1)
	assert.Equal(t, 30.00, detail.Items[0].UnitPrice)
}

func TestCreateOrderFreeShippingOverThreshold(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	product := seedProduct(products, 60.00, 10)
	svc := orderTestService(products, orders)

	detail, err := svc.CreateOrder(context.Background(), uuid.New().String(), &request.CreateOrderRequest{
		Items: []request.OrderItemRequest{
			{ProductID: product.ID.String(), Quantity: 2},
		},
		ShippingAddress: addressReq(),
	})
	require.NoError(t, err)

	assert.Equal(t, 120.00, detail.Subtotal)
	assert.Equal(t, 0.00, detail.Shipping)
}

func TestCreateOrderUsesVariantPrice(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	product := seedProduct(products, 30.00, 10)
	variant := &entity.ProductVariant{
		ID:        uuid.New(),
		ProductID: product.ID,
		SKU:       "WIDGET-XL",
		Price:     45.00,
		Stock:     5,
		Available: true,
	}
	products.variants[product.ID] = []*entity.ProductVariant{variant}
	svc := orderTestService(products, orders)

	variantID := variant.ID.String()
	detail, err := svc.CreateOrder(context.Background(), uuid.New().String(), &request.CreateOrderRequest{
		Items: []request.OrderItemRequest{
			{ProductID: product.ID.String(), VariantID: &variantID, Quantity: 1},
		},
		ShippingAddress: addressReq(),
	})
	require.NoError(t, err)

	assert.Equal(t, 45.00, detail.Subtotal)
	assert.Equal(t, 45.00, detail.Items[0].UnitPrice)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	orders.createErr = repository.ErrInsufficientStock
	product := seedProduct(products, 30.00, 1)
	svc := orderTestService(products, orders)

	_, err := svc.CreateOrder(context.Background(), uuid.New().String(), &request.CreateOrderRequest{
		Items: []request.OrderItemRequest{
			{ProductID: product.ID.String(), Quantity: 5},
		},
		ShippingAddress: addressReq(),
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc := orderTestService(newFakeProductRepo(), newFakeOrderRepo())

	_, err := svc.CreateOrder(context.Background(), uuid.New().String(), &request.CreateOrderRequest{
		Items: []request.OrderItemRequest{
			{ProductID: uuid.New().String(), Quantity: 1},
		},
		ShippingAddress: addressReq(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedOrder(orders *fakeOrderRepo, userID uuid.UUID, status entity.OrderStatus) *entity.Order {
	order := &entity.Order{
		Base:        entity.Base{ID: uuid.New()},
		OrderNumber: "ORD-TEST",
		UserID:      userID,
		Status:      status,
	}
	orders.orders[order.ID] = order
	return order
}

func TestGetOrderOwnership(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	owner := uuid.New()
	order := seedOrder(orders, owner, entity.OrderStatusPending)
	svc := orderTestService(products, orders)

	// Owner sees it
	_, err := svc.GetOrder(context.Background(), owner.String(), "customer", order.ID.String())
	assert.NoError(t, err)

	// Any admin sees it
	_, err = svc.GetOrder(context.Background(), uuid.New().String(), "admin", order.ID.String())
	assert.NoError(t, err)

	// Another customer does not
	_, err = svc.GetOrder(context.Background(), uuid.New().String(), "customer", order.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelOrderRestocksItems(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	owner := uuid.New()
	product := seedProduct(products, 30.00, 10)
	order := seedOrder(orders, owner, entity.OrderStatusPending)
	orders.items[order.ID] = []*entity.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: product.ID, Quantity: 3, UnitPrice: 30.00},
	}
	svc := orderTestService(products, orders)

	resp, err := svc.CancelOrder(context.Background(), owner.String(), "customer", order.ID.String())
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)
	assert.Equal(t, 3, products.adjustments[product.ID])
}

func TestCancelOrderRejectedAfterShipping(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	owner := uuid.New()
	order := seedOrder(orders, owner, entity.OrderStatusShipped)
	svc := orderTestService(products, orders)

	_, err := svc.CancelOrder(context.Background(), owner.String(), "customer", order.ID.String())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatusRejectsBackwardTransition(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	order := seedOrder(orders, uuid.New(), entity.OrderStatusShipped)
	svc := orderTestService(products, orders)

	_, err := svc.UpdateStatus(context.Background(), order.ID.String(), &request.UpdateOrderStatusRequest{
		Status: "pending",
	})
	assert.ErrorIs(t, err, ErrValidation)

	resp, err := svc.UpdateStatus(context.Background(), order.ID.String(), &request.UpdateOrderStatusRequest{
		Status: "delivered",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, resp.Status)
}

func TestConfirmPayment(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	order := seedOrder(orders, uuid.New(), entity.OrderStatusPending)
	svc := orderTestService(products, orders)

	require.NoError(t, svc.ConfirmPayment(context.Background(), order.ID.String()))
	assert.Equal(t, entity.OrderStatusProcessing, order.Status)

	// Confirming again is a no-op, not an error
	require.NoError(t, svc.ConfirmPayment(context.Background(), order.ID.String()))
	assert.Equal(t, entity.OrderStatusProcessing, order.Status)
}

func TestAdjustStockNotFound(t *testing.T) {
	products := newFakeProductRepo()
	products.adjustErr = repository.ErrProductNotFound
	svc := orderTestService(products, newFakeOrderRepo())

	_, err := svc.AdjustStock(context.Background(), uuid.New().String(), &request.AdjustStockRequest{Delta: 5})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustStockReturnsNewLevel(t *testing.T) {
	products := newFakeProductRepo()
	products.adjustResult = 12
	svc := orderTestService(products, newFakeOrderRepo())

	id := uuid.New()
	resp, err := svc.AdjustStock(context.Background(), id.String(), &request.AdjustStockRequest{Delta: -3})
	require.NoError(t, err)

	assert.Equal(t, 12, resp.Stock)
	assert.Equal(t, -3, products.adjustments[id])
}
