package usecase

import (
	"context"
	"fmt"

	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"

	"go.uber.org/zap"
)

const lowStockThreshold = 5

type AdminService interface {
	ListCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	ListOrders(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AdminOrderResponse], error)
	GetStats(ctx context.Context) (*response.StatsResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	return response.NewPaginatedResponse(response.CustomersToResponse(users), page, req.Limit(), total), nil
}

func (s *adminService) ListOrders(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AdminOrderResponse], error) {
	orders, err := s.repo.Order.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.repo.Order.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	return response.NewPaginatedResponse(response.AdminOrdersToResponse(orders), page, req.Limit(), total), nil
}

func (s *adminService) GetStats(ctx context.Context) (*response.StatsResponse, error) {
	revenue, err := s.repo.Stats.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	orders, err := s.repo.Stats.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	customers, err := s.repo.Stats.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	products, err := s.repo.Stats.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	lowStock, err := s.repo.Stats.FindLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}

	return &response.StatsResponse{
		TotalRevenue:   revenue,
		TotalOrders:    orders,
		TotalCustomers: customers,
		TotalProducts:  products,
		LowStock:       response.ProductsToResponse(lowStock),
	}, nil
}
