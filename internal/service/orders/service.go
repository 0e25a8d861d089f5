package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/business"
	customerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/customer"
	orderRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/order"
	"github.com/m04kA/SMC-ReservationService/internal/service/orders/models"
)

// Service сервис чтения заказов и клиентов
type Service struct {
	orderRepo    OrderRepository
	businessRepo BusinessRepository
	customerRepo CustomerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	orderRepo OrderRepository,
	businessRepo BusinessRepository,
	customerRepo CustomerRepository,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:    orderRepo,
		businessRepo: businessRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// GetOrders заказы бизнеса для владельца
func (s *Service) GetOrders(ctx context.Context, req *models.GetOrdersRequest) ([]*models.OrderResponse, error) {
	s.logger.Info("GetOrders: account=%s, business=%s, status=%v", req.AccountID, req.BusinessID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetOrders: invalid filter: %v", err)
		return nil, err
	}

	if err := s.checkOwner(ctx, "GetOrders", req.AccountID, req.BusinessID); err != nil {
		return nil, err
	}

	list, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetOrders: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetOrders - repository error: %v", ErrInternal, err)
	}

	result := make([]*models.OrderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, models.FromDomainOrder(o))
	}

	s.logger.Info("GetOrders: found %d orders for business=%s", len(result), req.BusinessID)
	return result, nil
}

// GetOrder заказ с контактом клиента для владельца
func (s *Service) GetOrder(ctx context.Context, accountID, businessID, orderID uuid.UUID) (*models.OrderResponse, error) {
	s.logger.Info("GetOrder: account=%s, business=%s, order=%s", accountID, businessID, orderID)

	if err := s.checkOwner(ctx, "GetOrder", accountID, businessID); err != nil {
		return nil, err
	}

	o, err := s.getOrder(ctx, "GetOrder", orderID)
	if err != nil {
		return nil, err
	}
	if o.BusinessID != businessID {
		return nil, domain.ErrUnknownOrder
	}

	resp := models.FromDomainOrder(o)
	c, err := s.customerRepo.GetByID(ctx, o.CustomerID)
	switch {
	case err == nil:
		resp.Customer = models.FromDomainCustomer(c)
	case errors.Is(err, customerRepo.ErrCustomerNotFound):
		s.logger.Warn("GetOrder: customer id=%s of order id=%s not found", o.CustomerID, o.ID)
	default:
		s.logger.Error("GetOrder: failed to get customer id=%s: %v", o.CustomerID, err)
		return nil, fmt.Errorf("%w: GetOrder - customer repository error: %v", ErrInternal, err)
	}
	return resp, nil
}

// GetOrderLite публичный вид заказа по его id
func (s *Service) GetOrderLite(ctx context.Context, orderID uuid.UUID) (*models.OrderLiteResponse, error) {
	s.logger.Info("GetOrderLite: order=%s", orderID)

	o, err := s.getOrder(ctx, "GetOrderLite", orderID)
	if err != nil {
		return nil, err
	}

	b, err := s.businessRepo.GetByID(ctx, o.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, domain.ErrBusinessNotFound
		}
		s.logger.Error("GetOrderLite: failed to get business id=%s: %v", o.BusinessID, err)
		return nil, fmt.Errorf("%w: GetOrderLite - business repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLite(b, o), nil
}

// GetCustomers клиенты бизнеса, различаемые по email
func (s *Service) GetCustomers(ctx context.Context, accountID, businessID uuid.UUID) ([]models.CustomerSummaryResponse, error) {
	s.logger.Info("GetCustomers: account=%s, business=%s", accountID, businessID)

	if err := s.checkOwner(ctx, "GetCustomers", accountID, businessID); err != nil {
		return nil, err
	}

	list, err := s.customerRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("GetCustomers: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetCustomers - repository error: %v", ErrInternal, err)
	}

	result := make([]models.CustomerSummaryResponse, 0, len(list))
	for i := range list {
		result = append(result, models.CustomerSummaryResponse{
			CustomerResponse: *models.FromDomainCustomer(&list[i].Customer),
			Orders:           list[i].Orders,
			LastOrderAt:      list[i].LastOrderAt,
		})
	}
	return result, nil
}

func (s *Service) getOrder(ctx context.Context, op string, orderID uuid.UUID) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("%s: order id=%s not found", op, orderID)
			return nil, domain.ErrUnknownOrder
		}
		s.logger.Error("%s: failed to get order id=%s: %v", op, orderID, err)
		return nil, fmt.Errorf("%w: %s - order repository error: %v", ErrInternal, op, err)
	}
	return o, nil
}

func (s *Service) checkOwner(ctx context.Context, op string, accountID, businessID uuid.UUID) error {
	b, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return domain.ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business id=%s: %v", op, businessID, err)
		return fmt.Errorf("%w: %s - business repository error: %v", ErrInternal, op, err)
	}
	if !b.IsOwnedBy(accountID) {
		s.logger.Warn("%s: account=%s is not the owner of business=%s", op, accountID, businessID)
		return domain.ErrAccessDenied
	}
	return nil
}
