package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository"
)

var (
	ErrOrderTypeNotFound  = repository.ErrOrderTypeNotFound
	ErrEventOrderNotFound = repository.ErrEventOrderNotFound
)

type OrderTypeRepository interface {
	Create(ctx context.Context, orderType domain.OrderType) (domain.OrderType, error)
	FindByID(ctx context.Context, id uint) (domain.OrderType, error)
	List(ctx context.Context, sortSpec string, limit int) ([]domain.OrderType, error)
	Update(ctx context.Context, orderType domain.OrderType) (domain.OrderType, error)
	Delete(ctx context.Context, id uint) error
}

type EventOrderRepository interface {
	Create(ctx context.Context, order domain.EventOrder) (domain.EventOrder, error)
	FindByID(ctx context.Context, id uint) (domain.EventOrder, error)
	List(ctx context.Context, eventID uint, sortSpec string, limit int) ([]domain.EventOrder, error)
	Update(ctx context.Context, order domain.EventOrder) (domain.EventOrder, error)
	Delete(ctx context.Context, id uint) error
}

type OrderService struct {
	types  OrderTypeRepository
	orders EventOrderRepository
	events EventRepository
}

func NewOrderService(types OrderTypeRepository, orders EventOrderRepository, events EventRepository) *OrderService {
	return &OrderService{
		types:  types,
		orders: orders,
		events: events,
	}
}

func (s *OrderService) CreateType(ctx context.Context, orderType domain.OrderType) (domain.OrderType, error) {
	if orderType.Priority == "" {
		orderType.Priority = domain.PriorityMedium
	}

	created, err := s.types.Create(ctx, orderType)
	if err != nil {
		return domain.OrderType{}, fmt.Errorf("s.types.Create -> %w", err)
	}

	return created, nil
}

func (s *OrderService) GetType(ctx context.Context, id uint) (domain.OrderType, error) {
	orderType, err := s.types.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderTypeNotFound) {
			return domain.OrderType{}, ErrOrderTypeNotFound
		}

		return domain.OrderType{}, fmt.Errorf("s.types.FindByID -> %w", err)
	}

	return orderType, nil
}

func (s *OrderService) ListTypes(ctx context.Context, sortSpec string, limit int) ([]domain.OrderType, error) {
	orderTypes, err := s.types.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("s.types.List -> %w", err)
	}

	return orderTypes, nil
}

func (s *OrderService) UpdateType(ctx context.Context, orderType domain.OrderType) (domain.OrderType, error) {
	updated, err := s.types.Update(ctx, orderType)
	if err != nil {
		if errors.Is(err, repository.ErrOrderTypeNotFound) {
			return domain.OrderType{}, ErrOrderTypeNotFound
		}

		return domain.OrderType{}, fmt.Errorf("s.types.Update -> %w", err)
	}

	return updated, nil
}

func (s *OrderService) DeleteType(ctx context.Context, id uint) error {
	if err := s.types.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderTypeNotFound) {
			return ErrOrderTypeNotFound
		}

		return fmt.Errorf("s.types.Delete -> %w", err)
	}

	return nil
}

// CreateOrder attaches an order to an event. The event and order type must
// both exist.
func (s *OrderService) CreateOrder(ctx context.Context, order domain.EventOrder) (domain.EventOrder, error) {
	if _, err := s.events.FindByID(ctx, order.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.EventOrder{}, ErrEventNotFound
		}

		return domain.EventOrder{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}
	if _, err := s.types.FindByID(ctx, order.OrderTypeID); err != nil {
		if errors.Is(err, repository.ErrOrderTypeNotFound) {
			return domain.EventOrder{}, ErrOrderTypeNotFound
		}

		return domain.EventOrder{}, fmt.Errorf("s.types.FindByID -> %w", err)
	}

	if order.Status == "" {
		order.Status = domain.OrderPending
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return domain.EventOrder{}, fmt.Errorf("s.orders.Create -> %w", err)
	}

	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (domain.EventOrder, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventOrderNotFound) {
			return domain.EventOrder{}, ErrEventOrderNotFound
		}

		return domain.EventOrder{}, fmt.Errorf("s.orders.FindByID -> %w", err)
	}

	return order, nil
}

// ListOrders returns event orders, newest first by default. eventID 0 means
// all events.
func (s *OrderService) ListOrders(ctx context.Context, eventID uint, sortSpec string, limit int) ([]domain.EventOrder, error) {
	orders, err := s.orders.List(ctx, eventID, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("s.orders.List -> %w", err)
	}

	return orders, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, order domain.EventOrder) (domain.EventOrder, error) {
	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		if errors.Is(err, repository.ErrEventOrderNotFound) {
			return domain.EventOrder{}, ErrEventOrderNotFound
		}

		return domain.EventOrder{}, fmt.Errorf("s.orders.Update -> %w", err)
	}

	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventOrderNotFound) {
			return ErrEventOrderNotFound
		}

		return fmt.Errorf("s.orders.Delete -> %w", err)
	}

	return nil
}
