package repository

import (
	"context"
	"fmt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository/dao"
)

var (
	ErrOrderTypeNotFound  = dao.ErrOrderTypeNotFound
	ErrEventOrderNotFound = dao.ErrEventOrderNotFound
)

type OrderTypeDAO interface {
	Insert(ctx context.Context, orderType dao.OrderType) (dao.OrderType, error)
	FindByID(ctx context.Context, id uint) (dao.OrderType, error)
	List(ctx context.Context, sortSpec string, limit int) ([]dao.OrderType, error)
	Update(ctx context.Context, orderType dao.OrderType) (dao.OrderType, error)
	Delete(ctx context.Context, id uint) error
}

type OrderTypeRepository struct {
	dao OrderTypeDAO
}

func NewOrderTypeRepository(dao OrderTypeDAO) *OrderTypeRepository {
	return &OrderTypeRepository{
		dao: dao,
	}
}

func (r *OrderTypeRepository) Create(ctx context.Context, orderType domain.OrderType) (domain.OrderType, error) {
	created, err := r.dao.Insert(ctx, orderTypeDomainToDAO(orderType))
	if err != nil {
		return domain.OrderType{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return orderTypeDAOToDomain(created), nil
}

func (r *OrderTypeRepository) FindByID(ctx context.Context, id uint) (domain.OrderType, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.OrderType{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return orderTypeDAOToDomain(found), nil
}

func (r *OrderTypeRepository) List(ctx context.Context, sortSpec string, limit int) ([]domain.OrderType, error) {
	found, err := r.dao.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	orderTypes := make([]domain.OrderType, 0, len(found))
	for _, ot := range found {
		orderTypes = append(orderTypes, orderTypeDAOToDomain(ot))
	}

	return orderTypes, nil
}

func (r *OrderTypeRepository) Update(ctx context.Context, orderType domain.OrderType) (domain.OrderType, error) {
	updated, err := r.dao.Update(ctx, orderTypeDomainToDAO(orderType))
	if err != nil {
		return domain.OrderType{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return orderTypeDAOToDomain(updated), nil
}

func (r *OrderTypeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

type EventOrderDAO interface {
	Insert(ctx context.Context, order dao.EventOrder) (dao.EventOrder, error)
	FindByID(ctx context.Context, id uint) (dao.EventOrder, error)
	List(ctx context.Context, eventID uint, sortSpec string, limit int) ([]dao.EventOrder, error)
	Update(ctx context.Context, order dao.EventOrder) (dao.EventOrder, error)
	Delete(ctx context.Context, id uint) error
}

type EventOrderRepository struct {
	dao EventOrderDAO
}

func NewEventOrderRepository(dao EventOrderDAO) *EventOrderRepository {
	return &EventOrderRepository{
		dao: dao,
	}
}

func (r *EventOrderRepository) Create(ctx context.Context, order domain.EventOrder) (domain.EventOrder, error) {
	created, err := r.dao.Insert(ctx, eventOrderDomainToDAO(order))
	if err != nil {
		return domain.EventOrder{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventOrderDAOToDomain(created), nil
}

func (r *EventOrderRepository) FindByID(ctx context.Context, id uint) (domain.EventOrder, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.EventOrder{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventOrderDAOToDomain(found), nil
}

func (r *EventOrderRepository) List(ctx context.Context, eventID uint, sortSpec string, limit int) ([]domain.EventOrder, error) {
	found, err := r.dao.List(ctx, eventID, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	orders := make([]domain.EventOrder, 0, len(found))
	for _, o := range found {
		orders = append(orders, eventOrderDAOToDomain(o))
	}

	return orders, nil
}

func (r *EventOrderRepository) Update(ctx context.Context, order domain.EventOrder) (domain.EventOrder, error) {
	updated, err := r.dao.Update(ctx, eventOrderDomainToDAO(order))
	if err != nil {
		return domain.EventOrder{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventOrderDAOToDomain(updated), nil
}

func (r *EventOrderRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func orderTypeDAOToDomain(ot dao.OrderType) domain.OrderType {
	return domain.OrderType{
		ID:          ot.ID,
		Name:        ot.Name,
		Description: ot.Description,
		Priority:    domain.OrderPriority(ot.Priority),
		Active:      ot.Active,
		CreatedAt:   ot.CreatedAt,
		UpdatedAt:   ot.UpdatedAt,
	}
}

func orderTypeDomainToDAO(ot domain.OrderType) dao.OrderType {
	return dao.OrderType{
		ID:          ot.ID,
		Name:        ot.Name,
		Description: ot.Description,
		Priority:    string(ot.Priority),
		Active:      ot.Active,
	}
}

func eventOrderDAOToDomain(o dao.EventOrder) domain.EventOrder {
	order := domain.EventOrder{
		ID:              o.ID,
		EventID:         o.EventID,
		OrderTypeID:     o.OrderTypeID,
		ResponsibleID:   o.ResponsibleUserID,
		Status:          domain.OrderStatus(o.Status),
		DueDate:         o.DueDate,
		Notes:           o.Notes,
		CompletionNotes: o.CompletionNotes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}

	if o.OrderType.ID != 0 {
		orderType := orderTypeDAOToDomain(o.OrderType)
		order.OrderType = &orderType
	}
	if o.Responsible.ID != 0 {
		order.Responsible = &domain.User{
			ID:        o.Responsible.ID,
			FirstName: o.Responsible.FirstName,
			LastName:  o.Responsible.LastName,
			Role:      domain.Role(o.Responsible.Role),
		}
	}
	if o.Event.ID != 0 {
		event := domain.Event{
			ID:          o.Event.ID,
			Description: o.Event.Description,
			CityID:      o.Event.CityID,
			Date:        o.Event.Date,
			Status:      domain.EventStatus(o.Event.Status),
		}
		if o.Event.City.ID != 0 {
			city := cityDAOToDomain(o.Event.City)
			event.City = &city
		}
		order.Event = &event
	}

	return order
}

func eventOrderDomainToDAO(o domain.EventOrder) dao.EventOrder {
	return dao.EventOrder{
		ID:                o.ID,
		EventID:           o.EventID,
		OrderTypeID:       o.OrderTypeID,
		ResponsibleUserID: o.ResponsibleID,
		Status:            string(o.Status),
		DueDate:           o.DueDate,
		Notes:             o.Notes,
		CompletionNotes:   o.CompletionNotes,
	}
}
