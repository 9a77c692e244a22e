package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository/dao"
)

var ErrExpenseRequestNotFound = dao.ErrExpenseRequestNotFound

// ExpenseRequestFilter mirrors dao.ExpenseRequestFilter at the domain seam.
type ExpenseRequestFilter struct {
	CityID      uint
	Status      domain.ExpenseStatus
	RequestType domain.ExpenseType
}

type ExpenseRequestDAO interface {
	Insert(ctx context.Context, request dao.ExpenseRequest) (dao.ExpenseRequest, error)
	FindByID(ctx context.Context, id uint) (dao.ExpenseRequest, error)
	List(ctx context.Context, filter dao.ExpenseRequestFilter, sortSpec string, limit int) ([]dao.ExpenseRequest, error)
	Update(ctx context.Context, request dao.ExpenseRequest) (dao.ExpenseRequest, error)
	UpdateAttachments(ctx context.Context, id uint, attachments datatypes.JSON) (dao.ExpenseRequest, error)
	Delete(ctx context.Context, id uint) error
}

type ExpenseRequestRepository struct {
	dao ExpenseRequestDAO
}

func NewExpenseRequestRepository(dao ExpenseRequestDAO) *ExpenseRequestRepository {
	return &ExpenseRequestRepository{
		dao: dao,
	}
}

func (r *ExpenseRequestRepository) Create(ctx context.Context, request domain.ExpenseRequest) (domain.ExpenseRequest, error) {
	daoRequest, err := r.domainToDAO(request)
	if err != nil {
		return domain.ExpenseRequest{}, err
	}

	created, err := r.dao.Insert(ctx, daoRequest)
	if err != nil {
		return domain.ExpenseRequest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *ExpenseRequestRepository) FindByID(ctx context.Context, id uint) (domain.ExpenseRequest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.ExpenseRequest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *ExpenseRequestRepository) List(ctx context.Context, filter ExpenseRequestFilter, sortSpec string, limit int) ([]domain.ExpenseRequest, error) {
	found, err := r.dao.List(ctx, dao.ExpenseRequestFilter{
		CityID:      filter.CityID,
		Status:      string(filter.Status),
		RequestType: string(filter.RequestType),
	}, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	requests := make([]domain.ExpenseRequest, 0, len(found))
	for _, req := range found {
		request, err := r.daoToDomain(req)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}

func (r *ExpenseRequestRepository) Update(ctx context.Context, request domain.ExpenseRequest) (domain.ExpenseRequest, error) {
	daoRequest, err := r.domainToDAO(request)
	if err != nil {
		return domain.ExpenseRequest{}, err
	}

	updated, err := r.dao.Update(ctx, daoRequest)
	if err != nil {
		return domain.ExpenseRequest{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated)
}

func (r *ExpenseRequestRepository) UpdateAttachments(ctx context.Context, id uint, attachments []domain.Attachment) (domain.ExpenseRequest, error) {
	if attachments == nil {
		attachments = []domain.Attachment{}
	}

	data, err := json.Marshal(attachments)
	if err != nil {
		return domain.ExpenseRequest{}, fmt.Errorf("marshal attachments -> %w", err)
	}

	updated, err := r.dao.UpdateAttachments(ctx, id, datatypes.JSON(data))
	if err != nil {
		return domain.ExpenseRequest{}, fmt.Errorf("r.dao.UpdateAttachments -> %w", err)
	}

	return r.daoToDomain(updated)
}

func (r *ExpenseRequestRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ExpenseRequestRepository) daoToDomain(e dao.ExpenseRequest) (domain.ExpenseRequest, error) {
	request := domain.ExpenseRequest{
		ID:              e.ID,
		RequestName:     e.RequestName,
		Email:           e.Email,
		RequestType:     domain.ExpenseType(e.RequestType),
		EstimatedAmount: e.EstimatedAmount,
		IBAN:            e.IBAN,
		ShippingAddress: e.ShippingAddress,
		AdditionalInfo:  e.AdditionalInfo,
		Attachments:     []domain.Attachment{},
		Status:          domain.ExpenseStatus(e.Status),
		CityID:          e.CityID,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	if len(e.Attachments) > 0 {
		if err := json.Unmarshal(e.Attachments, &request.Attachments); err != nil {
			return domain.ExpenseRequest{}, fmt.Errorf("unmarshal expense request %v attachments -> %w", e.ID, err)
		}
	}

	if e.City.ID != 0 {
		city := cityDAOToDomain(e.City)
		request.City = &city
	}
	if e.Creator.ID != 0 {
		request.Creator = &domain.User{
			ID:        e.Creator.ID,
			FirstName: e.Creator.FirstName,
			LastName:  e.Creator.LastName,
		}
	}

	return request, nil
}

func (r *ExpenseRequestRepository) domainToDAO(e domain.ExpenseRequest) (dao.ExpenseRequest, error) {
	attachments := e.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}

	data, err := json.Marshal(attachments)
	if err != nil {
		return dao.ExpenseRequest{}, fmt.Errorf("marshal expense request attachments -> %w", err)
	}

	return dao.ExpenseRequest{
		ID:              e.ID,
		RequestName:     e.RequestName,
		Email:           e.Email,
		RequestType:     string(e.RequestType),
		EstimatedAmount: e.EstimatedAmount,
		IBAN:            e.IBAN,
		ShippingAddress: e.ShippingAddress,
		AdditionalInfo:  e.AdditionalInfo,
		Attachments:     datatypes.JSON(data),
		Status:          string(e.Status),
		CityID:          e.CityID,
		CreatedBy:       e.CreatedBy,
	}, nil
}
