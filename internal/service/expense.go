package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository"
	"github.com/centerthink/centerthink-api/internal/storage"
)

func zapWarnAttachment(requestID uint, path string, err error) {
	zap.L().Warn("failed to delete stored attachment",
		zap.Uint("expense_request_id", requestID),
		zap.String("path", path),
		zap.Error(err),
	)
}

var (
	ErrExpenseRequestNotFound = repository.ErrExpenseRequestNotFound
	ErrAttachmentNotFound     = errors.New("attachment not found")
)

type ExpenseRequestRepository interface {
	Create(ctx context.Context, request domain.ExpenseRequest) (domain.ExpenseRequest, error)
	FindByID(ctx context.Context, id uint) (domain.ExpenseRequest, error)
	List(ctx context.Context, filter repository.ExpenseRequestFilter, sortSpec string, limit int) ([]domain.ExpenseRequest, error)
	Update(ctx context.Context, request domain.ExpenseRequest) (domain.ExpenseRequest, error)
	UpdateAttachments(ctx context.Context, id uint, attachments []domain.Attachment) (domain.ExpenseRequest, error)
	Delete(ctx context.Context, id uint) error
}

type ExpenseService struct {
	repo  ExpenseRequestRepository
	store storage.Store
}

func NewExpenseService(repo ExpenseRequestRepository, store storage.Store) *ExpenseService {
	return &ExpenseService{
		repo:  repo,
		store: store,
	}
}

func (s *ExpenseService) Create(ctx context.Context, request domain.ExpenseRequest) (domain.ExpenseRequest, error) {
	if request.Status == "" {
		request.Status = domain.ExpensePending
	}

	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return domain.ExpenseRequest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ExpenseService) Get(ctx context.Context, id uint) (domain.ExpenseRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseRequestNotFound) {
			return domain.ExpenseRequest{}, ErrExpenseRequestNotFound
		}

		return domain.ExpenseRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return request, nil
}

// List returns expense requests matching the filter, newest first by
// default. Zero-valued filter fields match everything.
func (s *ExpenseService) List(ctx context.Context, filter repository.ExpenseRequestFilter, sortSpec string, limit int) ([]domain.ExpenseRequest, error) {
	requests, err := s.repo.List(ctx, filter, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return requests, nil
}

func (s *ExpenseService) Update(ctx context.Context, request domain.ExpenseRequest) (domain.ExpenseRequest, error) {
	updated, err := s.repo.Update(ctx, request)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseRequestNotFound) {
			return domain.ExpenseRequest{}, ErrExpenseRequestNotFound
		}

		return domain.ExpenseRequest{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Delete removes the request and best-effort cleans up its stored
// attachments.
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	request, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	for _, attachment := range request.Attachments {
		if err = s.store.Delete(attachment.Path); err != nil {
			zapWarnAttachment(id, attachment.Path, err)
		}
	}

	return nil
}

// Upload is one incoming attachment file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// AddAttachments stores the uploaded files and appends their metadata to the
// request's attachment list.
func (s *ExpenseService) AddAttachments(ctx context.Context, id uint, uploads []Upload) (domain.ExpenseRequest, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return domain.ExpenseRequest{}, err
	}

	folder := fmt.Sprintf("expense-requests/%v", id)
	attachments := request.Attachments

	for _, upload := range uploads {
		path, err := s.store.Save(folder, upload.Filename, upload.Reader)
		if err != nil {
			return domain.ExpenseRequest{}, fmt.Errorf("s.store.Save -> %w", err)
		}

		url, err := s.store.SignedURL(path)
		if err != nil {
			return domain.ExpenseRequest{}, fmt.Errorf("s.store.SignedURL -> %w", err)
		}

		attachments = append(attachments, domain.Attachment{
			Name:       upload.Filename,
			URL:        url,
			Path:       path,
			Size:       upload.Size,
			Type:       upload.ContentType,
			UploadedAt: time.Now().UTC(),
		})
	}

	updated, err := s.repo.UpdateAttachments(ctx, id, attachments)
	if err != nil {
		return domain.ExpenseRequest{}, fmt.Errorf("s.repo.UpdateAttachments -> %w", err)
	}

	return updated, nil
}

// RemoveAttachment deletes one attachment by its storage path.
func (s *ExpenseService) RemoveAttachment(ctx context.Context, id uint, path string) (domain.ExpenseRequest, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return domain.ExpenseRequest{}, err
	}

	kept := make([]domain.Attachment, 0, len(request.Attachments))
	found := false
	for _, attachment := range request.Attachments {
		if attachment.Path == path {
			found = true
			continue
		}
		kept = append(kept, attachment)
	}
	if !found {
		return domain.ExpenseRequest{}, ErrAttachmentNotFound
	}

	updated, err := s.repo.UpdateAttachments(ctx, id, kept)
	if err != nil {
		return domain.ExpenseRequest{}, fmt.Errorf("s.repo.UpdateAttachments -> %w", err)
	}

	if err = s.store.Delete(path); err != nil {
		zapWarnAttachment(id, path, err)
	}

	return updated, nil
}

// RefreshAttachmentURLs re-signs the download URLs, which expire after
// storage.SignedURLTTL.
func (s *ExpenseService) RefreshAttachmentURLs(ctx context.Context, id uint) (domain.ExpenseRequest, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return domain.ExpenseRequest{}, err
	}

	for i := range request.Attachments {
		url, err := s.store.SignedURL(request.Attachments[i].Path)
		if err != nil {
			return domain.ExpenseRequest{}, fmt.Errorf("s.store.SignedURL -> %w", err)
		}
		request.Attachments[i].URL = url
	}

	return request, nil
}
