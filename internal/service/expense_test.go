package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository"
	"github.com/centerthink/centerthink-api/internal/storage"
)

type mockExpenseRepo struct {
	requests map[uint]domain.ExpenseRequest
	nextID   uint
}

func newMockExpenseRepo(requests ...domain.ExpenseRequest) *mockExpenseRepo {
	m := &mockExpenseRepo{requests: map[uint]domain.ExpenseRequest{}, nextID: 1}
	for _, request := range requests {
		m.requests[request.ID] = request
		if request.ID >= m.nextID {
			m.nextID = request.ID + 1
		}
	}

	return m
}

func (m *mockExpenseRepo) Create(_ context.Context, request domain.ExpenseRequest) (domain.ExpenseRequest, error) {
	request.ID = m.nextID
	m.nextID++
	m.requests[request.ID] = request

	return request, nil
}

func (m *mockExpenseRepo) FindByID(_ context.Context, id uint) (domain.ExpenseRequest, error) {
	request, ok := m.requests[id]
	if !ok {
		return domain.ExpenseRequest{}, repository.ErrExpenseRequestNotFound
	}

	return request, nil
}

func (m *mockExpenseRepo) List(_ context.Context, filter repository.ExpenseRequestFilter, _ string, _ int) ([]domain.ExpenseRequest, error) {
	requests := make([]domain.ExpenseRequest, 0, len(m.requests))
	for _, request := range m.requests {
		if filter.CityID != 0 && request.CityID != filter.CityID {
			continue
		}
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		requests = append(requests, request)
	}

	return requests, nil
}

func (m *mockExpenseRepo) Update(_ context.Context, request domain.ExpenseRequest) (domain.ExpenseRequest, error) {
	if _, ok := m.requests[request.ID]; !ok {
		return domain.ExpenseRequest{}, repository.ErrExpenseRequestNotFound
	}
	m.requests[request.ID] = request

	return request, nil
}

func (m *mockExpenseRepo) UpdateAttachments(_ context.Context, id uint, attachments []domain.Attachment) (domain.ExpenseRequest, error) {
	request, ok := m.requests[id]
	if !ok {
		return domain.ExpenseRequest{}, repository.ErrExpenseRequestNotFound
	}
	request.Attachments = attachments
	m.requests[id] = request

	return request, nil
}

func (m *mockExpenseRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.requests[id]; !ok {
		return repository.ErrExpenseRequestNotFound
	}
	delete(m.requests, id)

	return nil
}

func newTestExpenseService(t *testing.T, repo *mockExpenseRepo) *ExpenseService {
	t.Helper()

	store := storage.NewLocalStore(t.TempDir(), "http://api.centerthink.test", "test-signing-key")

	return NewExpenseService(repo, store)
}

func TestExpenseService_Create(t *testing.T) {
	repo := newMockExpenseRepo()
	svc := newTestExpenseService(t, repo)

	created, err := svc.Create(context.Background(), domain.ExpenseRequest{
		RequestName:     "Camisetas octubre",
		Email:           "ana@example.com",
		RequestType:     domain.ExpenseShirts,
		EstimatedAmount: 250,
		CityID:          1,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ExpensePending, created.Status)
}

func TestExpenseService_Attachments(t *testing.T) {
	t.Run("upload stores the file and signs a download URL", func(t *testing.T) {
		repo := newMockExpenseRepo(domain.ExpenseRequest{ID: 7, CityID: 1})
		svc := newTestExpenseService(t, repo)

		updated, err := svc.AddAttachments(context.Background(), 7, []Upload{{
			Filename:    "factura.pdf",
			ContentType: "application/pdf",
			Size:        9,
			Reader:      strings.NewReader("contenido"),
		}})

		require.NoError(t, err)
		require.Len(t, updated.Attachments, 1)

		attachment := updated.Attachments[0]
		assert.Equal(t, "factura.pdf", attachment.Name)
		assert.True(t, strings.HasPrefix(attachment.Path, "expense-requests/7/"))
		assert.Contains(t, attachment.URL, "token=")
		assert.False(t, attachment.UploadedAt.IsZero())

		f, err := svc.store.Open(attachment.Path)
		require.NoError(t, err)
		f.Close()
	})

	t.Run("remove deletes one attachment by path", func(t *testing.T) {
		repo := newMockExpenseRepo(domain.ExpenseRequest{ID: 7, CityID: 1})
		svc := newTestExpenseService(t, repo)

		withFile, err := svc.AddAttachments(context.Background(), 7, []Upload{{
			Filename: "factura.pdf",
			Reader:   strings.NewReader("contenido"),
		}})
		require.NoError(t, err)

		updated, err := svc.RemoveAttachment(context.Background(), 7, withFile.Attachments[0].Path)

		require.NoError(t, err)
		assert.Empty(t, updated.Attachments)
	})

	t.Run("removing an unknown path fails", func(t *testing.T) {
		repo := newMockExpenseRepo(domain.ExpenseRequest{ID: 7, CityID: 1})
		svc := newTestExpenseService(t, repo)

		_, err := svc.RemoveAttachment(context.Background(), 7, "expense-requests/7/nope.pdf")

		assert.ErrorIs(t, err, ErrAttachmentNotFound)
	})

	t.Run("refresh re-signs every download URL", func(t *testing.T) {
		repo := newMockExpenseRepo(domain.ExpenseRequest{ID: 7, CityID: 1})
		svc := newTestExpenseService(t, repo)

		withFile, err := svc.AddAttachments(context.Background(), 7, []Upload{{
			Filename: "factura.pdf",
			Reader:   strings.NewReader("contenido"),
		}})
		require.NoError(t, err)

		refreshed, err := svc.RefreshAttachmentURLs(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, refreshed.Attachments, 1)
		assert.Contains(t, refreshed.Attachments[0].URL, "token=")
		assert.Equal(t, withFile.Attachments[0].Path, refreshed.Attachments[0].Path)
	})
}

func TestExpenseService_Delete(t *testing.T) {
	repo := newMockExpenseRepo(domain.ExpenseRequest{ID: 7, CityID: 1})
	svc := newTestExpenseService(t, repo)

	withFile, err := svc.AddAttachments(context.Background(), 7, []Upload{{
		Filename: "factura.pdf",
		Reader:   strings.NewReader("contenido"),
	}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 7))
	assert.Empty(t, repo.requests)

	_, err = svc.store.Open(withFile.Attachments[0].Path)
	assert.Error(t, err)
}
