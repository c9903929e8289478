//go:build !integration

package documenttype

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"vendorHub/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items  map[uint64]domain.DocumentType
	nextID uint64

	lastOffset, lastLimit int
	lastSearch            string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[uint64]domain.DocumentType{}}
}

func (f *fakeRepo) Create(ctx context.Context, documentType *domain.DocumentType) error {
	f.nextID++
	documentType.ID = f.nextID
	f.items[documentType.ID] = *documentType
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint64) (domain.DocumentType, error) {
	item, ok := f.items[id]
	if !ok {
		return domain.DocumentType{}, fmt.Errorf("document type %w", domain.ErrNotFound)
	}
	return item, nil
}

func (f *fakeRepo) FindByName(ctx context.Context, name string) (domain.DocumentType, error) {
	for _, item := range f.items {
		if strings.EqualFold(item.Name, name) {
			return item, nil
		}
	}
	return domain.DocumentType{}, fmt.Errorf("document type %w", domain.ErrNotFound)
}

func (f *fakeRepo) FindPage(ctx context.Context, search string, offset, limit int) ([]domain.DocumentType, int64, error) {
	f.lastOffset, f.lastLimit, f.lastSearch = offset, limit, search
	out := []domain.DocumentType{}
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(ctx context.Context, documentType *domain.DocumentType) error {
	f.items[documentType.ID] = *documentType
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("document type %w", domain.ErrNotFound)
	}
	delete(f.items, id)
	return nil
}

func TestCreateDocumentType(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDocumentTypeService(repo)
	ctx := context.Background()

	created, err := svc.CreateDocumentType(ctx, &domain.DocumentType{Name: "  GST Certificate "})
	require.NoError(t, err)
	assert.Equal(t, "GST Certificate", created.Name)
	assert.NotZero(t, created.ID)

	_, err = svc.CreateDocumentType(ctx, &domain.DocumentType{Name: "gst certificate"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.CreateDocumentType(ctx, &domain.DocumentType{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestUpdateDocumentType(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDocumentTypeService(repo)
	ctx := context.Background()

	first, err := svc.CreateDocumentType(ctx, &domain.DocumentType{Name: "PAN"})
	require.NoError(t, err)
	_, err = svc.CreateDocumentType(ctx, &domain.DocumentType{Name: "Aadhaar"})
	require.NoError(t, err)

	updated, err := svc.UpdateDocumentType(ctx, &domain.DocumentType{ID: first.ID, Name: "pan"})
	require.NoError(t, err, "renaming to its own name in another case is allowed")
	assert.Equal(t, "pan", updated.Name)

	_, err = svc.UpdateDocumentType(ctx, &domain.DocumentType{ID: first.ID, Name: "AADHAAR"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.UpdateDocumentType(ctx, &domain.DocumentType{ID: 99, Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateDocumentType(ctx, &domain.DocumentType{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestDeleteDocumentType(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDocumentTypeService(repo)
	ctx := context.Background()

	created, err := svc.CreateDocumentType(ctx, &domain.DocumentType{Name: "PAN"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDocumentType(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteDocumentType(ctx, created.ID), domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteDocumentType(ctx, 0), domain.ErrInvalidArgument)
}

func TestListDocumentTypes(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDocumentTypeService(repo)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := svc.CreateDocumentType(ctx, &domain.DocumentType{Name: fmt.Sprintf("Type %d", i)})
		require.NoError(t, err)
	}

	page, err := svc.ListDocumentTypes(ctx, 2, 5, " type ")
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastOffset)
	assert.Equal(t, 5, repo.lastLimit)
	assert.Equal(t, "type", repo.lastSearch)
	assert.Equal(t, domain.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 12, ItemsPerPage: 5}, page.Pagination)

	_, err = svc.ListDocumentTypes(ctx, 0, 1000, "")
	require.NoError(t, err)
	assert.Equal(t, 0, repo.lastOffset)
	assert.Equal(t, maxPageSize, repo.lastLimit)
}

func TestListDocumentTypes_HugePageKeepsOffsetPositive(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDocumentTypeService(repo)
	ctx := context.Background()

	for _, page := range []int{4611686018427387905, math.MaxInt} {
		_, err := svc.ListDocumentTypes(ctx, page, 2, "")
		require.NoError(t, err)
		assert.Positive(t, repo.lastOffset)
		assert.LessOrEqual(t, repo.lastOffset, math.MaxInt32)
	}
}
