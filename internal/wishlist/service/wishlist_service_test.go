package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"farmfresh/internal/domain"
	apperrors "farmfresh/internal/errors"
)

type fakeWishlistRepo struct {
	lists map[string]*domain.Wishlist
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{lists: map[string]*domain.Wishlist{}}
}

func (f *fakeWishlistRepo) Find(ctx context.Context, customerID string) (*domain.Wishlist, error) {
	if list, ok := f.lists[customerID]; ok {
		return list, nil
	}
	return &domain.Wishlist{CustomerID: customerID, ProductIDs: []string{}}, nil
}

func (f *fakeWishlistRepo) Add(ctx context.Context, customerID, productID string) error {
	list, ok := f.lists[customerID]
	if !ok {
		list = &domain.Wishlist{CustomerID: customerID}
		f.lists[customerID] = list
	}
	for _, id := range list.ProductIDs {
		if id == productID {
			return nil
		}
	}
	list.ProductIDs = append(list.ProductIDs, productID)
	return nil
}

func (f *fakeWishlistRepo) Remove(ctx context.Context, customerID, productID string) error {
	list, ok := f.lists[customerID]
	if !ok {
		return nil
	}
	kept := list.ProductIDs[:0]
	for _, id := range list.ProductIDs {
		if id != productID {
			kept = append(kept, id)
		}
	}
	list.ProductIDs = kept
	return nil
}

type stubCatalog struct {
	products map[string]domain.Product
}

func (s *stubCatalog) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
}

func (s *stubCatalog) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	out := map[string]domain.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func TestAdd_SetSemantics(t *testing.T) {
	repo := newFakeWishlistRepo()
	catalog := &stubCatalog{products: map[string]domain.Product{"p-1": {ID: "p-1", Name: "Honey", Price: 50}}}
	svc := NewWishlistService(repo, catalog, zap.NewNop())

	assert.NoError(t, svc.Add(context.Background(), "c-1", "p-1"))
	assert.NoError(t, svc.Add(context.Background(), "c-1", "p-1"))

	assert.Equal(t, []string{"p-1"}, repo.lists["c-1"].ProductIDs)
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc := NewWishlistService(newFakeWishlistRepo(), &stubCatalog{products: map[string]domain.Product{}}, zap.NewNop())

	err := svc.Add(context.Background(), "c-1", "ghost")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	repo := newFakeWishlistRepo()
	catalog := &stubCatalog{products: map[string]domain.Product{"p-1": {ID: "p-1", Price: 50}}}
	svc := NewWishlistService(repo, catalog, zap.NewNop())

	assert.NoError(t, svc.Add(context.Background(), "c-1", "p-1"))
	assert.NoError(t, svc.Remove(context.Background(), "c-1", "nonexistent"))

	assert.Equal(t, []string{"p-1"}, repo.lists["c-1"].ProductIDs)
}

func TestList_JoinsCatalog(t *testing.T) {
	repo := newFakeWishlistRepo()
	catalog := &stubCatalog{products: map[string]domain.Product{
		"p-1": {ID: "p-1", Name: "Honey", Price: 50},
	}}
	svc := NewWishlistService(repo, catalog, zap.NewNop())

	assert.NoError(t, svc.Add(context.Background(), "c-1", "p-1"))

	resp, err := svc.List(context.Background(), "c-1")
	assert.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, "Honey", resp.Items[0].Name)
	assert.Equal(t, 50.0, resp.Items[0].UnitPrice)
}

func TestList_NewCustomerEmpty(t *testing.T) {
	svc := NewWishlistService(newFakeWishlistRepo(), &stubCatalog{products: map[string]domain.Product{}}, zap.NewNop())

	resp, err := svc.List(context.Background(), "new-customer")

	assert.NoError(t, err)
	assert.Empty(t, resp.Items)
}
