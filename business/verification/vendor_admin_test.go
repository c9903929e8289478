//go:build !integration

package verification

import (
	"context"
	"testing"
	"vendorHub/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleVendorActive_FlipsAndRecords(t *testing.T) {
	db := newMemDB()
	db.addUser(domain.User{ID: 1, FirstName: "Ann", Role: domain.RoleVendor, Status: domain.AccountApproved, IsActive: true})
	db.addStore(domain.Store{VendorID: 1, StoreName: "Ann's Store", IsVerified: true})
	svc := newTestService(db, Options{})

	summary, err := svc.ToggleVendorActive(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, summary.IsActive)
	assert.Equal(t, domain.VerificationApproved, summary.Status)
	assert.False(t, db.users[1].IsActive)

	summary, err = svc.ToggleVendorActive(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, summary.IsActive)
	assert.True(t, db.users[1].IsActive)

	require.Equal(t, 2, countActions(db, domain.ActionToggleActive))
	assert.Equal(t, false, db.events[0].Details["is_active"])
	assert.Equal(t, true, db.events[1].Details["is_active"])
}

func TestToggleVendorActive_OnlyApprovedVendors(t *testing.T) {
	db := newMemDB()
	seedVendor(db, 1, 10, 1)
	db.addUser(domain.User{ID: 2, Role: domain.RoleCustomer, IsActive: true})
	svc := newTestService(db, Options{})

	for _, id := range []uint{1, 2, 99} {
		_, err := svc.ToggleVendorActive(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "user %d", id)
	}

	assert.True(t, db.users[1].IsActive)
	assert.True(t, db.users[2].IsActive)
	assert.Empty(t, db.events)
}

func TestDemoteVendor_RemovesStoreAndDocuments(t *testing.T) {
	db := newMemDB()
	seedVendor(db, 1, 10, 2)
	seedVendor(db, 2, 20, 1)
	svc := newTestService(db, Options{})

	require.NoError(t, svc.DemoteVendor(context.Background(), 1))

	u := db.users[1]
	assert.Equal(t, domain.RoleCustomer, u.Role)
	assert.Equal(t, domain.AccountPending, u.Status)
	assert.NotContains(t, db.stores, uint(1))
	assert.Len(t, db.documents, 1)
	assert.Contains(t, db.stores, uint(2))

	require.Equal(t, 1, countActions(db, domain.ActionDemote))
	assert.Equal(t, string(domain.RoleVendorPending), db.events[0].Details["previous_role"])
	assert.Equal(t, true, db.events[0].Details["store_deleted"])
	assert.Equal(t, 2, db.events[0].Details["documents_deleted"])
}

func TestDemoteVendor_RejectsNonVendors(t *testing.T) {
	db := newMemDB()
	db.addUser(domain.User{ID: 1, Role: domain.RoleCustomer})
	db.addUser(domain.User{ID: 2, Role: domain.RoleAdmin})
	svc := newTestService(db, Options{})

	assert.ErrorIs(t, svc.DemoteVendor(context.Background(), 1), domain.ErrInvalidArgument)
	assert.ErrorIs(t, svc.DemoteVendor(context.Background(), 2), domain.ErrInvalidArgument)
	assert.ErrorIs(t, svc.DemoteVendor(context.Background(), 99), domain.ErrNotFound)
	assert.Empty(t, db.events)
}

func TestDemoteVendor_RollsBackOnFailure(t *testing.T) {
	db := newMemDB()
	seedVendor(db, 1, 10, 2)
	db.failOn = "DeleteStore"
	svc := newTestService(db, Options{})

	require.Error(t, svc.DemoteVendor(context.Background(), 1))

	assert.Equal(t, domain.RoleVendorPending, db.users[1].Role)
	assert.Contains(t, db.stores, uint(1))
	assert.Len(t, db.documents, 2)
	assert.Empty(t, db.events)
}
