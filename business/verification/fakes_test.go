//go:build !integration

package verification

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"vendorHub/domain"
)

// memDB backs every fake repository. WithinTransaction snapshots it and restores the snapshot
// when fn fails, which is enough to observe rollback from the service's point of view.
type memDB struct {
	users     map[uint]domain.User
	stores    map[uint]domain.Store // by vendor id
	documents map[uint]domain.StoreDocument
	events    []domain.VerificationEvent

	nextStoreID uint
	failOn      string
	ensureErr   map[uint]error
}

func newMemDB() *memDB {
	return &memDB{
		users:       map[uint]domain.User{},
		stores:      map[uint]domain.Store{},
		documents:   map[uint]domain.StoreDocument{},
		nextStoreID: 1000,
		ensureErr:   map[uint]error{},
	}
}

func (m *memDB) addUser(u domain.User) {
	m.users[u.ID] = u
}

func (m *memDB) addStore(st domain.Store) {
	if st.ID == 0 {
		m.nextStoreID++
		st.ID = m.nextStoreID
	}
	m.stores[st.VendorID] = st
}

func (m *memDB) addDocument(d domain.StoreDocument) {
	if d.Status == "" {
		d.Status = domain.DocumentPending
	}
	m.documents[d.ID] = d
}

func (m *memDB) fail(op string) error {
	if m.failOn == op {
		return fmt.Errorf("%s: boom", op)
	}
	return nil
}

func (m *memDB) snapshot() *memDB {
	c := *m
	c.users = map[uint]domain.User{}
	for k, v := range m.users {
		c.users[k] = v
	}
	c.stores = map[uint]domain.Store{}
	for k, v := range m.stores {
		c.stores[k] = v
	}
	c.documents = map[uint]domain.StoreDocument{}
	for k, v := range m.documents {
		c.documents[k] = v
	}
	c.events = append([]domain.VerificationEvent(nil), m.events...)
	return &c
}

func (m *memDB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := m.snapshot()
	if err := fn(ctx); err != nil {
		m.users, m.stores, m.documents, m.events = saved.users, saved.stores, saved.documents, saved.events
		m.nextStoreID = saved.nextStoreID
		return err
	}
	return nil
}

// users

func (m *memDB) FindByID(ctx context.Context, id uint) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user %w", domain.ErrNotFound)
	}
	return u, nil
}

func (m *memDB) FindByIDForUpdate(ctx context.Context, id uint) (domain.User, error) {
	return m.FindByID(ctx, id)
}

func (m *memDB) FindByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	if err := m.fail("FindByRoles"); err != nil {
		return nil, err
	}
	want := map[domain.Role]bool{}
	for _, r := range roles {
		want[r] = true
	}
	out := []domain.User{}
	for _, u := range m.users {
		if want[u.Role] {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memDB) UpdateStatus(ctx context.Context, id uint, status domain.AccountStatus) error {
	if err := m.fail("UpdateUserStatus"); err != nil {
		return err
	}
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}
	u.Status = status
	m.users[id] = u
	return nil
}

func (m *memDB) UpdateRoleAndStatus(ctx context.Context, id uint, role domain.Role, status domain.AccountStatus) error {
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}
	u.Role = role
	u.Status = status
	m.users[id] = u
	return nil
}

func (m *memDB) UpdateActive(ctx context.Context, id uint, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}
	u.IsActive = active
	m.users[id] = u
	return nil
}

// the fakes below are reached through adapter types because users, stores and documents share
// method names such as UpdateStatus.

type storeRepo struct{ *memDB }

func (r storeRepo) FindByVendorID(ctx context.Context, vendorID uint) (domain.Store, error) {
	st, ok := r.stores[vendorID]
	if !ok {
		return domain.Store{}, fmt.Errorf("store %w", domain.ErrNotFound)
	}
	return st, nil
}

func (r storeRepo) FindByVendorIDs(ctx context.Context, vendorIDs []uint) ([]domain.Store, error) {
	out := []domain.Store{}
	for _, id := range vendorIDs {
		if st, ok := r.stores[id]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r storeRepo) EnsureForVendor(ctx context.Context, store domain.Store) (domain.Store, error) {
	if err := r.ensureErr[store.VendorID]; err != nil {
		return domain.Store{}, err
	}
	if existing, ok := r.stores[store.VendorID]; ok {
		return existing, nil
	}
	r.addStore(store)
	return r.stores[store.VendorID], nil
}

func (r storeRepo) update(id uint, fn func(*domain.Store)) error {
	for vendorID, st := range r.stores {
		if st.ID == id {
			fn(&st)
			r.stores[vendorID] = st
			return nil
		}
	}
	return fmt.Errorf("store %w", domain.ErrNotFound)
}

func (r storeRepo) MarkVerified(ctx context.Context, id uint, reason *string) error {
	if err := r.fail("MarkVerified"); err != nil {
		return err
	}
	return r.update(id, func(st *domain.Store) {
		st.IsVerified, st.IsRejected, st.Reason = true, false, reason
	})
}

func (r storeRepo) MarkRejected(ctx context.Context, id uint, reason *string) error {
	return r.update(id, func(st *domain.Store) {
		st.IsVerified, st.IsRejected, st.Reason = false, true, reason
	})
}

func (r storeRepo) ClearRejection(ctx context.Context, id uint) error {
	return r.update(id, func(st *domain.Store) {
		st.IsRejected, st.Reason = false, nil
	})
}

func (r storeRepo) DeleteByVendorID(ctx context.Context, vendorID uint) error {
	if err := r.fail("DeleteStore"); err != nil {
		return err
	}
	delete(r.stores, vendorID)
	return nil
}

type documentRepo struct{ *memDB }

func (r documentRepo) FindByOwner(ctx context.Context, vendorID uint) ([]domain.StoreDocument, error) {
	out := []domain.StoreDocument{}
	for _, d := range r.documents {
		if d.OwnerVendorID == vendorID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r documentRepo) FindByOwners(ctx context.Context, vendorIDs []uint) ([]domain.StoreDocument, error) {
	out := []domain.StoreDocument{}
	for _, id := range vendorIDs {
		docs, _ := r.FindByOwner(ctx, id)
		out = append(out, docs...)
	}
	return out, nil
}

func (r documentRepo) UpdateStatus(ctx context.Context, vendorID, documentID uint, status domain.DocumentStatus, reason *string) (int64, error) {
	if err := r.fail("UpdateDocumentStatus"); err != nil {
		return 0, err
	}
	d, ok := r.documents[documentID]
	if !ok || d.OwnerVendorID != vendorID {
		return 0, nil
	}
	d.Status = status
	if reason != nil {
		d.Reason = reason
	}
	r.documents[documentID] = d
	return 1, nil
}

func (r documentRepo) UpdateStatusByOwner(ctx context.Context, vendorID uint, status domain.DocumentStatus) error {
	for id, d := range r.documents {
		if d.OwnerVendorID == vendorID {
			d.Status = status
			r.documents[id] = d
		}
	}
	return nil
}

func (r documentRepo) DeleteByOwner(ctx context.Context, vendorID uint) error {
	for id, d := range r.documents {
		if d.OwnerVendorID == vendorID {
			delete(r.documents, id)
		}
	}
	return nil
}

type eventRepo struct{ *memDB }

func (r eventRepo) SaveEvent(ctx context.Context, event *domain.VerificationEvent) error {
	if err := r.fail("SaveEvent"); err != nil {
		return err
	}
	event.ID = uint(len(r.events) + 1)
	r.events = append(r.events, *event)
	return nil
}

func (r eventRepo) FindByVendor(ctx context.Context, vendorID uint) ([]domain.VerificationEvent, error) {
	out := []domain.VerificationEvent{}
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].VendorID == vendorID {
			out = append(out, r.events[i])
		}
	}
	return out, nil
}

func newTestService(db *memDB, opts Options) *VerificationService {
	return NewVerificationService(db, storeRepo{db}, documentRepo{db}, eventRepo{db}, db, opts)
}

func strPtr(s string) *string {
	return &s
}

var errEnsure = errors.New("insert failed")
