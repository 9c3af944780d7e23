package services

import (
	"context"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory stand-ins for the persistence layer. The fakes never touch
// a *gorm.DB, transactional methods receive a nil tx from
// fakeCaseStore.Transaction and must not dereference it.

var (
	_ repositories.CaseStore          = (*fakeCaseStore)(nil)
	_ repositories.HearingStore       = (*fakeHearingStore)(nil)
	_ repositories.PaymentStore       = (*fakePaymentStore)(nil)
	_ repositories.DocumentStore      = (*fakeDocumentStore)(nil)
	_ repositories.NotificationStore  = (*fakeNotificationStore)(nil)
	_ repositories.ProfileRepository  = (*fakeProfileRepo)(nil)
	_ repositories.UserRepository     = (*fakeUserRepo)(nil)
	_ repositories.PasswordResetRepository = (*fakeResetRepo)(nil)
	_ Notifier                        = (*fakeNotifier)(nil)
)

type fakeCaseStore struct {
	cases   map[uuid.UUID]*models.Case
	created []*models.Case
	open    int64
}

func newFakeCaseStore(cases ...*models.Case) *fakeCaseStore {
	f := &fakeCaseStore{cases: make(map[uuid.UUID]*models.Case)}
	for _, c := range cases {
		f.cases[c.ID] = c
	}
	return f
}

func (f *fakeCaseStore) CreateTx(_ context.Context, _ *gorm.DB, c *models.Case) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.cases[c.ID] = c
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCaseStore) GetByID(_ context.Context, id uuid.UUID) (*models.Case, error) {
	c, ok := f.cases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCaseStore) GetByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*models.Case, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeCaseStore) Update(_ context.Context, c *models.Case) error {
	f.cases[c.ID] = c
	return nil
}

func (f *fakeCaseStore) UpdateTx(ctx context.Context, _ *gorm.DB, c *models.Case) error {
	return f.Update(ctx, c)
}

func (f *fakeCaseStore) List(context.Context, string, string, int, int) ([]*models.Case, int64, error) {
	return nil, 0, nil
}

func (f *fakeCaseStore) ListByClient(context.Context, uint) ([]*models.Case, error) {
	return nil, nil
}

func (f *fakeCaseStore) ListByLawyer(context.Context, uint) ([]*models.Case, error) {
	return nil, nil
}

func (f *fakeCaseStore) CountOpenByLawyer(context.Context, *gorm.DB, uint) (int64, error) {
	return f.open, nil
}

func (f *fakeCaseStore) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeHearingStore struct {
	hearings    map[uint]*models.Hearing
	created     []*models.Hearing
	saved       []*models.Hearing
	deleted     []uint
	conflicts   int64
	perCase     int64
	lastExclude uint
	nextID      uint
}

func newFakeHearingStore(hearings ...*models.Hearing) *fakeHearingStore {
	f := &fakeHearingStore{hearings: make(map[uint]*models.Hearing), nextID: 100}
	for _, h := range hearings {
		f.hearings[h.ID] = h
	}
	return f
}

func (f *fakeHearingStore) CreateTx(_ context.Context, _ *gorm.DB, h *models.Hearing) error {
	f.nextID++
	h.ID = f.nextID
	f.hearings[h.ID] = h
	f.created = append(f.created, h)
	return nil
}

func (f *fakeHearingStore) GetByID(_ context.Context, id uint) (*models.Hearing, error) {
	h, ok := f.hearings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return h, nil
}

func (f *fakeHearingStore) UpdateTx(_ context.Context, _ *gorm.DB, h *models.Hearing) error {
	f.hearings[h.ID] = h
	f.saved = append(f.saved, h)
	return nil
}

func (f *fakeHearingStore) Delete(_ context.Context, id uint) error {
	delete(f.hearings, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeHearingStore) ListByCase(context.Context, uuid.UUID) ([]*models.Hearing, error) {
	return nil, nil
}

func (f *fakeHearingStore) CountByCase(context.Context, *gorm.DB, uuid.UUID) (int64, error) {
	return f.perCase, nil
}

func (f *fakeHearingStore) CountConflicts(_ context.Context, _ *gorm.DB, _, _ uint, _ time.Time, excludeHearingID uint) (int64, error) {
	f.lastExclude = excludeHearingID
	return f.conflicts, nil
}

type fakePaymentStore struct {
	byTran  map[string]*models.Payment
	created []*models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{byTran: make(map[string]*models.Payment)}
}

func (f *fakePaymentStore) CreateTx(_ context.Context, _ *gorm.DB, p *models.Payment) error {
	f.byTran[p.TransactionID] = p
	f.created = append(f.created, p)
	return nil
}

func (f *fakePaymentStore) GetByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	p, ok := f.byTran[transactionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePaymentStore) ExistsByTransactionID(_ context.Context, _ *gorm.DB, transactionID string) (bool, error) {
	_, ok := f.byTran[transactionID]
	return ok, nil
}

func (f *fakePaymentStore) ListByCase(context.Context, uuid.UUID) ([]*models.Payment, error) {
	return nil, nil
}

func (f *fakePaymentStore) ListAll(context.Context, int, int) ([]*models.Payment, int64, error) {
	return nil, 0, nil
}

func (f *fakePaymentStore) ListByLawyer(context.Context, uint) ([]*models.Payment, error) {
	return nil, nil
}

func (f *fakePaymentStore) ListByClient(context.Context, uint) ([]*models.Payment, error) {
	return nil, nil
}

type fakeDocumentStore struct {
	docs    map[uint]*models.CaseDocument
	deleted []uint
	nextID  uint
}

func newFakeDocumentStore(docs ...*models.CaseDocument) *fakeDocumentStore {
	f := &fakeDocumentStore{docs: make(map[uint]*models.CaseDocument), nextID: 500}
	for _, d := range docs {
		f.docs[d.ID] = d
	}
	return f
}

func (f *fakeDocumentStore) Create(_ context.Context, d *models.CaseDocument) error {
	f.nextID++
	d.ID = f.nextID
	f.docs[d.ID] = d
	return nil
}

func (f *fakeDocumentStore) GetByID(_ context.Context, id uint) (*models.CaseDocument, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (f *fakeDocumentStore) Delete(_ context.Context, id uint) error {
	delete(f.docs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDocumentStore) ListByCase(context.Context, uuid.UUID) ([]*models.CaseDocument, error) {
	return nil, nil
}

type fakeNotificationStore struct {
	items map[uuid.UUID]*models.NotificationItem
	read  []uuid.UUID
}

func newFakeNotificationStore(items ...*models.NotificationItem) *fakeNotificationStore {
	f := &fakeNotificationStore{items: make(map[uuid.UUID]*models.NotificationItem)}
	for _, item := range items {
		f.items[item.ID] = item
	}
	return f
}

func (f *fakeNotificationStore) Create(_ context.Context, n *models.NotificationItem) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	f.items[n.ID] = n
	return nil
}

func (f *fakeNotificationStore) GetByID(_ context.Context, id uuid.UUID) (*models.NotificationItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeNotificationStore) ListForUser(context.Context, uint, bool, int) ([]*models.NotificationItem, error) {
	return nil, nil
}

func (f *fakeNotificationStore) CountUnread(context.Context, uint, bool) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id uuid.UUID) error {
	if item, ok := f.items[id]; ok {
		item.IsRead = true
	}
	f.read = append(f.read, id)
	return nil
}

func (f *fakeNotificationStore) MarkAllRead(context.Context, uint, bool) error {
	return nil
}

type fakeProfileRepo struct {
	profiles map[uint]*models.UserProfile
	locked   []uint
}

func newFakeProfileRepo(profiles ...*models.UserProfile) *fakeProfileRepo {
	f := &fakeProfileRepo{profiles: make(map[uint]*models.UserProfile)}
	for _, p := range profiles {
		f.profiles[p.UserID] = p
	}
	return f
}

func (f *fakeProfileRepo) Create(_ context.Context, p *models.UserProfile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uint) (*models.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) LockByUserID(ctx context.Context, _ *gorm.DB, userID uint) (*models.UserProfile, error) {
	f.locked = append(f.locked, userID)
	return f.GetByUserID(ctx, userID)
}

func (f *fakeProfileRepo) Update(_ context.Context, p *models.UserProfile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) DeleteByUserID(_ context.Context, userID uint) error {
	delete(f.profiles, userID)
	return nil
}

func (f *fakeProfileRepo) List(context.Context) ([]*models.UserProfile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) ListByRole(context.Context, string) ([]*models.UserProfile, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users   map[uint]*models.User
	updated []*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	f.users[u.ID] = u
	f.updated = append(f.updated, u)
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ListByRole(context.Context, string) ([]*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ListAdminIDs(context.Context) ([]uint, error) {
	return nil, nil
}

type fakeResetRepo struct {
	byHash map[string]*models.PasswordReset
	used   []uint
}

func newFakeResetRepo(resets ...*models.PasswordReset) *fakeResetRepo {
	f := &fakeResetRepo{byHash: make(map[string]*models.PasswordReset)}
	for _, r := range resets {
		f.byHash[r.TokenHash] = r
	}
	return f
}

func (f *fakeResetRepo) Create(_ context.Context, r *models.PasswordReset) error {
	f.byHash[r.TokenHash] = r
	return nil
}

func (f *fakeResetRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.PasswordReset, error) {
	r, ok := f.byHash[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id uint) error {
	f.used = append(f.used, id)
	return nil
}

func (f *fakeResetRepo) DeleteExpired(context.Context) error {
	return nil
}

type sentNote struct {
	userID uint
	title  string
}

type fakeNotifier struct {
	sent       []sentNote
	broadcasts []string
}

func (f *fakeNotifier) NotifyUser(_ context.Context, userID uint, title, _ string) {
	f.sent = append(f.sent, sentNote{userID: userID, title: title})
}

func (f *fakeNotifier) NotifyAdmins(_ context.Context, title, _ string) {
	f.broadcasts = append(f.broadcasts, title)
}
