package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/clock"
	"github.com/shandysiswandi/gomart/internal/pkg/config"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/money"
	"github.com/shandysiswandi/gomart/internal/pkg/session"
	"github.com/shandysiswandi/gomart/internal/pkg/validator"
)

type fakeStore struct {
	mu      sync.Mutex
	carts   map[string]*entity.Cart
	err     error
	updates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{carts: map[string]*entity.Cart{}}
}

func (f *fakeStore) Get(_ context.Context, sid string) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.carts[sid]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return c.Clone(), nil
}

func (f *fakeStore) Update(_ context.Context, sid string, fn func(*entity.Cart) error) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.err != nil {
		return nil, f.err
	}
	c := entity.New(sid)
	if cur, ok := f.carts[sid]; ok {
		c = cur.Clone()
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	f.carts[sid] = c
	return c.Clone(), nil
}

func (f *fakeStore) Delete(_ context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, sid)
	return f.err
}

type fakeCatalog map[string]Product

func (f fakeCatalog) FindProduct(_ context.Context, id string) (*Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, goerror.NewBusiness("Product not found", goerror.CodeNotFound)
	}
	return &p, nil
}

type fakeMessaging struct {
	events []ItemAddedEvent
	err    error
}

func (f *fakeMessaging) PublishItemAdded(_ context.Context, ev ItemAddedEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

type fakeIssuer struct{ err error }

func (f fakeIssuer) Issue(context.Context) (session.Token, error) {
	return session.Token{Value: "tok", SessionID: "sid-new"}, f.err
}

var catalog = fakeCatalog{
	"1": {ID: "1", Title: "Hoodie", Price: decimal.NewFromInt(300)},
	"2": {ID: "2", Title: "Cap", Price: decimal.RequireFromString("149.50")},
}

type fixture struct {
	uc    *Usecase
	store *fakeStore
	mq    *fakeMessaging
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("cart:\n  ttl_minutes: 30\n"))
	require.NoError(t, err)
	v, err := validator.NewV10Validator()
	require.NoError(t, err)
	price, err := money.NewFormatter("sv-SE", "SEK")
	require.NoError(t, err)

	f := &fixture{store: newFakeStore(), mq: &fakeMessaging{}}
	f.uc = New(Dependency{
		RepoStore:     f.store,
		RepoCatalog:   catalog,
		RepoMessaging: f.mq,
		Session:       fakeIssuer{},
		Price:         price,
		Config:        cfg,
		Clock:         clock.NewFixed(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)),
		Validator:     v,
		Instrument:    instrument.NewNoop(),
	})
	f.ctx = session.Set(context.Background(), session.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "sid-1"},
		Role:             session.RoleShopper,
	})

	return f
}

func codeOf(t *testing.T, err error) goerror.Code {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	return gerr.Code()
}

func TestUsecase_RequiresSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Get(context.Background())
	assert.Equal(t, goerror.CodeUnauthorized, codeOf(t, err))
}

func TestUsecase_Add(t *testing.T) {
	f := newFixture(t)

	c, err := f.uc.Add(f.ctx, AddInput{ProductID: "1"})
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	c, err = f.uc.Add(f.ctx, AddInput{ProductID: "1", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	require.Len(t, f.mq.events, 2)
	assert.Equal(t, "sid-1", f.mq.events[0].SessionID)

	_, err = f.uc.Add(f.ctx, AddInput{ProductID: "404"})
	assert.Equal(t, goerror.CodeNotFound, codeOf(t, err))

	_, err = f.uc.Add(f.ctx, AddInput{ProductID: "1", Quantity: -1})
	assert.Equal(t, goerror.CodeInvalidInput, codeOf(t, err))

	f.mq.err = errors.New("broker down")
	_, err = f.uc.Add(f.ctx, AddInput{ProductID: "2"})
	assert.NoError(t, err)
}

func TestUsecase_IncrementDecrement(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Add(f.ctx, AddInput{ProductID: "1", Quantity: 2})
	require.NoError(t, err)

	out, err := f.uc.Increment(f.ctx, ItemInput{ProductID: "1"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Quantity)
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(900)))

	c, err := f.uc.Get(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Line("1").Quantity)

	for _, want := range []int{2, 1} {
		out, err = f.uc.Decrement(f.ctx, ItemInput{ProductID: "1"})
		require.NoError(t, err)
		assert.Equal(t, want, out.Quantity)
		assert.False(t, out.Removed)
	}

	out, err = f.uc.Decrement(f.ctx, ItemInput{ProductID: "1"})
	require.NoError(t, err)
	assert.True(t, out.Removed)
	assert.Equal(t, 0, out.Quantity)
	assert.True(t, out.TotalPrice.IsZero())

	c, err = f.uc.Get(f.ctx)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestUsecase_IncrementWithoutLine(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Increment(f.ctx, ItemInput{ProductID: "2", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Quantity)
	assert.False(t, out.InCart)
	assert.True(t, out.TotalPrice.IsZero())

	out, err = f.uc.Decrement(f.ctx, ItemInput{ProductID: "2", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Quantity)
	assert.False(t, out.Removed)

	assert.Zero(t, f.store.updates)
	assert.Empty(t, f.store.carts)

	c, err := f.uc.Get(f.ctx)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestUsecase_StepWithoutLineKeepsCartUntouched(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Add(f.ctx, AddInput{ProductID: "1"})
	require.NoError(t, err)
	before := f.store.updates

	out, err := f.uc.Increment(f.ctx, ItemInput{ProductID: "2", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Quantity)
	assert.Equal(t, before, f.store.updates)

	require.NoError(t, f.uc.MarkCheckedOut(f.ctx, MarkCheckedOutInput{SessionID: "sid-1", AddressID: 1}))
	_, err = f.uc.Increment(f.ctx, ItemInput{ProductID: "2"})
	assert.Equal(t, goerror.CodeConflict, codeOf(t, err))
	_, err = f.uc.Decrement(f.ctx, ItemInput{ProductID: "1"})
	assert.Equal(t, goerror.CodeConflict, codeOf(t, err))
}

func TestUsecase_UpdateQuantityAndRemove(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Add(f.ctx, AddInput{ProductID: "1"})
	require.NoError(t, err)
	_, err = f.uc.Add(f.ctx, AddInput{ProductID: "2"})
	require.NoError(t, err)

	c, err := f.uc.UpdateQuantity(f.ctx, UpdateQuantityInput{ProductID: "1", Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, c.Line("1").Quantity)

	c, err = f.uc.UpdateQuantity(f.ctx, UpdateQuantityInput{ProductID: "404", Quantity: 7})
	require.NoError(t, err)
	assert.Len(t, c.Lines, 2)

	c, err = f.uc.UpdateQuantity(f.ctx, UpdateQuantityInput{ProductID: "1", Quantity: 0})
	require.NoError(t, err)
	assert.Nil(t, c.Line("1"))

	c, err = f.uc.Remove(f.ctx, ItemInput{ProductID: "2"})
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	_, err = f.uc.Remove(f.ctx, ItemInput{ProductID: "2"})
	assert.NoError(t, err)
}

func TestUsecase_TotalPrice(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Add(f.ctx, AddInput{ProductID: "2", Quantity: 2})
	require.NoError(t, err)

	out, err := f.uc.TotalPrice(f.ctx, ItemInput{ProductID: "2", Quantity: 9})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Quantity)
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(299)))

	out, err = f.uc.TotalPrice(f.ctx, ItemInput{ProductID: "1", Quantity: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, out.Quantity)
	assert.True(t, out.TotalPrice.IsZero())
}

func TestUsecase_Confirm(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Confirm(f.ctx)
	assert.Equal(t, goerror.CodeInvalidInput, codeOf(t, err))

	_, err = f.uc.Confirmed(f.ctx)
	assert.Equal(t, goerror.CodeNotFound, codeOf(t, err))

	_, err = f.uc.Add(f.ctx, AddInput{ProductID: "1", Quantity: 2})
	require.NoError(t, err)

	cf, err := f.uc.Confirm(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cf.ItemCount())

	got, err := f.uc.Confirmed(f.ctx)
	require.NoError(t, err)
	assert.True(t, got.Total().Equal(decimal.NewFromInt(600)))
}

func TestUsecase_MarkCheckedOut(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.uc.MarkCheckedOut(f.ctx, MarkCheckedOutInput{SessionID: "unknown", AddressID: 1}))

	_, err := f.uc.Add(f.ctx, AddInput{ProductID: "1"})
	require.NoError(t, err)
	require.NoError(t, f.uc.MarkCheckedOut(f.ctx, MarkCheckedOutInput{SessionID: "sid-1", AddressID: 77}))

	c, err := f.uc.Get(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCheckedOut, c.Status)
	assert.Equal(t, int64(77), c.Confirmed.AddressID)

	_, err = f.uc.Add(f.ctx, AddInput{ProductID: "2"})
	assert.Equal(t, goerror.CodeConflict, codeOf(t, err))

	require.NoError(t, f.uc.Clear(f.ctx))
	_, err = f.uc.Add(f.ctx, AddInput{ProductID: "2"})
	assert.NoError(t, err)
}

func TestUsecase_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.store.err = errors.New("redis down")

	_, err := f.uc.Get(f.ctx)
	assert.Equal(t, goerror.CodeInternal, codeOf(t, err))

	_, err = f.uc.Increment(f.ctx, ItemInput{ProductID: "1"})
	assert.Equal(t, goerror.CodeInternal, codeOf(t, err))
}

func TestUsecase_IssueSession(t *testing.T) {
	f := newFixture(t)

	tok, err := f.uc.IssueSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sid-new", tok.SessionID)
}
