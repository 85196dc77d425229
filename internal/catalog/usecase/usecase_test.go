package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/gomart/internal/catalog/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/config"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/money"
	"github.com/shandysiswandi/gomart/internal/pkg/validator"
)

type fakeSource struct {
	calls atomic.Int32
	delay time.Duration
	items []entity.Product
	err   error
}

func (f *fakeSource) ListProducts(context.Context) ([]entity.Product, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	return f.items, f.err
}

type fakeCache struct {
	mu     sync.Mutex
	items  []entity.Product
	getErr error
	sets   int
}

func (f *fakeCache) GetProducts(context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.items == nil {
		return nil, goerror.ErrNotFound
	}
	return f.items, nil
}

func (f *fakeCache) SetProducts(_ context.Context, items []entity.Product, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
	f.sets++
	return nil
}

type fakeImage struct{}

func (fakeImage) PresignGet(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	if key == "broken.jpg" {
		return "", errors.New("presign failed")
	}
	return "https://signed.example.com/" + bucket + "/" + key, nil
}

const testConfig = `
catalog:
  image_bucket: products
  image_url_ttl_seconds: 60
  cache_ttl_seconds: 30
`

var seed = []entity.Product{
	{ID: "1", Title: "Hoodie", Price: decimal.NewFromInt(300), Image: "hoodie.jpg", Position: 1},
	{ID: "2", Title: "Cap", Price: decimal.RequireFromString("149.5"), Image: "https://cdn.example.com/cap.jpg", Position: 2},
	{ID: "3", Title: "Socks", Price: decimal.NewFromInt(49), Image: "broken.jpg", Position: 3},
}

func newUsecase(t *testing.T, src repoSource, c repoCache, img repoImage) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)
	v, err := validator.NewV10Validator()
	require.NoError(t, err)
	price, err := money.NewFormatter("sv-SE", "SEK")
	require.NoError(t, err)

	return New(Dependency{
		RepoSource: src,
		RepoCache:  c,
		RepoImage:  img,
		Price:      price,
		Config:     cfg,
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})
}

func TestUsecase_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("ResolvesImagesAndLabels", func(t *testing.T) {
		uc := newUsecase(t, &fakeSource{items: seed}, nil, fakeImage{})

		out, err := uc.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, out, 3)

		assert.Equal(t, "https://signed.example.com/products/hoodie.jpg", out[0].ImageURL)
		assert.Equal(t, "https://cdn.example.com/cap.jpg", out[1].ImageURL)
		assert.Equal(t, "broken.jpg", out[2].ImageURL)
		assert.Contains(t, out[0].PriceLabel, "300")
		assert.Contains(t, out[0].PriceLabel, "SEK")
	})

	t.Run("NoStorageKeepsKey", func(t *testing.T) {
		uc := newUsecase(t, &fakeSource{items: seed}, nil, nil)

		out, err := uc.ListProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, "hoodie.jpg", out[0].ImageURL)
	})

	t.Run("ReadThroughCache", func(t *testing.T) {
		src := &fakeSource{items: seed}
		c := &fakeCache{}
		uc := newUsecase(t, src, c, nil)

		_, err := uc.ListProducts(ctx)
		require.NoError(t, err)
		_, err = uc.ListProducts(ctx)
		require.NoError(t, err)

		assert.Equal(t, int32(1), src.calls.Load())
		assert.Equal(t, 1, c.sets)
	})

	t.Run("CacheFailureFallsBack", func(t *testing.T) {
		src := &fakeSource{items: seed}
		uc := newUsecase(t, src, &fakeCache{getErr: errors.New("redis down")}, nil)

		out, err := uc.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, out, 3)
	})

	t.Run("ConcurrentMissesShareOneRead", func(t *testing.T) {
		src := &fakeSource{items: seed, delay: 50 * time.Millisecond}
		uc := newUsecase(t, src, nil, nil)

		var wg sync.WaitGroup
		for range 8 {
			wg.Go(func() {
				_, err := uc.ListProducts(ctx)
				assert.NoError(t, err)
			})
		}
		wg.Wait()

		assert.Less(t, src.calls.Load(), int32(8))
	})

	t.Run("SourceError", func(t *testing.T) {
		uc := newUsecase(t, &fakeSource{err: errors.New("db down")}, nil, nil)

		_, err := uc.ListProducts(ctx)
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeInternal, gerr.Code())
	})
}

func TestUsecase_GetProduct(t *testing.T) {
	ctx := context.Background()
	uc := newUsecase(t, &fakeSource{items: seed}, nil, nil)

	t.Run("Found", func(t *testing.T) {
		out, err := uc.GetProduct(ctx, GetProductInput{ID: " 2 "})
		require.NoError(t, err)
		assert.Equal(t, "Cap", out.Title)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := uc.GetProduct(ctx, GetProductInput{ID: "404"})
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeNotFound, gerr.Code())
		assert.Equal(t, "Product not found", gerr.Msg())
	})

	t.Run("InvalidID", func(t *testing.T) {
		_, err := uc.GetProduct(ctx, GetProductInput{ID: "a/b"})
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	})
}
