package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/shandysiswandi/gomart/internal/catalog/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
)

// ProductOutput is a product ready for display: the image reference is
// resolved to a fetchable URL and the price carries a localized label.
type ProductOutput struct {
	entity.Product
	ImageURL   string
	PriceLabel string
}

func (s *Usecase) ListProducts(ctx context.Context) ([]ProductOutput, error) {
	ctx, span := s.startSpan(ctx, "ListProducts")
	defer span.End()

	items, err := s.products(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load catalog products", "error", err)
		return nil, goerror.NewServer(err)
	}

	out := make([]ProductOutput, 0, len(items))
	for _, item := range items {
		out = append(out, s.present(ctx, item))
	}

	return out, nil
}

// products reads the catalog through the cache. Concurrent misses share one
// source read; cache failures fall back to the source.
func (s *Usecase) products(ctx context.Context) ([]entity.Product, error) {
	if s.repoCache != nil {
		items, err := s.repoCache.GetProducts(ctx)
		if err == nil {
			return items, nil
		}
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "failed to read catalog cache", "error", err)
		}
	}

	v, err, _ := s.group.Do("catalog:products", func() (any, error) {
		items, err := s.repoSource.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		if s.repoCache != nil {
			ttl := s.cfg.GetSecond("catalog.cache_ttl_seconds")
			if err := s.repoCache.SetProducts(ctx, items, ttl); err != nil {
				slog.WarnContext(ctx, "failed to write catalog cache", "error", err)
			}
		}

		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]entity.Product), nil
}

func (s *Usecase) present(ctx context.Context, p entity.Product) ProductOutput {
	return ProductOutput{
		Product:    p,
		ImageURL:   s.imageURL(ctx, p.Image),
		PriceLabel: s.price.Format(p.Price),
	}
}

func (s *Usecase) imageURL(ctx context.Context, ref string) string {
	if ref == "" || s.repoImage == nil {
		return ref
	}

	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}

	bucket := s.cfg.GetString("catalog.image_bucket")
	signed, err := s.repoImage.PresignGet(ctx, bucket, ref, s.cfg.GetSecond("catalog.image_url_ttl_seconds"))
	if err != nil {
		slog.WarnContext(ctx, "failed to presign product image", "key", ref, "error", err)
		return ref
	}

	return signed
}
