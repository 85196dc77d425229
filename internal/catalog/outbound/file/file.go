package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/shandysiswandi/gomart/internal/catalog/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
)

var ErrDuplicateProduct = errors.New("catalog: duplicate product id")

type product struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Price       decimal.Decimal `yaml:"price"`
	Image       string          `yaml:"image"`
}

type document struct {
	Products []product `yaml:"products"`
}

// File serves the catalog from a static YAML seed. The file is parsed once;
// entries keep their file order.
type File struct {
	items []entity.Product
	ins   instrument.Instrumentation
}

func NewFile(path string, ins instrument.Instrumentation) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, ins)
}

func Parse(data []byte, ins instrument.Instrumentation) (*File, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse seed: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Products))
	items := make([]entity.Product, 0, len(doc.Products))
	for i, p := range doc.Products {
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProduct, p.ID)
		}
		seen[p.ID] = struct{}{}

		items = append(items, entity.Product{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
			Position:    i + 1,
		})
	}

	return &File{items: items, ins: ins}, nil
}

func (f *File) ListProducts(ctx context.Context) ([]entity.Product, error) {
	_, span := f.ins.Tracer("catalog.outbound.file").Start(ctx, "ListProducts")
	defer span.End()

	return slices.Clone(f.items), nil
}
