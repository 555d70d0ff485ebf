package catalog

import (
	"context"

	"github.com/ballonsurprise/backend/pkg/enums"
	pkgerrors "github.com/ballonsurprise/backend/pkg/errors"
)

// OptionsDTO bundles every custom-gift option list with the fixed prices the
// client needs to render a price preview.
type OptionsDTO struct {
	Chocolates []Option `json:"chocolates"`
	Biscuits   []Option `json:"biscuits"`
	Roses      []Option `json:"roses"`
	BasePrice  int      `json:"basePrice"`
	BearPrice  int      `json:"bearPrice"`
}

// Service exposes read-only catalog lookups.
type Service interface {
	ListBundles(ctx context.Context, category *enums.Category) []Bundle
	GetBundle(ctx context.Context, id string) (*Bundle, error)
	Options(ctx context.Context) OptionsDTO
	ChocolateByID(id string) (Option, bool)
	BiscuitByID(id string) (Option, bool)
	RoseByID(id string) (Option, bool)
}

type service struct{}

// NewService builds the catalog service over the package-level reference data.
func NewService() Service {
	return &service{}
}

// ListBundles returns the bundles of one category, or all bundles when
// category is nil. Callers get copies; the reference data never escapes.
func (s *service) ListBundles(_ context.Context, category *enums.Category) []Bundle {
	out := make([]Bundle, 0, len(bundles))
	for _, b := range bundles {
		if category != nil && b.Category != *category {
			continue
		}
		out = append(out, cloneBundle(b))
	}
	return out
}

// GetBundle resolves a bundle by id.
func (s *service) GetBundle(_ context.Context, id string) (*Bundle, error) {
	for _, b := range bundles {
		if b.ID == id {
			c := cloneBundle(b)
			return &c, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bundle not found")
}

// Options returns the custom-gift option lists.
func (s *service) Options(_ context.Context) OptionsDTO {
	return OptionsDTO{
		Chocolates: cloneOptions(chocolateOptions),
		Biscuits:   cloneOptions(biscuitOptions),
		Roses:      cloneOptions(roseOptions),
		BasePrice:  CustomBasePrice,
		BearPrice:  BearPrice,
	}
}

func (s *service) ChocolateByID(id string) (Option, bool) {
	return optionByID(chocolateOptions, id)
}

func (s *service) BiscuitByID(id string) (Option, bool) {
	return optionByID(biscuitOptions, id)
}

func (s *service) RoseByID(id string) (Option, bool) {
	return optionByID(roseOptions, id)
}

func optionByID(opts []Option, id string) (Option, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

func cloneBundle(b Bundle) Bundle {
	out := b
	out.Components = append([]string(nil), b.Components...)
	return out
}

func cloneOptions(opts []Option) []Option {
	return append([]Option(nil), opts...)
}
