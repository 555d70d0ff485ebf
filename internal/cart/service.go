package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ballonsurprise/backend/internal/catalog"
	"github.com/ballonsurprise/backend/pkg/enums"
	pkgerrors "github.com/ballonsurprise/backend/pkg/errors"
)

type catalogSource interface {
	GetBundle(ctx context.Context, id string) (*catalog.Bundle, error)
	ChocolateByID(id string) (catalog.Option, bool)
	BiscuitByID(id string) (catalog.Option, bool)
	RoseByID(id string) (catalog.Option, bool)
}

// Service exposes the device-scoped cart operations.
type Service interface {
	Get(ctx context.Context, deviceID string) (*View, error)
	AddPredefined(ctx context.Context, deviceID string, input AddPredefinedInput) (*LineItem, error)
	AddCustom(ctx context.Context, deviceID string, input AddCustomInput) (*LineItem, error)
	Remove(ctx context.Context, deviceID string, itemID uuid.UUID) error
	Clear(ctx context.Context, deviceID string) error
}

// AddPredefinedInput selects one catalog bundle.
type AddPredefinedInput struct {
	Category enums.Category `json:"category" validate:"required"`
	BundleID string         `json:"bundleId" validate:"required"`
}

// AddCustomInput composes a gift from catalog options.
type AddCustomInput struct {
	Category     enums.Category `json:"category" validate:"required"`
	ChocolateIDs []string       `json:"chocolateIds"`
	BiscuitIDs   []string       `json:"biscuitIds"`
	RoseID       string         `json:"roseId"`
	Bear         bool           `json:"bear"`
}

// View is the cart read model returned to clients.
type View struct {
	Items      []LineItem `json:"items"`
	ItemCount  int        `json:"itemCount"`
	TotalPrice int        `json:"totalPrice"`
}

type service struct {
	repo    Repository
	catalog catalogSource
}

// NewService builds the cart service over a slot repository and the catalog.
func NewService(repo Repository, cat catalogSource) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog source is required")
	}
	return &service{repo: repo, catalog: cat}, nil
}

func (s *service) Get(ctx context.Context, deviceID string) (*View, error) {
	cart, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return viewOf(cart), nil
}

// AddPredefined snapshots the referenced bundle and appends it. The frozen
// total is the bundle's unit price at this moment.
func (s *service) AddPredefined(ctx context.Context, deviceID string, input AddPredefinedInput) (*LineItem, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}

	bundle, err := s.catalog.GetBundle(ctx, input.BundleID)
	if err != nil {
		return nil, err
	}
	if bundle.Category != input.Category {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bundle does not belong to this category")
	}

	item := LineItem{
		ID:         uuid.New(),
		Kind:       enums.LineItemKindPredefined,
		Category:   bundle.Category,
		TotalPrice: bundle.UnitPrice,
		CreatedAt:  time.Now().UTC(),
		Bundle: &BundleSnapshot{
			BundleID:    bundle.ID,
			Name:        bundle.Name,
			Description: bundle.Description,
			Components:  append([]string(nil), bundle.Components...),
			UnitPrice:   bundle.UnitPrice,
		},
	}

	return s.append(ctx, deviceID, item)
}

// AddCustom validates the composition and appends it with a frozen total of
// base + chocolates + biscuits + rose + optional bear. The rose check runs
// before the chocolate check.
func (s *service) AddCustom(ctx context.Context, deviceID string, input AddCustomInput) (*LineItem, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	if input.RoseID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rose required")
	}
	if len(input.ChocolateIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chocolate required")
	}

	rose, ok := s.catalog.RoseByID(input.RoseID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown rose %q", input.RoseID))
	}

	total := catalog.CustomBasePrice + rose.Price

	chocolates := make([]catalog.Option, 0, len(input.ChocolateIDs))
	for _, id := range input.ChocolateIDs {
		opt, ok := s.catalog.ChocolateByID(id)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown chocolate %q", id))
		}
		chocolates = append(chocolates, opt)
		total += opt.Price
	}

	biscuits := make([]catalog.Option, 0, len(input.BiscuitIDs))
	for _, id := range input.BiscuitIDs {
		opt, ok := s.catalog.BiscuitByID(id)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown biscuit %q", id))
		}
		biscuits = append(biscuits, opt)
		total += opt.Price
	}

	if input.Bear {
		total += catalog.BearPrice
	}

	item := LineItem{
		ID:         uuid.New(),
		Kind:       enums.LineItemKindCustom,
		Category:   input.Category,
		TotalPrice: total,
		CreatedAt:  time.Now().UTC(),
		Custom: &CustomSelection{
			Chocolates: chocolates,
			Biscuits:   biscuits,
			Rose:       rose,
			Bear:       input.Bear,
		},
	}

	return s.append(ctx, deviceID, item)
}

// Remove drops the item when present and silently succeeds when it is not.
func (s *service) Remove(ctx context.Context, deviceID string, itemID uuid.UUID) error {
	cart, err := s.load(ctx, deviceID)
	if err != nil {
		return err
	}

	kept := cart.Items[:0]
	removed := false
	for _, item := range cart.Items {
		if item.ID == itemID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil
	}

	cart.Items = kept
	return s.save(ctx, deviceID, cart)
}

func (s *service) Clear(ctx context.Context, deviceID string) error {
	if err := s.repo.Clear(ctx, deviceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "clear cart")
	}
	return nil
}

func (s *service) append(ctx context.Context, deviceID string, item LineItem) (*LineItem, error) {
	cart, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	cart.Items = append(cart.Items, item)
	if err := s.save(ctx, deviceID, cart); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *service) load(ctx context.Context, deviceID string) (*Cart, error) {
	if deviceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	cart, err := s.repo.Load(ctx, deviceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load cart")
	}
	return cart, nil
}

func (s *service) save(ctx context.Context, deviceID string, cart *Cart) error {
	if err := s.repo.Save(ctx, deviceID, cart); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "save cart")
	}
	return nil
}

func viewOf(cart *Cart) *View {
	items := cart.Items
	if items == nil {
		items = []LineItem{}
	}
	return &View{
		Items:      items,
		ItemCount:  len(items),
		TotalPrice: cart.TotalPrice(),
	}
}
