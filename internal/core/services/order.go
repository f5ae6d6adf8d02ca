package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/ports/driving"
	"github.com/custodia-labs/orderbot/internal/logger"
)

// Ensure OrderService implements the interface.
var _ driving.OrderService = (*OrderService)(nil)

// OrderService turns free-text order requests into catalog-valid line items.
type OrderService struct {
	catalog  driving.CatalogService
	resolver *NameResolver
	composer Composer
	policy   domain.OrderPolicy
	newKey   func() string
}

// NewOrderService creates an order service reading snapshots from catalog.
func NewOrderService(
	catalog driving.CatalogService,
	resolver *NameResolver,
	composer Composer,
	policy domain.OrderPolicy,
) *OrderService {
	if resolver == nil {
		resolver = NewNameResolver(nil)
	}
	return &OrderService{
		catalog:  catalog,
		resolver: resolver,
		composer: composer,
		policy:   policy,
		newKey:   uuid.NewString,
	}
}

// PlaceOrder resolves every requested line against one snapshot and
// composes the spoken confirmation.
func (s *OrderService) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	if req.ScheduledPickupTime != "" {
		if _, err := time.Parse(time.RFC3339, req.ScheduledPickupTime); err != nil {
			return nil, fmt.Errorf("%w: scheduled pickup time %q is not RFC 3339", domain.ErrInvalidInput, req.ScheduledPickupTime)
		}
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	lines, dropped, err := s.BuildOrder(snap, req.Lines)
	if err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, len(lines))
	for i, line := range lines {
		items[i] = line.LineItem()
	}

	result := &domain.OrderResult{
		LineItems:           items,
		SpokenConfirmation:  s.composer.Compose(lines, req.CustomerName),
		IdempotencyKey:      s.newKey(),
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		Notes:               req.Notes,
		ScheduledPickupTime: req.ScheduledPickupTime,
		Dropped:             dropped,
		Lines:               lines,
	}
	logger.Info("order %s: %d line(s), %d dropped", result.IdempotencyKey, len(items), len(dropped))
	return result, nil
}

// BuildOrder resolves all lines against snap. It fails with ErrEmptyOrder
// when nothing resolves, and under the strict policy with an
// UnresolvedItemsError when anything is dropped.
func (s *OrderService) BuildOrder(snap *domain.Snapshot, requested []domain.RequestedLine) ([]domain.ResolvedLine, []string, error) {
	var lines []domain.ResolvedLine
	var dropped []string

	for _, req := range requested {
		line, ok := s.BuildLine(snap, req)
		if !ok {
			logger.Info("dropped unresolved line %q", req.DisplayName())
			dropped = append(dropped, req.DisplayName())
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, dropped, domain.ErrEmptyOrder
	}
	if s.policy.Strict && len(dropped) > 0 {
		return nil, dropped, &domain.UnresolvedItemsError{Names: dropped}
	}
	return lines, dropped, nil
}

// BuildLine resolves a single requested line. It reports false when the
// name matches nothing; that is a drop, not an error.
func (s *OrderService) BuildLine(snap *domain.Snapshot, req domain.RequestedLine) (domain.ResolvedLine, bool) {
	match, ok := s.resolver.Resolve(snap, req.Name, req.Variation, req.VariationID)
	if !ok {
		return domain.ResolvedLine{}, false
	}
	v := match.Variation

	phrases := make([]string, 0, len(match.ImpliedModifiers)+len(req.Modifiers))
	phrases = append(phrases, match.ImpliedModifiers...)
	phrases = append(phrases, req.Modifiers...)
	mods := ResolveModifiers(snap, v.ItemID, phrases)

	var notes []string
	if note := strings.TrimSpace(req.Note); note != "" {
		notes = append(notes, note)
	}
	notes = append(notes, mods.NoteFragments...)

	line := domain.ResolvedLine{
		VariationID:   v.ID,
		ItemName:      v.ItemName,
		VariationName: v.Name,
		Quantity:      req.Quantity.Count(),
		ModifierIDs:   mods.ModifierIDs,
		Note:          strings.Join(notes, "; "),
		IncludedNames: mods.IncludedNames,
		ExcludedNames: mods.ExcludedNames,
	}
	line.SpokenFragment = LineFragment(line)
	return line, true
}

// Menu lists the current snapshot's sellable variations with formatted prices.
func (s *OrderService) Menu(ctx context.Context) ([]domain.MenuEntry, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	entries := snap.Menu()
	for i := range entries {
		entries[i].Price = FormatPrice(entries[i].PriceCents)
	}
	return entries, nil
}

// FormatPrice renders cents as US dollars with digit grouping: 123456 -> "$1,234.56".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	p := message.NewPrinter(language.English)
	return sign + p.Sprintf("$%d", cents/100) + fmt.Sprintf(".%02d", cents%100)
}
