package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// mockOrderService is a mock implementation of driving.OrderService.
type mockOrderService struct {
	result  *domain.OrderResult
	menu    []domain.MenuEntry
	err     error
	menuErr error

	lastRequest domain.OrderRequest
}

func (m *mockOrderService) PlaceOrder(_ context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	m.lastRequest = req
	return m.result, m.err
}

func (m *mockOrderService) Menu(_ context.Context) ([]domain.MenuEntry, error) {
	return m.menu, m.menuErr
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	status    domain.CatalogStatus
	err       error
	refreshes int
}

func (m *mockCatalogService) Snapshot(_ context.Context) (*domain.Snapshot, error) {
	return domain.NewSnapshot(time.Now()), m.err
}

func (m *mockCatalogService) Refresh(_ context.Context) (*domain.Snapshot, error) {
	m.refreshes++
	return domain.NewSnapshot(time.Now()), m.err
}

func (m *mockCatalogService) Status() domain.CatalogStatus {
	return m.status
}

func testMenu() []domain.MenuEntry {
	return []domain.MenuEntry{
		{ItemID: "ITEM_BURGER", Name: "Burger", VariationID: "VAR_BURGER_REG", PriceCents: 899, Price: "$8.99", Label: "Burger - Regular"},
		{ItemID: "ITEM_FRIES", Name: "Fries", VariationID: "VAR_FRIES", PriceCents: 399, Price: "$3.99", Label: "Fries"},
		{ItemID: "ITEM_SODA", Name: "Soda", VariationID: "VAR_SODA_LARGE", PriceCents: 299, Price: "$2.99", Label: "Soda - Large"},
	}
}
