package collections_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Cartera-api/internal/application/collections"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
)

// fakeLedger store en memoria para los casos de uso.
type fakeLedger struct {
	mu           sync.Mutex
	customers    []entity.Customer
	invoices     []entity.Invoice
	interactions []entity.Interaction
	readErr      error
	appendErr    error
}

func (f *fakeLedger) Customers(context.Context) ([]entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return append([]entity.Customer(nil), f.customers...), nil
}

func (f *fakeLedger) Invoices(context.Context) ([]entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return append([]entity.Invoice(nil), f.invoices...), nil
}

func (f *fakeLedger) Interactions(context.Context) ([]entity.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return append([]entity.Interaction{}, f.interactions...), nil
}

func (f *fakeLedger) AppendInteraction(_ context.Context, rec entity.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.interactions = append(f.interactions, rec)
	return nil
}

// mockGateway pasarela de correo con testify/mock.
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) SendEmail(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// fixedClock reloj detenido que puede avanzarse.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ collections.Clock = (*fixedClock)(nil)

// testNow jueves 18/04/2025 10:00 hora local.
func testNow() time.Time {
	return time.Date(2025, 4, 18, 10, 0, 0, 0, time.Local)
}

func dayOffset(base time.Time, days int) *time.Time {
	y, m, d := base.AddDate(0, 0, days).Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
