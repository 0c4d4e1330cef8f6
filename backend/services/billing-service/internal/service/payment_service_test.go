package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"billiardsone/backend/libs/apperr"
	"billiardsone/backend/services/billing-service/internal/models"
	"billiardsone/backend/services/billing-service/internal/repository"
)

type memPayments struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]models.SessionRecord
	payments map[uuid.UUID]models.Payment
	since    time.Time
}

func newMemPayments() *memPayments {
	return &memPayments{
		sessions: map[uuid.UUID]models.SessionRecord{},
		payments: map[uuid.UUID]models.Payment{},
	}
}

func (m *memPayments) Session(ctx context.Context, id uuid.UUID) (*models.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (m *memPayments) Create(ctx context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[payment.SessionID]; ok {
		return repository.ErrAlreadyPaid
	}
	m.payments[payment.SessionID] = *payment
	return nil
}

func (m *memPayments) ListByStaffSince(ctx context.Context, staffID uuid.UUID, since time.Time) ([]models.PaymentWithTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.since = since
	var out []models.PaymentWithTable
	for _, p := range m.payments {
		rec := m.sessions[p.SessionID]
		if rec.StaffID == staffID && !p.PaidAt.Before(since) {
			out = append(out, models.PaymentWithTable{Payment: p, TableName: rec.TableName})
		}
	}
	return out, nil
}

type paymentFixture struct {
	repo   *memPayments
	svc    *PaymentService
	staff  models.StaffIdentity
	closed models.SessionRecord
	open   models.SessionRecord
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	f := &paymentFixture{repo: newMemPayments()}
	f.staff = models.StaffIdentity{StaffID: uuid.New(), CafeID: uuid.New()}

	end := time.Date(2025, 5, 1, 18, 45, 0, 0, time.UTC)
	minutes := 45
	f.closed = models.SessionRecord{ID: uuid.New(), CafeID: f.staff.CafeID, StaffID: f.staff.StaffID, TableName: "Pool 1", EndTime: &end, DurationMinutes: &minutes}
	f.open = models.SessionRecord{ID: uuid.New(), CafeID: f.staff.CafeID, StaffID: f.staff.StaffID, TableName: "Pool 2"}
	f.repo.sessions[f.closed.ID] = f.closed
	f.repo.sessions[f.open.ID] = f.open

	f.svc = NewPaymentService(f.repo, time.UTC, zap.NewNop())
	f.svc.now = func() time.Time { return time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC) }
	return f
}

func TestRecordPayment(t *testing.T) {
	f := newPaymentFixture(t)

	payment, err := f.svc.RecordPayment(context.Background(), f.staff, RecordPaymentInput{
		SessionID: f.closed.ID,
		Amount:    decimal.RequireFromString("450"),
		Method:    models.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, f.closed.ID, payment.SessionID)
	assert.Equal(t, 45, payment.MinutesPlayed)
	assert.Equal(t, models.PaymentCash, payment.PaymentMethod)
}

func TestRecordPayment_RejectsSecondPayment(t *testing.T) {
	f := newPaymentFixture(t)
	input := RecordPaymentInput{SessionID: f.closed.ID, Amount: decimal.NewFromInt(450), Method: models.PaymentOnline}

	_, err := f.svc.RecordPayment(context.Background(), f.staff, input)
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(context.Background(), f.staff, input)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Len(t, f.repo.payments, 1)
}

func TestRecordPayment_ConcurrentAttemptsRecordOnce(t *testing.T) {
	f := newPaymentFixture(t)
	input := RecordPaymentInput{SessionID: f.closed.ID, Amount: decimal.NewFromInt(450), Method: models.PaymentCash}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.RecordPayment(context.Background(), f.staff, input); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestRecordPayment_Rejections(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	amount := decimal.NewFromInt(100)

	_, err := f.svc.RecordPayment(ctx, f.staff, RecordPaymentInput{SessionID: f.open.ID, Amount: amount, Method: models.PaymentCash})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = f.svc.RecordPayment(ctx, f.staff, RecordPaymentInput{SessionID: uuid.New(), Amount: amount, Method: models.PaymentCash})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	outsider := models.StaffIdentity{StaffID: uuid.New(), CafeID: uuid.New()}
	_, err = f.svc.RecordPayment(ctx, outsider, RecordPaymentInput{SessionID: f.closed.ID, Amount: amount, Method: models.PaymentCash})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.svc.RecordPayment(ctx, f.staff, RecordPaymentInput{SessionID: f.closed.ID, Amount: decimal.NewFromInt(-1), Method: models.PaymentCash})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.svc.RecordPayment(ctx, f.staff, RecordPaymentInput{SessionID: f.closed.ID, Amount: amount, Method: "card"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	assert.Empty(t, f.repo.payments)
}

func TestPaymentsToday(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	end := time.Date(2025, 5, 1, 18, 50, 0, 0, time.UTC)
	minutes := 10
	second := models.SessionRecord{ID: uuid.New(), CafeID: f.staff.CafeID, StaffID: f.staff.StaffID, TableName: "Snooker 1", EndTime: &end, DurationMinutes: &minutes}
	f.repo.sessions[second.ID] = second

	_, err := f.svc.RecordPayment(ctx, f.staff, RecordPaymentInput{SessionID: f.closed.ID, Amount: decimal.RequireFromString("450"), Method: models.PaymentCash})
	require.NoError(t, err)
	_, err = f.svc.RecordPayment(ctx, f.staff, RecordPaymentInput{SessionID: second.ID, Amount: decimal.RequireFromString("100.50"), Method: models.PaymentOnline})
	require.NoError(t, err)

	today, err := f.svc.PaymentsToday(ctx, f.staff)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), f.repo.since)
	assert.Len(t, today.Payments, 2)
	assert.Equal(t, 2, today.Summary.SessionsManaged)
	assert.True(t, decimal.RequireFromString("550.50").Equal(today.Summary.TotalRevenue))
	assert.True(t, decimal.RequireFromString("450").Equal(today.Summary.CashCollected))
	assert.True(t, decimal.RequireFromString("100.50").Equal(today.Summary.OnlineCollected))
}

func TestPaymentsToday_Empty(t *testing.T) {
	f := newPaymentFixture(t)

	today, err := f.svc.PaymentsToday(context.Background(), models.StaffIdentity{StaffID: uuid.New(), CafeID: f.staff.CafeID})
	require.NoError(t, err)
	assert.NotNil(t, today.Payments)
	assert.True(t, today.Summary.TotalRevenue.IsZero())
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC is already the next day in IST
	at := time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)

	start := StartOfDay(at, loc)
	assert.Equal(t, time.Date(2025, 5, 2, 0, 0, 0, 0, loc), start)
}
