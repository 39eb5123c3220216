package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storepulse/storepulse-api/internal/domain/entity"
	"github.com/storepulse/storepulse-api/internal/domain/enum"
	"github.com/storepulse/storepulse-api/internal/domain/repository"
	"github.com/storepulse/storepulse-api/pkg/apperror"
)

// countingCache records invalidations without storing anything
type countingCache struct {
	invalidations int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *countingCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return nil
}

func (c *countingCache) InvalidateAll(ctx context.Context) (int64, error) {
	c.invalidations++
	return 0, nil
}

func (c *countingCache) Close() error { return nil }

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
	byNum  map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[uuid.UUID]*entity.Order),
		byNum:  make(map[string]*entity.Order),
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders[order.ID] = order
	f.byNum[order.OrderNumber] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	return f.byNum[orderNumber], nil
}

func (f *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	orders := make([]entity.Order, 0, len(f.orders))
	for _, o := range f.orders {
		orders = append(orders, *o)
	}
	return orders, int64(len(orders)), nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	f.orders[id].Status = status
	return nil
}

type fakeRefundRepo struct {
	refunds []*entity.Refund
}

func (f *fakeRefundRepo) Create(ctx context.Context, refund *entity.Refund) error {
	if refund.ID == uuid.Nil {
		refund.ID = uuid.New()
	}
	f.refunds = append(f.refunds, refund)
	return nil
}

func (f *fakeRefundRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Refund, error) {
	var out []entity.Refund
	for _, r := range f.refunds {
		if r.OrderID == orderID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func newTestOrderService() (*OrderService, *fakeOrderRepo, *fakeRefundRepo, *countingCache) {
	orderRepo := newFakeOrderRepo()
	refundRepo := &fakeRefundRepo{}
	store := &countingCache{}
	return NewOrderService(orderRepo, refundRepo, store), orderRepo, refundRepo, store
}

func validCreateInput() *CreateOrderInput {
	return &CreateOrderInput{
		OrderNumber:      "1001",
		Status:           enum.OrderStatusProcessing,
		OrderDate:        time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC),
		BillingEmail:     "Jane@Example.com",
		BillingFirstName: "Jane",
		BillingLastName:  "Doe",
		Items: []OrderItemInput{
			{ProductName: "Widget", Quantity: 2, UnitPrice: 19.99},
			{ProductName: "Gadget", Quantity: 1, UnitPrice: 5.00},
		},
		Coupons: []OrderCouponInput{{Code: "SAVE5", Discount: 5.00}},
	}
}

func TestCreateOrderComputesTotalAndInvalidates(t *testing.T) {
	svc, _, _, store := newTestOrderService()

	order, err := svc.CreateOrder(context.Background(), validCreateInput())
	require.NoError(t, err)

	// 2*19.99 + 5.00 - 5.00 coupon = 39.98
	assert.Equal(t, int64(3998), order.Total)
	assert.Equal(t, "jane@example.com", order.BillingEmail)
	assert.Equal(t, "save5", order.Coupons[0].Code)
	assert.Equal(t, 1, store.invalidations)
}

func TestCreateOrderRejectsDuplicateNumber(t *testing.T) {
	svc, _, _, store := newTestOrderService()
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, validCreateInput())
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, validCreateInput())
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
	assert.Equal(t, 1, store.invalidations)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	svc, _, _, store := newTestOrderService()

	input := validCreateInput()
	input.Items = nil

	_, err := svc.CreateOrder(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Equal(t, 0, store.invalidations)
}

func TestUpdateStatusInvalidates(t *testing.T) {
	svc, _, _, store := newTestOrderService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validCreateInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, enum.OrderStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusCompleted, updated.Status)
	assert.Equal(t, 2, store.invalidations)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enum.OrderStatusCompleted)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestRecordRefundStoresNegativeCents(t *testing.T) {
	svc, _, refundRepo, store := newTestOrderService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validCreateInput())
	require.NoError(t, err)

	refund, err := svc.RecordRefund(ctx, &RecordRefundInput{
		OrderID: order.ID,
		Amount:  12.50,
		Reason:  "damaged item",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(-1250), refund.Amount)
	assert.Len(t, refundRepo.refunds, 1)
	assert.Equal(t, 2, store.invalidations)
}

func TestRecordRefundRejectsNonPositiveAmount(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	_, err := svc.RecordRefund(context.Background(), &RecordRefundInput{
		OrderID: uuid.New(),
		Amount:  0,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
