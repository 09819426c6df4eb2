package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mahbubzaman/gobazaar/app/cart"
	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/models/migrations"
	"github.com/mahbubzaman/gobazaar/app/repositories"
)

type fakeBkash struct {
	grantErr   error
	createErr  error
	executeErr error
	paymentID  string
	trxID      string
}

func (f *fakeBkash) GrantToken(ctx context.Context) (string, error) {
	if f.grantErr != nil {
		return "", f.grantErr
	}
	return "fake-token", nil
}

func (f *fakeBkash) CreatePayment(ctx context.Context, token string, amount decimal.Decimal, invoiceNumber string) (*BkashPayment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &BkashPayment{PaymentID: f.paymentID, RedirectURL: "https://sandbox.payment.bkash.com/redirect/" + f.paymentID}, nil
}

func (f *fakeBkash) ExecutePayment(ctx context.Context, token, paymentID string) (*BkashExecution, error) {
	if f.executeErr != nil {
		return nil, f.executeErr
	}
	return &BkashExecution{
		PaymentID:         paymentID,
		TrxID:             f.trxID,
		StatusCode:        "0000",
		TransactionStatus: "Completed",
	}, nil
}

func setupCheckoutTest(t *testing.T, bkash BkashClient) (*CheckoutService, *gorm.DB, repositories.ProductRepositoryImpl) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	svc := NewCheckoutService(db, productRepo, orderRepo, bkash, decimal.Zero, decimal.Zero)
	return svc, db, productRepo
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:  name,
		Sku:   "SKU-" + name,
		Slug:  "slug-" + name,
		Price: decimal.NewFromInt(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestPlaceOrderTotals(t *testing.T) {
	svc, db, _ := setupCheckoutTest(t, &fakeBkash{})
	ctx := context.Background()

	mouse := seedProduct(t, db, "mouse", 500, 10)
	keyboard := seedProduct(t, db, "keyboard", 1200, 5)

	c := cart.New()
	c.AddItem(mouse.ID, mouse.Name, mouse.Price, "", 2)
	c.AddItem(keyboard.ID, keyboard.Name, keyboard.Price, "", 1)

	order, err := svc.PlaceOrder(ctx, c, ShippingDetails{
		Name:    "Rahim Uddin",
		Email:   "rahim@example.com",
		Phone:   "01712345678",
		Address: "House 12, Road 5, Dhanmondi, Dhaka",
		Area:    "inside_dhaka",
	}, models.PaymentMethodCOD)
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(2200)), "subtotal was %s", order.Subtotal)
	assert.True(t, order.DeliveryFee.Equal(decimal.NewFromInt(60)), "fee was %s", order.DeliveryFee)
	assert.True(t, order.GrandTotal.Equal(decimal.NewFromInt(2260)), "grand total was %s", order.GrandTotal)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)
	assert.NotEmpty(t, order.OrderCode)
	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, "SKU-mouse", order.OrderItems[0].ProductSku)

	var updated models.Product
	require.NoError(t, db.First(&updated, "id = ?", mouse.ID).Error)
	assert.Equal(t, 8, updated.Stock)
	updated = models.Product{}
	require.NoError(t, db.First(&updated, "id = ?", keyboard.ID).Error)
	assert.Equal(t, 4, updated.Stock)
}

func TestPlaceOrderOutsideDhakaFee(t *testing.T) {
	svc, db, _ := setupCheckoutTest(t, &fakeBkash{})

	product := seedProduct(t, db, "charger", 800, 3)

	c := cart.New()
	c.AddItem(product.ID, product.Name, product.Price, "", 1)

	order, err := svc.PlaceOrder(context.Background(), c, ShippingDetails{
		Name:    "Karim",
		Email:   "karim@example.com",
		Phone:   "01812345678",
		Address: "Station Road, Chattogram",
		Area:    "outside_dhaka",
	}, models.PaymentMethodCOD)
	require.NoError(t, err)

	assert.True(t, order.DeliveryFee.Equal(decimal.NewFromInt(120)))
	assert.True(t, order.GrandTotal.Equal(decimal.NewFromInt(920)))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, _, _ := setupCheckoutTest(t, &fakeBkash{})

	_, err := svc.PlaceOrder(context.Background(), cart.New(), ShippingDetails{Area: "inside_dhaka"}, models.PaymentMethodCOD)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

// A line over stock must fail the whole order and leave the other lines'
// stock untouched.
func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	svc, db, _ := setupCheckoutTest(t, &fakeBkash{})

	plenty := seedProduct(t, db, "cable", 150, 20)
	scarce := seedProduct(t, db, "monitor", 9000, 1)

	c := cart.New()
	c.AddItem(plenty.ID, plenty.Name, plenty.Price, "", 2)
	c.AddItem(scarce.ID, scarce.Name, scarce.Price, "", 3)

	_, err := svc.PlaceOrder(context.Background(), c, ShippingDetails{
		Name:    "Jamal",
		Email:   "jamal@example.com",
		Phone:   "01912345678",
		Address: "Mirpur 10, Dhaka",
		Area:    "inside_dhaka",
	}, models.PaymentMethodCOD)
	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	var updated models.Product
	require.NoError(t, db.First(&updated, "id = ?", plenty.ID).Error)
	assert.Equal(t, 20, updated.Stock)
}

func TestBkashPaymentLifecycle(t *testing.T) {
	bkash := &fakeBkash{paymentID: "TR0011xyz", trxID: "9XY456ABC"}
	svc, db, _ := setupCheckoutTest(t, bkash)
	ctx := context.Background()

	product := seedProduct(t, db, "headset", 2000, 4)

	c := cart.New()
	c.AddItem(product.ID, product.Name, product.Price, "", 1)

	order, err := svc.PlaceOrder(ctx, c, ShippingDetails{
		Name:    "Nadia",
		Email:   "nadia@example.com",
		Phone:   "01612345678",
		Address: "Banani, Dhaka",
		Area:    "inside_dhaka",
	}, models.PaymentMethodBkash)
	require.NoError(t, err)

	redirectURL, err := svc.InitiateBkashPayment(ctx, order)
	require.NoError(t, err)
	assert.Contains(t, redirectURL, "TR0011xyz")
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)

	paid, err := svc.CompleteBkashPayment(ctx, "TR0011xyz")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, "9XY456ABC", paid.BkashTrxID)
}

func TestAbortBkashPaymentRestocks(t *testing.T) {
	bkash := &fakeBkash{paymentID: "TR0011fail"}
	svc, db, _ := setupCheckoutTest(t, bkash)
	ctx := context.Background()

	product := seedProduct(t, db, "webcam", 3500, 6)

	c := cart.New()
	c.AddItem(product.ID, product.Name, product.Price, "", 2)

	order, err := svc.PlaceOrder(ctx, c, ShippingDetails{
		Name:    "Sumi",
		Email:   "sumi@example.com",
		Phone:   "01512345678",
		Address: "Uttara, Dhaka",
		Area:    "inside_dhaka",
	}, models.PaymentMethodBkash)
	require.NoError(t, err)

	_, err = svc.InitiateBkashPayment(ctx, order)
	require.NoError(t, err)

	aborted, err := svc.AbortBkashPayment(ctx, "TR0011fail")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, aborted.PaymentStatus)
	assert.Equal(t, models.OrderStatusCancelled, aborted.Status)

	var updated models.Product
	require.NoError(t, db.First(&updated, "id = ?", product.ID).Error)
	assert.Equal(t, 6, updated.Stock)
}

func TestInitiateBkashPaymentAuthFailure(t *testing.T) {
	bkash := &fakeBkash{grantErr: &AuthError{Message: "credentials rejected by gateway"}}
	svc, db, _ := setupCheckoutTest(t, bkash)
	ctx := context.Background()

	product := seedProduct(t, db, "speaker", 1500, 2)

	c := cart.New()
	c.AddItem(product.ID, product.Name, product.Price, "", 1)

	order, err := svc.PlaceOrder(ctx, c, ShippingDetails{
		Name:    "Tanvir",
		Email:   "tanvir@example.com",
		Phone:   "01312345678",
		Address: "Khilgaon, Dhaka",
		Area:    "inside_dhaka",
	}, models.PaymentMethodBkash)
	require.NoError(t, err)

	_, err = svc.InitiateBkashPayment(ctx, order)
	require.Error(t, err)

	var authErr *AuthError
	assert.True(t, errors.As(err, &authErr))
}
