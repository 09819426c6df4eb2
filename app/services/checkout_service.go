package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mahbubzaman/gobazaar/app/cart"
	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"github.com/mahbubzaman/gobazaar/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrEmptyCart = errors.New("cart is empty")

type ShippingDetails struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Area    string
	UserID  string
}

type CheckoutService struct {
	db          *gorm.DB
	productRepo repositories.ProductRepositoryImpl
	orderRepo   repositories.OrderRepository
	bkash       BkashClient

	feeInsideDhaka  decimal.Decimal
	feeOutsideDhaka decimal.Decimal
}

func NewCheckoutService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepository,
	bkash BkashClient,
	feeInsideDhaka, feeOutsideDhaka decimal.Decimal,
) *CheckoutService {
	if feeInsideDhaka.IsZero() {
		feeInsideDhaka = calc.DefaultFeeInsideDhaka
	}
	if feeOutsideDhaka.IsZero() {
		feeOutsideDhaka = calc.DefaultFeeOutsideDhaka
	}
	return &CheckoutService{
		db:              db,
		productRepo:     productRepo,
		orderRepo:       orderRepo,
		bkash:           bkash,
		feeInsideDhaka:  feeInsideDhaka,
		feeOutsideDhaka: feeOutsideDhaka,
	}
}

func (s *CheckoutService) DeliveryFee(area string) decimal.Decimal {
	return calc.DeliveryFeeForArea(area, s.feeInsideDhaka, s.feeOutsideDhaka)
}

// PlaceOrder turns the session cart into a persisted order inside one
// transaction. Stock is decremented per line with a guard against concurrent
// oversell; any failure rolls the whole order back. The caller clears the
// session cart only after this returns.
func (s *CheckoutService) PlaceOrder(ctx context.Context, c *cart.Cart, details ShippingDetails, paymentMethod string) (*models.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if paymentMethod != models.PaymentMethodCOD && paymentMethod != models.PaymentMethodBkash {
		return nil, fmt.Errorf("unknown payment method %q", paymentMethod)
	}

	subtotal := c.TotalPrice()
	deliveryFee := s.DeliveryFee(details.Area)
	grandTotal := calc.CalculateGrandTotal(subtotal, deliveryFee)

	order := &models.Order{
		UserID:          details.UserID,
		OrderCode:       helpers.GenerateOrderCode(),
		OrderDate:       time.Now(),
		CustomerName:    details.Name,
		CustomerEmail:   details.Email,
		CustomerPhone:   details.Phone,
		ShippingAddress: details.Address,
		ShippingArea:    details.Area,
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		GrandTotal:      grandTotal,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   models.PaymentStatusUnpaid,
		Status:          models.OrderStatusPending,
	}

	for _, item := range c.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Qty:         item.Qty,
			Price:       item.Price,
			LineTotal:   lineTotal,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, item := range c.Items {
			product, err := s.productRepo.GetForUpdate(ctx, tx, item.ProductID)
			if err != nil {
				return fmt.Errorf("product %s not found: %w", item.ProductID, err)
			}
			order.OrderItems[i].ProductSku = product.Sku

			if err := s.productRepo.DecrementStock(ctx, tx, product.ID, item.Qty); err != nil {
				return fmt.Errorf("failed to reserve stock for %s: %w", product.Name, err)
			}
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("CheckoutService.PlaceOrder: order %s created, total %s", order.OrderCode, order.GrandTotal.String())
	return order, nil
}

// InitiateBkashPayment performs the token grant and payment-session creation
// steps and stores the returned payment id on the order. The caller redirects
// the customer to the returned URL.
func (s *CheckoutService) InitiateBkashPayment(ctx context.Context, order *models.Order) (string, error) {
	token, err := s.bkash.GrantToken(ctx)
	if err != nil {
		return "", err
	}

	payment, err := s.bkash.CreatePayment(ctx, token, order.GrandTotal, order.OrderCode)
	if err != nil {
		return "", err
	}

	order.BkashPaymentID = payment.PaymentID
	order.PaymentStatus = models.PaymentStatusPending
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return "", fmt.Errorf("failed to store bkash payment id on order %s: %w", order.OrderCode, err)
	}

	log.Printf("CheckoutService.InitiateBkashPayment: order %s, paymentID %s", order.OrderCode, payment.PaymentID)
	return payment.RedirectURL, nil
}

// CompleteBkashPayment runs the execute step for a payment the gateway
// redirected back as successful. Execution needs a freshly granted token.
func (s *CheckoutService) CompleteBkashPayment(ctx context.Context, paymentID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByBkashPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("no order found for bkash payment %s", paymentID)
	}

	token, err := s.bkash.GrantToken(ctx)
	if err != nil {
		return nil, err
	}

	execution, err := s.bkash.ExecutePayment(ctx, token, paymentID)
	if err != nil {
		return nil, err
	}

	order.PaymentStatus = models.PaymentStatusPaid
	order.BkashTrxID = execution.TrxID
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to mark order %s paid: %w", order.OrderCode, err)
	}

	log.Printf("CheckoutService.CompleteBkashPayment: order %s paid, trxID %s", order.OrderCode, execution.TrxID)
	return order, nil
}

// AbortBkashPayment marks a cancelled or failed payment and releases the
// stock the order had reserved.
func (s *CheckoutService) AbortBkashPayment(ctx context.Context, paymentID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByBkashPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("no order found for bkash payment %s", paymentID)
	}

	order.PaymentStatus = models.PaymentStatusFailed
	if err := order.Transition(models.OrderStatusCancelled, time.Now()); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.OrderItems {
			if err := s.productRepo.IncrementStock(ctx, tx, item.ProductID, item.Qty); err != nil {
				return fmt.Errorf("failed to restock %s: %w", item.ProductID, err)
			}
		}
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("CheckoutService.AbortBkashPayment: order %s cancelled, stock released", order.OrderCode)
	return order, nil
}
