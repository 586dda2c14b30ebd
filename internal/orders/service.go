// Package orders turns carts into paid orders and manages order status.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop_system/internal/domain"
	"shop_system/internal/payment"
	"shop_system/internal/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// nonceTTL bounds how long a used nonce is remembered
const nonceTTL = 24 * time.Hour

// CartItem is a product snapshot submitted at checkout
type CartItem struct {
	ID    uint            `json:"id"`
	Price decimal.Decimal `json:"price"`
}

// CheckoutRequest is a cart paid with a tokenized payment method
type CheckoutRequest struct {
	Nonce   string
	Cart    []CartItem
	BuyerID uint
}

// Validate checks nonce, cart and buyer in that order
func (r CheckoutRequest) Validate() error {
	if r.Nonce == "" {
		return ErrNonceEmpty
	}
	if len(r.Cart) == 0 {
		return ErrCartEmpty
	}
	if r.BuyerID == 0 {
		return ErrBuyerEmpty
	}
	for i, item := range r.Cart {
		if item.ID == 0 || item.Price.IsNegative() {
			return fmt.Errorf("%w: position %d", ErrCartItemInvalid, i)
		}
	}
	return nil
}

// Total is the flat sum of the cart prices
func (r CheckoutRequest) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Cart {
		total = total.Add(item.Price)
	}
	return total
}

// Service is the order and payment engine
type Service struct {
	db        *gorm.DB
	gateway   payment.Gateway
	publisher Publisher
	rdb       *redis.Client // Optional, guards against nonce reuse
	policy    Policy
}

// NewService creates a Service. publisher may be nil; rdb may be nil.
func NewService(db *gorm.DB, gateway payment.Gateway, publisher Publisher, rdb *redis.Client, policy Policy) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if policy == "" {
		policy = PolicyFree
	}
	return &Service{db: db, gateway: gateway, publisher: publisher, rdb: rdb, policy: policy}
}

// ClientToken proxies the gateway token request
func (s *Service) ClientToken(ctx context.Context) (*payment.ClientToken, error) {
	return s.gateway.ClientToken(ctx)
}

// Checkout charges the cart total and stores the order.
//
// A PaymentAttempt is written before the gateway is called. A declined sale
// marks it failed and stores no order. A successful sale creates the order
// and settles the attempt in one transaction, so a crash in between leaves a
// pending attempt carrying the gateway reference.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.claimNonce(ctx, req.Nonce); err != nil {
		return nil, err
	}

	attempt := domain.PaymentAttempt{
		Reference: uuid.NewString(),
		BuyerID:   req.BuyerID,
		Amount:    req.Total(),
		Status:    domain.AttemptPending,
	}
	if err := s.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		return nil, fmt.Errorf("record payment attempt: %w", err)
	}

	txn, err := s.gateway.Sale(ctx, payment.SaleRequest{
		Amount:              attempt.Amount,
		Nonce:               req.Nonce,
		OrderID:             attempt.Reference,
		SubmitForSettlement: true,
	})
	// Bookkeeping after the gateway call must not be cut short by the client going away
	bg := context.WithoutCancel(ctx)
	if err != nil {
		s.recordFailure(bg, &attempt, err)
		return nil, err
	}

	order := &domain.Order{
		Items:            make([]domain.OrderItem, len(req.Cart)),
		Payment:          domain.PaymentSnapshot(txn.Snapshot()),
		BuyerID:          req.BuyerID,
		Status:           domain.StatusNotProcess,
		PaymentReference: attempt.Reference,
	}
	for i, item := range req.Cart {
		order.Items[i] = domain.OrderItem{Position: i, ProductID: item.ID}
	}
	err = s.db.WithContext(bg).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Model(&attempt).Updates(map[string]any{
			"status":         domain.AttemptSettled,
			"transaction_id": txn.ID,
			"order_id":       order.ID,
		}).Error
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"reference":      attempt.Reference,
			"transaction_id": txn.ID,
			"buyer_id":       req.BuyerID,
			"amount":         attempt.Amount.String(),
			"error":          err.Error(),
		}).Error("Payment captured but order was not saved")
		return nil, fmt.Errorf("save order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":       order.ID,
		"buyer_id":       order.BuyerID,
		"amount":         attempt.Amount.String(),
		"transaction_id": txn.ID,
		"products":       len(order.Items),
	}).Info("Order created")
	s.publish(bg, EventCreated, order)
	return order, nil
}

// claimNonce rejects a nonce seen before. Redis failures are logged and
// the gateway's own single-use check is relied on.
func (s *Service) claimNonce(ctx context.Context, nonce string) error {
	if s.rdb == nil {
		return nil
	}
	fresh, err := utils.ClaimOnce(ctx, s.rdb, "payment:nonce:"+nonce, nonceTTL)
	if err != nil {
		logrus.WithError(err).Warn("Nonce guard unavailable")
		return nil
	}
	if !fresh {
		return ErrNonceUsed
	}
	return nil
}

// recordFailure stores the outcome of a failed sale. A gateway business error
// means no money moved; a transport error leaves the outcome unknown, so the
// attempt stays pending for reconciliation.
func (s *Service) recordFailure(ctx context.Context, attempt *domain.PaymentAttempt, saleErr error) {
	updates := map[string]any{"error": saleErr.Error()}
	var gwErr *payment.Error
	if errors.As(saleErr, &gwErr) {
		updates["status"] = domain.AttemptFailed
	}
	if err := s.db.WithContext(ctx).Model(attempt).Updates(updates).Error; err != nil {
		logrus.WithField("reference", attempt.Reference).WithError(err).Error("Failed to record payment failure")
	}
	logrus.WithFields(logrus.Fields{
		"reference": attempt.Reference,
		"buyer_id":  attempt.BuyerID,
		"amount":    attempt.Amount.String(),
		"error":     saleErr.Error(),
	}).Warn("Payment failed")
}

// withRefs loads orders with their items and buyer (password excluded)
func (s *Service) withRefs(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Buyer", func(db *gorm.DB) *gorm.DB { return db.Omit("password", "answer") })
}

// BuyerOrders returns every order of buyerID, newest first
func (s *Service) BuyerOrders(ctx context.Context, buyerID uint) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := s.withRefs(ctx).Where("buyer_id = ?", buyerID).Order("created_at desc").Order("id desc").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("buyer orders: %w", err)
	}
	if err := s.populateProducts(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllOrders returns every order, newest first
func (s *Service) AllOrders(ctx context.Context) ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := s.withRefs(ctx).Order("created_at desc").Order("id desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("all orders: %w", err)
	}
	if err := s.populateProducts(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order returns one populated order
func (s *Service) Order(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := s.withRefs(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	orders := []domain.Order{order}
	if err := s.populateProducts(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// populateProducts resolves item references; deleted products become nil
func (s *Service) populateProducts(ctx context.Context, orders []domain.Order) error {
	seen := map[uint]bool{}
	var ids []uint
	for _, o := range orders {
		for _, it := range o.Items {
			if !seen[it.ProductID] {
				seen[it.ProductID] = true
				ids = append(ids, it.ProductID)
			}
		}
	}
	byID := map[uint]*domain.Product{}
	if len(ids) > 0 {
		var products []domain.Product
		err := s.db.WithContext(ctx).Omit("photo_data").Preload("Category").Where("id IN ?", ids).Find(&products).Error
		if err != nil {
			return fmt.Errorf("populate products: %w", err)
		}
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
	}
	for i := range orders {
		orders[i].Products = make([]*domain.Product, len(orders[i].Items))
		for j, it := range orders[i].Items {
			orders[i].Products[j] = byID[it.ProductID]
		}
	}
	return nil
}

// UpdateStatus sets the status of an order as allowed by the policy.
// The write only succeeds if the status has not changed since it was read.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*domain.Order, error) {
	to, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	var from domain.OrderStatus
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.Order
		if err := tx.Select("id", "status").First(&current, id).Error; err != nil {
			return err
		}
		from = current.Status
		if !s.policy.Allows(from, to) {
			return &TransitionError{From: from, To: to}
		}
		if from == to {
			return nil
		}
		res := tx.Model(&domain.Order{}).Where("id = ? AND status = ?", id, from).Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusConflict
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	order, err := s.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	if from != to {
		logrus.WithFields(logrus.Fields{
			"order_id": id,
			"from":     from,
			"to":       to,
		}).Info("Order status updated")
		s.publish(context.WithoutCancel(ctx), EventStatusUpdated, order)
	}
	return order, nil
}

func (s *Service) publish(ctx context.Context, kind string, order *domain.Order) {
	if err := s.publisher.Publish(ctx, newEvent(kind, order)); err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,
			"kind":     kind,
			"error":    err.Error(),
		}).Error("Failed to publish order event")
	}
}
