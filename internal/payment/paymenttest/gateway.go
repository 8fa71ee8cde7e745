// Package paymenttest provides an in-process payment gateway for tests.
package paymenttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/rgrams-coder/mmles/internal/payment"
)

const (
	KeyID     = "rzp_test_key"
	KeySecret = "rzp_test_secret"
)

// Gateway creates orders locally and checks signatures with the real HMAC over
// KeySecret.
type Gateway struct {
	mu     sync.Mutex
	seq    int
	err    error
	orders []payment.OrderRequest
}

func (g *Gateway) KeyID() string { return KeyID }

func (g *Gateway) CreateOrder(_ context.Context, req payment.OrderRequest) (*payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.seq++
	g.orders = append(g.orders, req)
	return &payment.Order{
		ID:       fmt.Sprintf("order_%03d", g.seq),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (g *Gateway) VerifySignature(orderID, paymentID, signature string) error {
	return payment.VerifySignature(KeySecret, orderID, paymentID, signature)
}

// FailWith makes every following CreateOrder return err; nil restores success.
func (g *Gateway) FailWith(err error) {
	g.mu.Lock()
	g.err = err
	g.mu.Unlock()
}

// Orders returns the order requests received so far.
func (g *Gateway) Orders() []payment.OrderRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]payment.OrderRequest(nil), g.orders...)
}

// Sign returns the checkout signature the gateway would accept.
func Sign(orderID, paymentID string) string {
	return payment.Sign(KeySecret, orderID, paymentID)
}
