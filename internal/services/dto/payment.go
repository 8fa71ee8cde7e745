package dto

import "github.com/rgrams-coder/mmles/internal/models"

// CreateOrderRequest - registration order. With Status set the category fee wins over
// Amount.
type CreateOrderRequest struct {
	Amount int64                 `json:"amount" validate:"omitempty,gt=0"`
	Status models.MemberCategory `json:"status" validate:"omitempty,member-status"`
}

// OrderResponse - what the checkout widget needs. Amount is in paise.
type OrderResponse struct {
	KeyID    string `json:"key_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	OrderID  string `json:"orderId"`
}

// LibraryOrderRequest - UserID is optional; when sent it must be the caller.
type LibraryOrderRequest struct {
	UserID string `json:"userId"`
}

type VerifyLibraryPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
	UserID    string `json:"userId"`
}

type VerifyLibraryPaymentResponse struct {
	Verified bool     `json:"verified"`
	Message  string   `json:"message,omitempty"`
	User     *UserDTO `json:"user,omitempty"`
}
