package models

import (
	"time"
)

// PaymentOrder - an order created at the gateway. Registration orders have no UserID;
// the user does not exist until the order is consumed.
type PaymentOrder struct {
	BaseModel
	GatewayOrderID string       `gorm:"type:varchar(64);uniqueIndex;not null" json:"orderId"`
	Purpose        OrderPurpose `gorm:"type:varchar(32);not null" json:"purpose"`
	UserID         *string      `gorm:"type:varchar(36);index" json:"userId,omitempty"`
	Amount         int64        `gorm:"not null" json:"amount"` // paise
	Currency       string       `gorm:"type:varchar(8);not null" json:"currency"`
	Receipt        string       `json:"receipt"`
	Status         OrderStatus  `gorm:"type:varchar(16);default:'created'" json:"status"`
	PaymentID      string       `json:"paymentId,omitempty"`
	PaidAt         *time.Time   `json:"paidAt,omitempty"`
}

func (o *PaymentOrder) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// BelongsTo reports whether a library order was created for userID.
func (o *PaymentOrder) BelongsTo(userID string) bool {
	return o.UserID != nil && *o.UserID == userID
}
