package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/models"
)

var (
	ErrOrderNotFound    = errors.New("payment order not found")
	ErrOrderAlreadyPaid = errors.New("payment order already paid")
)

type PaymentOrderRepository interface {
	Create(db *gorm.DB, order *models.PaymentOrder) error
	FindByGatewayID(db *gorm.DB, gatewayOrderID string) (*models.PaymentOrder, error)
	MarkPaid(db *gorm.DB, id, paymentID string, paidAt time.Time) error
}

type PaymentOrderRepositoryImpl struct{}

func NewPaymentOrderRepository() PaymentOrderRepository {
	return &PaymentOrderRepositoryImpl{}
}

func (r *PaymentOrderRepositoryImpl) Create(db *gorm.DB, order *models.PaymentOrder) error {
	return db.Create(order).Error
}

func (r *PaymentOrderRepositoryImpl) FindByGatewayID(db *gorm.DB, gatewayOrderID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := db.Where("gateway_order_id = ?", gatewayOrderID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// MarkPaid moves an order from created to paid. Only one caller can win: the others
// get ErrOrderAlreadyPaid, whatever they read before.
func (r *PaymentOrderRepositoryImpl) MarkPaid(db *gorm.DB, id, paymentID string, paidAt time.Time) error {
	res := db.Model(&models.PaymentOrder{}).
		Where("id = ? AND status = ?", id, models.OrderStatusCreated).
		Updates(map[string]interface{}{
			"status":     models.OrderStatusPaid,
			"payment_id": paymentID,
			"paid_at":    paidAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrOrderAlreadyPaid
	}
	return nil
}
