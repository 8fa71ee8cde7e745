package models

type PaymentStatus string
type LibraryPaymentStatus string
type OrderPurpose string
type OrderStatus string
type SubmissionStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"

	LibraryPaymentNone      LibraryPaymentStatus = "none"
	LibraryPaymentPending   LibraryPaymentStatus = "pending"
	LibraryPaymentCompleted LibraryPaymentStatus = "completed"

	OrderPurposeRegistration  OrderPurpose = "registration"
	OrderPurposeLibraryAccess OrderPurpose = "library_access"

	OrderStatusCreated OrderStatus = "created"
	OrderStatusPaid    OrderStatus = "paid"

	SubmissionStatusPending    SubmissionStatus = "pending"
	SubmissionStatusInProgress SubmissionStatus = "in-progress"
	SubmissionStatusCompleted  SubmissionStatus = "completed"
)

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusInProgress, SubmissionStatusCompleted:
		return true
	}
	return false
}
