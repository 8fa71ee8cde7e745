package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Username     string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `json:"name"`
	Phone        string         `json:"phone"`
	Status       MemberCategory `gorm:"type:varchar(32)" json:"status"`

	CategoryDetails datatypes.JSONType[CategoryDetails] `json:"categoryDetails"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(16);default:'pending'" json:"paymentStatus"`
	PaymentID     string        `json:"paymentId,omitempty"`

	HasLibraryAccess     bool                 `gorm:"default:false" json:"hasLibraryAccess"`
	LibraryPaymentStatus LibraryPaymentStatus `gorm:"type:varchar(16);default:'none'" json:"libraryPaymentStatus"`
	LibraryPaymentID     string               `json:"libraryPaymentId,omitempty"`
	LibraryPaidAt        *time.Time           `json:"libraryPaidAt,omitempty"`
}

// Details returns the decoded category payload.
func (u *User) Details() CategoryDetails {
	return u.CategoryDetails.Data()
}
