package dto

import (
	"time"

	"github.com/rgrams-coder/mmles/internal/models"
)

// UserDTO - the sanitized user sent to clients. It has no password field at all.
// The category payload is sent twice: nested as categoryDetails and flat in the
// registration form shape, so a client can PUT the profile it read back unchanged.
type UserDTO struct {
	ID                   string                      `json:"id"`
	Username             string                      `json:"username"`
	Name                 string                      `json:"name"`
	Email                string                      `json:"email"`
	Phone                string                      `json:"phone,omitempty"`
	Status               models.MemberCategory       `json:"status"`
	CategoryDetails      models.CategoryDetails      `json:"categoryDetails"`
	PaymentStatus        models.PaymentStatus        `json:"paymentStatus"`
	HasLibraryAccess     bool                        `json:"hasLibraryAccess"`
	LibraryPaymentStatus models.LibraryPaymentStatus `json:"libraryPaymentStatus"`
	LibraryPaidAt        *time.Time                  `json:"libraryPaidAt,omitempty"`
	CreatedAt            time.Time                   `json:"createdAt"`

	CategoryFields
}

func NewUserDTO(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:                   u.ID,
		Username:             u.Username,
		Name:                 u.Name,
		Email:                u.Email,
		Phone:                u.Phone,
		Status:               u.Status,
		CategoryDetails:      u.Details(),
		PaymentStatus:        u.PaymentStatus,
		HasLibraryAccess:     u.HasLibraryAccess,
		LibraryPaymentStatus: u.LibraryPaymentStatus,
		LibraryPaidAt:        u.LibraryPaidAt,
		CreatedAt:            u.CreatedAt,
		CategoryFields:       CategoryFieldsFrom(u.Details()),
	}
}

// UpdateProfileRequest - owner-editable fields. Username, password and payment state
// are not accepted here. Category fields are merged over the stored payload: an empty
// or missing field keeps its stored value.
type UpdateProfileRequest struct {
	Name   string                `json:"name" validate:"required,max=255"`
	Email  string                `json:"email" validate:"required,email"`
	Phone  string                `json:"phone" validate:"max=32"`
	Status models.MemberCategory `json:"status" validate:"required,member-status"`

	// CategoryDetails is the nested shape a profile read returns. It is used only
	// when its kind matches Status.
	CategoryDetails *models.CategoryDetails `json:"categoryDetails,omitempty"`

	CategoryFields
}

// MergeDetails builds the category payload for an update. Flat fields must belong to
// Status. They are laid over the nested payload, which is laid over stored when the
// payload kind is unchanged.
func (r *UpdateProfileRequest) MergeDetails(stored models.CategoryDetails) (models.CategoryDetails, error) {
	if _, err := r.CategoryFields.Details(r.Status); err != nil {
		return models.CategoryDetails{}, err
	}

	want := r.Status.PayloadKind()
	var base CategoryFields
	if stored.Kind == want {
		base = CategoryFieldsFrom(stored)
	}
	if r.CategoryDetails != nil && r.CategoryDetails.Kind == want {
		base = base.Overlay(CategoryFieldsFrom(*r.CategoryDetails))
	}
	return base.Overlay(r.CategoryFields).Details(r.Status)
}

type UpdateProfileResponse struct {
	Message string   `json:"message"`
	User    *UserDTO `json:"user"`
}
