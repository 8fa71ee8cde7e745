package apperrors

import (
	"net/http"
)

/*
Predefined errors of the portal domains. Services return these (or copies made with
WithDetails/WithError); handlers never build them.
*/

// --- Auth ---

// ErrInvalidCredentials - unknown username or wrong password. One message for both so
// the response does not reveal which factor failed.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - missing, malformed, forged or expired bearer token.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrWrongPassword - current password mismatch on password change.
var ErrWrongPassword = New(
	CodeInvalidCredentials,
	"auth",
	"Current password is incorrect",
	http.StatusUnauthorized,
)

// ErrNotResourceOwner - the acting user is not the owner of the addressed resource.
var ErrNotResourceOwner = New(
	CodeForbidden,
	"auth",
	"You are not allowed to access this resource",
	http.StatusForbidden,
)

// --- Users ---

// ErrUserAlreadyExists - username or email collision (pre-check or unique index).
var ErrUserAlreadyExists = New(
	CodeAlreadyExists,
	"user",
	"Email or username already exists",
	http.StatusBadRequest,
)

// ErrEmailTaken - email collision on profile update.
var ErrEmailTaken = New(
	CodeAlreadyExists,
	"user",
	"Email is already registered",
	http.StatusBadRequest,
)

// ErrUserNotFound
var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// ErrInvalidCategoryDetails - category payload does not belong to the member category.
var ErrInvalidCategoryDetails = New(
	CodeValidationFailed,
	"user",
	"Category details do not match the selected status",
	http.StatusBadRequest,
)

// --- Payments ---

// ErrInvalidPaymentSignature - gateway signature mismatch. Terminal, not retryable.
var ErrInvalidPaymentSignature = New(
	CodeInvalidSignature,
	"payment",
	"Invalid payment signature",
	http.StatusBadRequest,
)

// ErrPaymentAlreadyUsed - the order was already consumed by an earlier verification.
var ErrPaymentAlreadyUsed = New(
	CodeInvalidOperation,
	"payment",
	"Payment has already been used",
	http.StatusBadRequest,
)

// ErrOrderPurposeMismatch - order exists but was created for another purpose.
var ErrOrderPurposeMismatch = New(
	CodeInvalidOperation,
	"payment",
	"Payment order was not created for this purpose",
	http.StatusBadRequest,
)

// ErrOrderNotFound - library verification for an order this service never created.
var ErrOrderNotFound = New(
	CodeNotFound,
	"payment",
	"Payment order not found",
	http.StatusBadRequest,
)

// ErrInvalidPaymentAmount - registration order without a usable amount.
var ErrInvalidPaymentAmount = New(
	CodeValidationFailed,
	"payment",
	"Invalid payment amount",
	http.StatusBadRequest,
)

// ErrPaymentGateway - the payment gateway could not be reached or rejected the call.
var ErrPaymentGateway = New(
	CodeExternalServiceError,
	"payment",
	"Payment provider error",
	http.StatusInternalServerError,
)

// --- Submissions & files ---

// ErrSubmissionNotFound
var ErrSubmissionNotFound = New(
	CodeNotFound,
	"submission",
	"Request not found",
	http.StatusNotFound,
)

// ErrFileTooLarge - attachment exceeds upload.max_size.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - sniffed MIME type is not allowed.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// ErrFileNotFound - submission has no attachment or storage lost it.
var ErrFileNotFound = New(
	CodeNotFound,
	"storage",
	"File not found",
	http.StatusNotFound,
)
