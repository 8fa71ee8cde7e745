package handlers

import (
	"github.com/rgrams-coder/mmles/internal/services"
	"github.com/rgrams-coder/mmles/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	PaymentHandler     *PaymentHandler
	LegalAdviceHandler *SubmissionHandler
	MiningPlanHandler  *SubmissionHandler
	FileHandler        *FileHandler
	HealthHandler      *HealthHandler
}

func NewAppHandlers(v *validator.Validator, svc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(v)
	maxUpload := svc.UploadService.MaxFileSize()
	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, svc.AuthService),
		UserHandler:        NewUserHandler(base, svc.UserService),
		PaymentHandler:     NewPaymentHandler(base, svc.PaymentService),
		LegalAdviceHandler: NewLegalAdviceHandler(base, svc.SubmissionService, maxUpload),
		MiningPlanHandler:  NewMiningPlanHandler(base, svc.SubmissionService, maxUpload),
		FileHandler:        NewFileHandler(base, svc.SubmissionService),
		HealthHandler:      NewHealthHandler(base),
	}
}
