package services

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	PaymentService      PaymentService
	SubmissionService   SubmissionService
	UploadService       UploadService
	NotificationService NotificationService
}
