package services

import (
	"context"

	"github.com/rgrams-coder/mmles/internal/email"
	"github.com/rgrams-coder/mmles/internal/events"
	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/internal/models"
)

// NotificationService fans committed changes out to email and the event stream.
// Every method is best effort: failures are logged and never returned, so callers run
// it only after their transaction has committed.
type NotificationService interface {
	UserRegistered(ctx context.Context, user *models.User)
	LibraryAccessGranted(ctx context.Context, user *models.User, amountINR int64)
	SubmissionCreated(ctx context.Context, user *models.User, kind models.SubmissionKind, sub *models.Submission)
}

type notificationService struct {
	mailer    email.Provider
	publisher events.Publisher
}

func NewNotificationService(mailer email.Provider, publisher events.Publisher) NotificationService {
	if mailer == nil {
		mailer = email.NoopProvider{}
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &notificationService{
		mailer:    mailer,
		publisher: publisher,
	}
}

func (s *notificationService) UserRegistered(ctx context.Context, user *models.User) {
	s.publish(ctx, events.New(events.UserRegistered, user.ID, map[string]interface{}{
		"userId":    user.ID,
		"username":  user.Username,
		"status":    string(user.Status),
		"paymentId": user.PaymentID,
	}))

	s.mail(ctx, user.Email, "Welcome to the Mining Law Portal", email.TemplateWelcome, email.TemplateData{
		"Name":      user.Name,
		"Username":  user.Username,
		"PaymentID": user.PaymentID,
	})
}

func (s *notificationService) LibraryAccessGranted(ctx context.Context, user *models.User, amountINR int64) {
	s.publish(ctx, events.New(events.LibraryAccessGranted, user.ID, map[string]interface{}{
		"userId":    user.ID,
		"username":  user.Username,
		"paymentId": user.LibraryPaymentID,
		"amount":    amountINR,
	}))

	s.mail(ctx, user.Email, "Library access activated", email.TemplateLibraryReceipt, email.TemplateData{
		"Name":      user.Name,
		"Amount":    amountINR,
		"PaymentID": user.LibraryPaymentID,
	})
}

func (s *notificationService) SubmissionCreated(ctx context.Context, user *models.User, kind models.SubmissionKind, sub *models.Submission) {
	s.publish(ctx, events.New(events.SubmissionCreated, user.ID, map[string]interface{}{
		"id":       sub.ID,
		"kind":     string(kind),
		"username": sub.Username,
		"title":    sub.Title,
		"hasFile":  sub.Attachment.HasFile(),
	}))

	s.mail(ctx, user.Email, "We received your request", email.TemplateSubmission, email.TemplateData{
		"Name":  user.Name,
		"Kind":  string(kind),
		"Title": sub.Title,
		"ID":    sub.ID,
	})
}

func (s *notificationService) publish(ctx context.Context, event events.Event) {
	err := s.publisher.Publish(ctx, event)
	logger.SideEffectLog("event", event.Type, err)
}

func (s *notificationService) mail(ctx context.Context, to, subject, template string, data email.TemplateData) {
	if to == "" {
		return
	}
	err := s.mailer.SendTemplate([]string{to}, subject, template, data)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to send email", err, "template", template)
	}
	logger.SideEffectLog("email", template, err)
}
