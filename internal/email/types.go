package email

// Email is one outgoing message
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is the data passed to a mail template
type TemplateData map[string]interface{}

// Template names
const (
	TemplateWelcome        = "welcome"
	TemplateLibraryReceipt = "library_receipt"
	TemplateSubmission     = "submission_received"
)
