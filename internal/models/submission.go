package models

// SubmissionKind - which form a submission came from; also the storage prefix.
type SubmissionKind string

const (
	KindLegalAdvice SubmissionKind = "legal-advice"
	KindMiningPlan  SubmissionKind = "mining-plan"
)

func (k SubmissionKind) IsValid() bool {
	return k == KindLegalAdvice || k == KindMiningPlan
}

// Attachment - optional uploaded file of a submission.
type Attachment struct {
	FileName string `json:"fileName,omitempty"`
	FilePath string `json:"-"`
	FileSize int64  `json:"fileSize,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

func (a Attachment) HasFile() bool {
	return a.FilePath != ""
}

// Submission - fields shared by legal-advice requests and mining-plan queries.
type Submission struct {
	BaseModel
	Username    string           `gorm:"type:varchar(64);index;not null" json:"username"`
	UserID      string           `gorm:"type:varchar(36);index;not null" json:"userId"`
	Title       string           `gorm:"not null" json:"title"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Attachment  Attachment       `gorm:"embedded" json:"attachment"`
	Status      SubmissionStatus `gorm:"type:varchar(16);default:'pending'" json:"status"`
	Response    string           `gorm:"type:text" json:"response,omitempty"`
}

type LegalAdviceRequest struct {
	Submission
}

func (LegalAdviceRequest) TableName() string {
	return "legal_advice_requests"
}

type MiningPlanQuery struct {
	Submission
}

func (MiningPlanQuery) TableName() string {
	return "mining_plan_queries"
}
