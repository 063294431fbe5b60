package model

// CertificateStatus tracks the issuance sub-state of a passing attempt
type CertificateStatus string

const (
	CertificateNone    CertificateStatus = ""
	CertificatePending CertificateStatus = "pending"
	CertificateIssued  CertificateStatus = "issued"
	CertificateFailed  CertificateStatus = "failed"
)

// CertificateRequest is the issuance request posted to the learning store
type CertificateRequest struct {
	ParticipantID   string `json:"participantId"`
	EvaluationID    string `json:"evaluationId"`
	ParticipantName string `json:"participantName"`
	EvaluationTitle string `json:"evaluationTitle"`
}

// CertificateRecord is the created certificate. Only success/failure matters
// to this service; the record itself is not used beyond its identifier.
type CertificateRecord struct {
	ID FlexID `json:"id"`
}
