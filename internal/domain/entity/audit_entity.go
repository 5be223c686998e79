package entity

// Audit actions recorded in audit_logs.
const (
	AuditSignUp         = "sign_up"
	AuditSignInSuccess  = "sign_in_success"
	AuditSignInFailure  = "sign_in_failure"
	AuditLogOut         = "log_out"
	AuditEscalation     = "escalation"
	AuditMessageDeleted = "message_deleted"
)

// AuditEntry is one row of the audit trail.
type AuditEntry struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
}
