package domain

import "time"

// EventCode identifies the kind of audit event.
type EventCode string

const (
	EventAccountCreated  EventCode = "ACCOUNT_CREATED"
	EventAccountFetched  EventCode = "ACCOUNT_FETCHED"
	EventAccountUpdated  EventCode = "ACCOUNT_UPDATED"
	EventAccountClosed   EventCode = "ACCOUNT_CLOSED"
	EventAccountNotFound EventCode = "ACCOUNT_NOT_FOUND"
	EventForbidden       EventCode = "FORBIDDEN"

	// EventPersistenceFailure records a store error the service passed through
	// without reclassifying it.
	EventPersistenceFailure EventCode = "PERSISTENCE_FAILURE"

	EventUserRegistered         EventCode = "USER_REGISTERED"
	EventUserRegistrationFailed EventCode = "USER_REGISTRATION_FAILED"
	EventLoginSucceeded         EventCode = "LOGIN_SUCCEEDED"
	EventLoginFailed            EventCode = "LOGIN_FAILED"

	EventInternalServerError EventCode = "INTERNAL_SERVER_ERROR"
)

// ExecutionStatus is the outcome recorded on an audit event.
type ExecutionStatus string

const (
	ExecutionSuccess ExecutionStatus = "SUCCESS"
	ExecutionFailure ExecutionStatus = "FAILURE"
)

// AuditEvent is one structured record of a service invocation. Payload holds
// the operation-specific part and is one of the *Payload types below.
type AuditEvent struct {
	TraceID         string          `json:"traceId,omitempty"`
	ExecutionStatus ExecutionStatus `json:"executionStatus"`
	DurationMs      float64         `json:"durationMs"`
	ActorID         string          `json:"actorId,omitempty"`
	ActorRole       Role            `json:"actorRole,omitempty"`
	ErrorCode       string          `json:"errorCode,omitempty"`
	Payload         EventPayload    `json:"payload,omitempty"`
}

// EventPayload is implemented by the closed set of audit payload shapes.
type EventPayload interface {
	eventPayload()
}

// AccountSummary is the public part of an account recorded in audit events.
type AccountSummary struct {
	AccountID     string        `json:"accountId"`
	CustomerID    string        `json:"customerId"`
	AccountType   AccountType   `json:"accountType"`
	Currency      string        `json:"currency"`
	AccountStatus AccountStatus `json:"accountStatus"`
}

// SummarizeAccount extracts the audit summary of an account.
func SummarizeAccount(a Account) AccountSummary {
	return AccountSummary{
		AccountID:     a.IDString(),
		CustomerID:    a.CustomerIDString(),
		AccountType:   a.Type,
		Currency:      a.Currency,
		AccountStatus: a.Status,
	}
}

// SingleAccountPayload records one account.
type SingleAccountPayload struct {
	Account AccountSummary `json:"account"`
}

// AccountListPayload records every account returned by a list call.
type AccountListPayload struct {
	Accounts []AccountSummary `json:"accounts"`
}

// CustomerFailurePayload echoes a failed request addressed by customer.
type CustomerFailurePayload struct {
	CustomerID    string        `json:"customerId"`
	AccountType   AccountType   `json:"accountType,omitempty"`
	Currency      string        `json:"currency,omitempty"`
	AccountStatus AccountStatus `json:"accountStatus,omitempty"`
}

// AccountFailurePayload echoes a failed request addressed by account id.
type AccountFailurePayload struct {
	AccountID     string         `json:"accountId"`
	Nickname      *string        `json:"nickname,omitempty"`
	AccountStatus *AccountStatus `json:"accountStatus,omitempty"`
}

// UserPayload records an authentication outcome.
type UserPayload struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username"`
	UserRole Role   `json:"userRole,omitempty"`
}

func (SingleAccountPayload) eventPayload()   {}
func (AccountListPayload) eventPayload()     {}
func (CustomerFailurePayload) eventPayload() {}
func (AccountFailurePayload) eventPayload()  {}
func (UserPayload) eventPayload()            {}

// DurationMillis converts an elapsed duration to fractional milliseconds.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
