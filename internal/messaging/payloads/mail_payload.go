package payloads

// Mail templates understood by the mail worker.
const (
	MailActivation    = "activation"
	MailPasswordReset = "password_reset"
)

// MailPayload is the message published to the mail queue.
type MailPayload struct {
	Template string            `json:"template"`
	To       string            `json:"to"`
	UserName string            `json:"userName"`
	Subject  string            `json:"subject"`
	Data     map[string]string `json:"data,omitempty"`
}
