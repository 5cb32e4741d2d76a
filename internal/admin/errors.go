package admin

import "errors"

// Failure kinds. Every view operation that fails returns a *Failure whose
// Kind is one of these, so callers can branch with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUpload       = errors.New("upload failed")
	ErrInsert       = errors.New("insert failed")
	ErrDelete       = errors.New("delete failed")
	ErrUpdate       = errors.New("update failed")
	ErrConnectivity = errors.New("server unreachable")
	ErrBusy         = errors.New("operation already in progress")
)

// Failure is what the user was shown. Error() is the alerted text verbatim.
type Failure struct {
	Kind    error
	Message string
}

func (f *Failure) Error() string { return f.Message }
func (f *Failure) Unwrap() error { return f.Kind }

// Confirmer asks the operator a yes/no question before destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Notifier shows a blocking message to the operator.
type Notifier interface {
	Alert(msg string)
}

func alert(n Notifier, kind error, msg string) error {
	n.Alert(msg)
	return &Failure{Kind: kind, Message: msg}
}

func orDefault(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}
