package studio

import "fmt"

// Failure is a collaborator or input failure with the message shown to the
// user in the session's language.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return fmt.Sprintf("%s: %v", f.Message, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
