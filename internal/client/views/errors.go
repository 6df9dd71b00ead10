package views

import (
	"errors"

	"github.com/dmitrijs2005/docdesk/internal/client/client"
)

var (
	ErrBusy = errors.New("operation already in progress")

	ErrNoFileSelected  = errors.New("please select a file to upload")
	ErrDeleteCancelled = errors.New("deletion cancelled")
	ErrUnknownDocument = errors.New("no such document")

	ErrQuestionRequired = errors.New("please select a document and enter a question")
	ErrNoAnswer         = errors.New("no answer was found for this question")
	ErrAskFailed        = errors.New("asking the question failed, please try again")

	ErrPasswordFieldsRequired = errors.New("fill in all password fields to change the password")
	ErrPasswordMismatch       = errors.New("new passwords do not match")
	ErrPasswordUnchanged      = errors.New("new password must differ from the current one")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")

	ErrAvatarTooLarge = errors.New("profile picture must be smaller than 5MB")
	ErrAvatarType     = errors.New("only JPG or PNG images can be uploaded")

	ErrCredentialsRequired = errors.New("email and password are required")
	ErrNotLoaded           = errors.New("nothing loaded yet")
)

// Failure is a failed request as presented to the user. Msg is the server's
// detail when it sent one, otherwise a generic message for the operation.
type Failure struct {
	Msg string
	Err error
}

func (f *Failure) Error() string { return f.Msg }

func (f *Failure) Unwrap() error { return f.Err }

func fail(err error, fallback string) error {
	return &Failure{Msg: client.Message(err, fallback), Err: err}
}
