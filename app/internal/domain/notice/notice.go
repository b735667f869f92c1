package notice

import "errors"

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a message meant for the person using the storefront.
type Notice struct {
	Level   Level
	Message string
}

type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(Notice) {})

const (
	MsgLoginRequired  = "Please log in to add item to cart"
	MsgAlreadyInCart  = "Item already in cart. Use the cart sidebar to update quantity or remove item"
	MsgBackendProblem = "Something went wrong. Check that the backend is running, reachable and returns valid JSON."
	MsgCartFetch      = "Could not fetch cart details. Check that the backend is running, reachable and returns valid JSON."
	MsgCartUpdate     = "Could not update cart. Check that the backend is running, reachable and returns valid JSON."
)

const (
	MsgLoggedIn       = "Logged in successfully"
	MsgLoggedOut      = "Logged out"
	MsgSessionExpired = "Your session has expired. Please log in again"
	MsgCredentials    = "Username and password are required"
)

// shownError marks an error the user has already seen as a notice.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

// Shown records that err was reported through a Notifier. errors.Is and
// errors.As still see through it.
func Shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}

// WasShown reports whether err, or an error it wraps, went through Shown.
func WasShown(err error) bool {
	var s *shownError
	return errors.As(err, &s)
}
