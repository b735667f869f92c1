package cart

import "errors"

var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrAlreadyInCart = errors.New("item already in cart")
	ErrInvalidQty    = errors.New("quantity must not be negative")
	ErrUpdateFailed  = errors.New("cart update failed")
	ErrFetchFailed   = errors.New("cart fetch failed")
)
