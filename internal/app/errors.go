package app

import "errors"

var (
	// ErrInvalidEmail indicates the email failed the client-side format check.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrNotAuthenticated indicates a protected view was requested anonymously.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrRoutePending indicates the session is still initializing.
	ErrRoutePending = errors.New("session still initializing")
	// ErrInvalidBook indicates a book without a name or author.
	ErrInvalidBook = errors.New("book name and author are required")
)
