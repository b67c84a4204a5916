package app

import (
	"errors"

	"bookshelf/internal/apiclient"
)

// Level is the severity of a Notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notice is a transient, dismissible message for the user.
type Notice struct {
	Level   Level
	Message string
}

func (n Notice) String() string {
	return string(n.Level) + ": " + n.Message
}

// Success builds a success notice.
func Success(msg string) Notice {
	return Notice{Level: LevelSuccess, Message: msg}
}

// NoticeFor turns err into an error notice carrying the server message when
// one is available and fallback otherwise.
func NoticeFor(err error, fallback string) Notice {
	return Notice{Level: LevelError, Message: messageFor(err, fallback)}
}

func messageFor(err error, fallback string) string {
	var authErr *apiclient.AuthError
	var apiErr *apiclient.APIError
	var netErr *apiclient.NetworkError
	switch {
	case err == nil:
		return fallback
	case errors.Is(err, ErrInvalidEmail):
		return "Please enter a valid email address"
	case errors.Is(err, ErrNotAuthenticated):
		return "Please log in to continue"
	case errors.Is(err, ErrRoutePending):
		return "Loading, please retry"
	case errors.Is(err, ErrInvalidBook):
		return "Please enter both a name and an author"
	case errors.As(err, &authErr):
		if authErr.Message != "" {
			return authErr.Message
		}
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
	case errors.As(err, &netErr):
		return apiclient.DefaultNetworkMessage
	}
	return fallback
}
