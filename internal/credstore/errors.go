package credstore

import "errors"

var (
	// ErrSealed indicates an encrypted credentials file was opened without a passphrase.
	ErrSealed = errors.New("credentials file is encrypted; passphrase required")
	// ErrDecrypt indicates the passphrase does not open the credentials file.
	ErrDecrypt = errors.New("cannot decrypt credentials file")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown credential backend")
)
