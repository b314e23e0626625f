package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict: resource already exists")
	ErrInternal           = errors.New("internal server error")
	ErrNoSession          = errors.New("no active session")
	ErrNetworkUnreachable = errors.New("no se pudo conectar con el servidor")

	// ErrNoCompany is raised when an authenticated non-superadmin account has
	// no company assigned. A configuration error, never a silent allow.
	ErrNoCompany = errors.New("este usuario no está asociado a ninguna empresa, contacte al administrador")

	// ErrNotSuperAdmin guards company switching.
	ErrNotSuperAdmin = errors.New("solo el superadmin puede cambiar de empresa")
)

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
