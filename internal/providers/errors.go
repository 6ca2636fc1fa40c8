package providers

import "fmt"

// NotFoundError is returned by the geocoder when a query resolves to nothing.
// The message is user-facing: it becomes the error block text verbatim.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Location '%s' not found. Please try a different city name.", e.Query)
}

// MissingCredentialError is returned before any network call when the
// provider credential is absent from the environment.
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("AviationStack API key not found. Please set %s environment variable. Get your free API key at: https://aviationstack.com/signup/free", e.EnvVar)
}

// StatusError is returned on a non-success HTTP status from a provider.
type StatusError struct {
	Op     string // "weather", "flight", "airport"
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Could not fetch %s data (status: %d)", e.Op, e.Status)
}

// NetworkError is returned on a transport-level failure. No call is retried;
// the failure propagates to the handler boundary as a text block.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
