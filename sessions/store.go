// Package sessions maps issued session credentials to the GitHub access token
// each one is entitled to use.
package sessions

// UpstreamToken is the GitHub issued access token bound to a session.
// It never leaves the server.
type UpstreamToken string

// Store is the credential -> upstream token association.
//
// Implementations must be safe for concurrent use. Entries carry no expiry of
// their own: the expiry embedded in the credential is authoritative.
type Store interface {
	Set(credential string, token UpstreamToken) error
	Get(credential string) (UpstreamToken, bool)
	Has(credential string) bool
	Delete(credential string)
	Clear()
	Len() int
}
