// Package trial implements the quota gating that decides whether a request
// may proceed without a personal API key, and with which credential.
//
// Every session gets a fixed number of free questions answered with the
// server's shared trial key. Supplying a personal key lifts the limit for
// that session permanently — there is intentionally no way back to trial
// mode, which the tagged Credential type makes structural.
package trial

// CredentialKind distinguishes the shared trial key from a user's own key.
type CredentialKind string

const (
	KindTrial CredentialKind = "trial"
	KindUser  CredentialKind = "user"
)

// Credential is the resolved API key for one request. The fields are
// unexported so a credential can only be built through the constructors —
// there is no zero-value "empty" credential that could reach the provider.
type Credential struct {
	kind   CredentialKind
	apiKey string
}

// TrialCredential wraps the shared trial key.
func TrialCredential(apiKey string) Credential {
	return Credential{kind: KindTrial, apiKey: apiKey}
}

// UserCredential wraps a user-supplied key.
func UserCredential(apiKey string) Credential {
	return Credential{kind: KindUser, apiKey: apiKey}
}

// Kind returns the credential kind.
func (c Credential) Kind() CredentialKind { return c.kind }

// APIKey returns the raw key value to authenticate with.
func (c Credential) APIKey() string { return c.apiKey }

// IsTrial reports whether this request runs on the shared trial key.
func (c Credential) IsTrial() bool { return c.kind == KindTrial }
