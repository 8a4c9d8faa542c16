// resolver.go decides, per request, whether it may proceed and with which key.
package trial

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTrialLimitReached means the session has used all free questions and has
// no personal key. User-recoverable: supply a key.
var ErrTrialLimitReached = errors.New("trial question limit reached")

// Resolution is the outcome of authorizing one request.
type Resolution struct {
	Credential Credential
	// ConsumesTrial is true only when the shared trial key backs this
	// request. The caller must record usage exactly once, and only after a
	// successful answer — a failed call never consumes quota.
	ConsumesTrial bool
}

// Resolver is the gatekeeper between a session and the provider credential.
type Resolver struct {
	store      Store
	sealer     *Sealer
	trialKey   string
	trialLimit int
}

// NewResolver creates a resolver around the given store.
func NewResolver(store Store, sealer *Sealer, trialKey string, trialLimit int) *Resolver {
	return &Resolver{
		store:      store,
		sealer:     sealer,
		trialKey:   trialKey,
		trialLimit: trialLimit,
	}
}

// TrialLimit returns the configured free-question limit.
func (r *Resolver) TrialLimit() int { return r.trialLimit }

// Resolve authorizes one request for the given session.
//
// A non-blank supplied key is authoritative for this and every future
// request in the session — it is stored immediately, before we know whether
// the provider will accept it. A blank or whitespace-only supplied key is
// treated as "no key supplied": it never overrides a stored key and never
// reaches the provider as an empty credential.
func (r *Resolver) Resolve(ctx context.Context, sessionID, suppliedKey string) (Resolution, error) {
	session, err := r.store.GetOrCreateSession(ctx, sessionID)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to load session: %w", err)
	}

	suppliedKey = strings.TrimSpace(suppliedKey)
	if suppliedKey != "" {
		sealed, err := r.sealer.Seal(suppliedKey)
		if err != nil {
			return Resolution{}, fmt.Errorf("failed to seal supplied key: %w", err)
		}
		if err := r.store.SetCustomKey(ctx, sessionID, sealed); err != nil {
			return Resolution{}, err
		}
		return Resolution{Credential: UserCredential(suppliedKey)}, nil
	}

	if session.HasCustomKey() {
		key, err := r.sealer.Open(*session.CustomKey)
		if err != nil {
			// A stored key we can't unseal (e.g. rotated server secret) is
			// an internal fault. Never fall back to trial mode here — that
			// would silently bill the shared key for an unlimited session.
			return Resolution{}, fmt.Errorf("failed to unseal stored key: %w", err)
		}
		return Resolution{Credential: UserCredential(key)}, nil
	}

	if session.TrialQuestionsUsed < r.trialLimit {
		return Resolution{Credential: TrialCredential(r.trialKey), ConsumesTrial: true}, nil
	}

	return Resolution{}, ErrTrialLimitReached
}
