package carmd

// CarMD credential header names. The key and secret travel verbatim.
const (
	HeaderAuthorization = "authorization"
	HeaderPartnerToken  = "partner-token"
)

// Authenticator decorates outbound request headers with API credentials.
// It is an interface so tests can substitute header injection without a
// live upstream.
type Authenticator interface {
	// Apply sets the credential headers on h and returns it, leaving
	// everything else untouched. Applying twice must leave the same
	// values in place.
	Apply(h map[string]string) map[string]string
}

// HeaderAuth injects the CarMD credential pair: the authorization key
// and the partner token.
type HeaderAuth struct {
	key    string
	secret string
}

// NewHeaderAuth builds a HeaderAuth for the given credential pair.
func NewHeaderAuth(key, secret string) HeaderAuth {
	return HeaderAuth{key: key, secret: secret}
}

// Apply sets the two CarMD headers on h.
func (a HeaderAuth) Apply(h map[string]string) map[string]string {
	if h == nil {
		h = make(map[string]string, 2)
	}
	h[HeaderAuthorization] = a.key
	h[HeaderPartnerToken] = a.secret
	return h
}
