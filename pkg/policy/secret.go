package policy

import "os"

// DefaultSecret is the fallback HMAC secret used when no secret is
// configured. Running with it is a reduced-security deployment posture,
// not an error; callers should warn when Default is reported true.
const DefaultSecret = "attestor-default-poo-secret"

// Secret holds the process-wide HMAC secret. It is read once at policy
// load time and read-only afterwards.
type Secret struct {
	// Key is the raw HMAC key.
	Key []byte

	// Default reports whether the fallback literal is in use.
	Default bool
}

// SecretFromEnv resolves the shared HMAC secret from the environment:
// ATTESTOR_POO_SECRET first, then the legacy POO_SECRET alias, then the
// fixed default literal.
func SecretFromEnv() Secret {
	if v := os.Getenv("ATTESTOR_POO_SECRET"); v != "" {
		return Secret{Key: []byte(v)}
	}
	if v := os.Getenv("POO_SECRET"); v != "" {
		return Secret{Key: []byte(v)}
	}
	return Secret{Key: []byte(DefaultSecret), Default: true}
}
