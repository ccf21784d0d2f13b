// Package srp implements SRP-6a (RFC 5054): a password-authenticated key
// exchange in which a client proves knowledge of a password to a server
// that stores only a verifier, and both sides derive a shared session
// key without the password ever crossing the wire.
//
// Every multi-precision value crossing this package's boundary is a
// lowercase hex string whose length matches its declared width (salt,
// x, M1, M2 and K are 64 hex digits; v, A and B are the group's N width
// in hex digits; see the GLOSSARY in the design docs for the full list).
// This package has no transport of its own: callers exchange these hex
// strings by whatever means they like.
//
// Two equivalent ways to use it are provided. The package-level
// functions (GenerateSalt, DerivePrivateKey, ...) are stateless and
// always use the 2048-bit RFC 5054 group. The Client and Server types
// capture a chosen Group for repeated use and additionally track the
// handshake's state machine so that calling a step out of order returns
// ErrProtocolState instead of silently producing garbage.
package srp

import "github.com/srp6a/srp/internal/params"

// GenerateSalt returns a new random salt (64 hex digits).
func GenerateSalt() string {
	return generateSalt()
}

// DerivePrivateKey computes x = H(salt, H(I ":" p)) for the default
// (2048-bit) group's hash function. x does not depend on the group's N
// or g, so there is no group-parameterized variant of this function.
func DerivePrivateKey(saltHex, username, password string) (string, error) {
	return derivePrivateKey(saltHex, username, password)
}

// DeriveVerifier computes v = g^x mod N for the default group.
func DeriveVerifier(xHex string) (string, error) {
	return deriveVerifier(params.Default(), xHex)
}

// DeriveVerifierWithGroup computes v = g^x mod N for an explicit group.
func DeriveVerifierWithGroup(xHex string, group Group) (string, error) {
	g, err := group.resolve()
	if err != nil {
		return "", err
	}
	return deriveVerifier(g, xHex)
}

// GenerateClientEphemeral generates (a, A) for the default group.
func GenerateClientEphemeral() (ClientEphemeral, error) {
	return generateClientEphemeral(params.Default())
}

// GenerateClientEphemeralWithGroup generates (a, A) for an explicit
// group.
func GenerateClientEphemeralWithGroup(group Group) (ClientEphemeral, error) {
	g, err := group.resolve()
	if err != nil {
		return ClientEphemeral{}, err
	}
	return generateClientEphemeral(g)
}

// DeriveClientSession computes (K, M1) for the default group.
// aOverrideHex is an optional A value to use instead of the one the
// caller's own GenerateClientEphemeral produced; pass none to use the
// generated A.
func DeriveClientSession(aHex, bHex, saltHex, username, xHex string, aOverrideHex ...string) (ClientSession, error) {
	return deriveClientSession(params.Default(), aHex, bHex, saltHex, username, xHex, firstOrEmpty(aOverrideHex))
}

// DeriveClientSessionWithGroup is DeriveClientSession for an explicit
// group.
func DeriveClientSessionWithGroup(aHex, bHex, saltHex, username, xHex string, group Group, aOverrideHex ...string) (ClientSession, error) {
	g, err := group.resolve()
	if err != nil {
		return ClientSession{}, err
	}
	return deriveClientSession(g, aHex, bHex, saltHex, username, xHex, firstOrEmpty(aOverrideHex))
}

// VerifySession checks the server's proof M2 against a client's session.
func VerifySession(aHex string, session ClientSession, m2Hex string) error {
	return verifyClientSession(aHex, session, m2Hex)
}

// GenerateServerEphemeral generates (b, B) from a stored verifier for
// the default group.
func GenerateServerEphemeral(vHex string) (ServerEphemeral, error) {
	return generateServerEphemeral(params.Default(), vHex)
}

// GenerateServerEphemeralWithGroup generates (b, B) for an explicit
// group.
func GenerateServerEphemeralWithGroup(vHex string, group Group) (ServerEphemeral, error) {
	g, err := group.resolve()
	if err != nil {
		return ServerEphemeral{}, err
	}
	return generateServerEphemeral(g, vHex)
}

// DeriveServerSession verifies the client's proof and derives (K, M2)
// for the default group.
func DeriveServerSession(bHex, aHex, saltHex, username, vHex, m1Hex string) (ServerSession, error) {
	return deriveServerSession(params.Default(), bHex, aHex, saltHex, username, vHex, m1Hex)
}

// DeriveServerSessionWithGroup is DeriveServerSession for an explicit
// group.
func DeriveServerSessionWithGroup(bHex, aHex, saltHex, username, vHex, m1Hex string, group Group) (ServerSession, error) {
	g, err := group.resolve()
	if err != nil {
		return ServerSession{}, err
	}
	return deriveServerSession(g, bHex, aHex, saltHex, username, vHex, m1Hex)
}

func firstOrEmpty(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
