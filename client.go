package srp

import (
	"fmt"

	"github.com/srp6a/srp/internal/params"
)

// clientState tracks the client-side handshake's progression:
// Init -> HasEphemeral -> HasSession -> Verified | Failed.
type clientState int

const (
	clientInit clientState = iota
	clientHasEphemeral
	clientHasSession
	clientVerified
	clientFailed
)

func (s clientState) String() string {
	switch s {
	case clientInit:
		return "Init"
	case clientHasEphemeral:
		return "HasEphemeral"
	case clientHasSession:
		return "HasSession"
	case clientVerified:
		return "Verified"
	case clientFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Client captures a chosen Group for repeated use and enforces the
// client-side handshake's state machine. The zero value is not usable;
// construct one with NewClient.
//
// A Client is not safe for concurrent use by multiple goroutines: a
// single handshake is a strictly ordered sequence of calls.
type Client struct {
	group     *groupHandle
	state     clientState
	ephemeral ClientEphemeral
	session   ClientSession
}

// NewClient constructs a Client bound to group. Passing the zero Group
// value uses the 2048-bit default, matching the stateless function API.
func NewClient(group Group) (*Client, error) {
	g, err := group.resolve()
	if err != nil {
		return nil, err
	}
	return &Client{group: &groupHandle{g}, state: clientInit}, nil
}

// GenerateEphemeral generates the client's (a, A) pair. Must be the
// first call on a fresh Client.
func (c *Client) GenerateEphemeral() (ClientEphemeral, error) {
	if c.state != clientInit {
		return ClientEphemeral{}, fmt.Errorf("%w: GenerateEphemeral called in state %s", ErrProtocolState, c.state)
	}
	eph, err := generateClientEphemeral(c.group.g)
	if err != nil {
		return ClientEphemeral{}, err
	}
	c.ephemeral = eph
	c.state = clientHasEphemeral
	return eph, nil
}

// DeriveSession computes (K, M1) from the server's ephemeral public
// value B, the stored salt, identity and private key x. Must follow
// GenerateEphemeral. aOverrideHex is an optional A value to use instead
// of the one GenerateEphemeral produced; pass none to let the Client use
// the A it generated.
func (c *Client) DeriveSession(bHex, saltHex, username, xHex string, aOverrideHex ...string) (ClientSession, error) {
	if c.state != clientHasEphemeral {
		return ClientSession{}, fmt.Errorf("%w: DeriveSession called in state %s", ErrProtocolState, c.state)
	}
	session, err := deriveClientSession(c.group.g, c.ephemeral.Secret, bHex, saltHex, username, xHex, firstOrEmpty(aOverrideHex))
	if err != nil {
		c.state = clientFailed
		return ClientSession{}, err
	}
	c.session = session
	c.state = clientHasSession
	return session, nil
}

// VerifySession checks the server's proof M2 against the session this
// Client derived. Must follow DeriveSession.
func (c *Client) VerifySession(m2Hex string) error {
	if c.state != clientHasSession {
		return fmt.Errorf("%w: VerifySession called in state %s", ErrProtocolState, c.state)
	}
	if err := verifyClientSession(c.ephemeral.Public, c.session, m2Hex); err != nil {
		c.state = clientFailed
		return err
	}
	c.state = clientVerified
	return nil
}

// Ephemeral returns the (a, A) pair generated by GenerateEphemeral.
func (c *Client) Ephemeral() ClientEphemeral {
	return c.ephemeral
}

// Session returns the (K, M1) pair derived by DeriveSession.
func (c *Client) Session() ClientSession {
	return c.session
}

// Clear drops this Client's references to its sensitive fields (a, K,
// M1). Go's garbage-collected, immutable strings mean this cannot
// overwrite the underlying memory the way a []byte-backed zeroization
// could; Clear is therefore a best-effort courtesy, not a contract the
// caller can observe.
func (c *Client) Clear() {
	c.ephemeral = ClientEphemeral{}
	c.session = ClientSession{}
}

// groupHandle exists so Client/Server can hold a group without exposing
// the internal params package in their public field set.
type groupHandle struct {
	g *params.Group
}
