package srp

import "fmt"

// serverState tracks the server-side handshake's progression:
// Init -> HasEphemeral -> HasSession | Failed.
type serverState int

const (
	serverInit serverState = iota
	serverHasEphemeral
	serverHasSession
	serverFailed
)

func (s serverState) String() string {
	switch s {
	case serverInit:
		return "Init"
	case serverHasEphemeral:
		return "HasEphemeral"
	case serverHasSession:
		return "HasSession"
	case serverFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Server captures a chosen Group for repeated use and enforces the
// server-side handshake's state machine. The zero value is not usable;
// construct one with NewServer.
//
// A Server is not safe for concurrent use by multiple goroutines.
type Server struct {
	group     *groupHandle
	state     serverState
	ephemeral ServerEphemeral
	session   ServerSession
}

// NewServer constructs a Server bound to group. Passing the zero Group
// value uses the 2048-bit default.
func NewServer(group Group) (*Server, error) {
	g, err := group.resolve()
	if err != nil {
		return nil, err
	}
	return &Server{group: &groupHandle{g}, state: serverInit}, nil
}

// GenerateEphemeral generates (b, B) from a stored verifier v. Must be
// the first call on a fresh Server.
func (s *Server) GenerateEphemeral(vHex string) (ServerEphemeral, error) {
	if s.state != serverInit {
		return ServerEphemeral{}, fmt.Errorf("%w: GenerateEphemeral called in state %s", ErrProtocolState, s.state)
	}
	eph, err := generateServerEphemeral(s.group.g, vHex)
	if err != nil {
		return ServerEphemeral{}, err
	}
	s.ephemeral = eph
	s.state = serverHasEphemeral
	return eph, nil
}

// DeriveSession verifies the client's proof M1 and, on success, derives
// (K, M2). Must follow GenerateEphemeral.
func (s *Server) DeriveSession(aHex, saltHex, username, vHex, m1Hex string) (ServerSession, error) {
	if s.state != serverHasEphemeral {
		return ServerSession{}, fmt.Errorf("%w: DeriveSession called in state %s", ErrProtocolState, s.state)
	}
	session, err := deriveServerSession(s.group.g, s.ephemeral.Secret, aHex, saltHex, username, vHex, m1Hex)
	if err != nil {
		s.state = serverFailed
		return ServerSession{}, err
	}
	s.session = session
	s.state = serverHasSession
	return session, nil
}

// Ephemeral returns the (b, B) pair generated by GenerateEphemeral.
func (s *Server) Ephemeral() ServerEphemeral {
	return s.ephemeral
}

// Session returns the (K, M2) pair derived by DeriveSession.
func (s *Server) Session() ServerSession {
	return s.session
}

// Clear drops this Server's references to its sensitive fields (b, K).
// See Client.Clear for why this is best-effort rather than a memory
// guarantee.
func (s *Server) Clear() {
	s.ephemeral = ServerEphemeral{}
	s.session = ServerSession{}
}
