package srp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fullHandshake drives a complete registration + authentication exchange
// through the stateless function API for the given group, username and
// password, and returns both sides' session values for assertions.
func fullHandshake(t *testing.T, group Group, username, password string) (clientSess ClientSession, serverSess ServerSession, clientEph ClientEphemeral) {
	t.Helper()

	salt := GenerateSalt()
	x, err := DerivePrivateKey(salt, username, password)
	require.NoError(t, err)
	v, err := DeriveVerifierWithGroup(x, group)
	require.NoError(t, err)

	clientEph, err = GenerateClientEphemeralWithGroup(group)
	require.NoError(t, err)

	serverEph, err := GenerateServerEphemeralWithGroup(v, group)
	require.NoError(t, err)

	clientSess, err = DeriveClientSessionWithGroup(clientEph.Secret, serverEph.Public, salt, username, x, group)
	require.NoError(t, err)

	serverSess, err = DeriveServerSessionWithGroup(serverEph.Secret, clientEph.Public, salt, username, v, clientSess.Proof, group)
	require.NoError(t, err)

	return clientSess, serverSess, clientEph
}

// Property 6: mutual agreement after an honest handshake.
func TestMutualAgreement(t *testing.T) {
	for _, g := range []Group{Group1024, Group1536, Group2048, Group3072, Group4096} {
		t.Run(g.String(), func(t *testing.T) {
			clientSess, serverSess, clientEph := fullHandshake(t, g, "alice", "password123")

			require.Equal(t, clientSess.Key, serverSess.Key, "client and server must derive the same K")

			err := VerifySession(clientEph.Public, clientSess, serverSess.Proof)
			require.NoError(t, err, "client must accept the server's M2")
		})
	}
}

// Property 7: verifier equivalence — recomputing v from the same
// (s, I, p) yields the same bytes.
func TestVerifierEquivalence(t *testing.T) {
	salt := GenerateSalt()
	x1, err := DerivePrivateKey(salt, "alice", "password123")
	require.NoError(t, err)
	x2, err := DerivePrivateKey(salt, "alice", "password123")
	require.NoError(t, err)
	require.Equal(t, x1, x2)

	v1, err := DeriveVerifier(x1)
	require.NoError(t, err)
	v2, err := DeriveVerifier(x2)
	require.NoError(t, err)
	require.Equal(t, v1, v2)
}

// Property 8 (server side): A == 0 or A == N is rejected with
// ErrInvalidPeerEphemeral.
func TestServerRejectsBadA(t *testing.T) {
	salt := GenerateSalt()
	x, err := DerivePrivateKey(salt, "alice", "password123")
	require.NoError(t, err)
	v, err := DeriveVerifier(x)
	require.NoError(t, err)

	serverEph, err := GenerateServerEphemeral(v)
	require.NoError(t, err)

	zero := strings.Repeat("0", 512)
	_, err = DeriveServerSession(serverEph.Secret, zero, salt, "alice", v, strings.Repeat("0", 64))
	require.ErrorIs(t, err, ErrInvalidPeerEphemeral)

	nHex := mustGroupNHex(t, Group2048)
	_, err = DeriveServerSession(serverEph.Secret, nHex, salt, "alice", v, strings.Repeat("0", 64))
	require.ErrorIs(t, err, ErrInvalidPeerEphemeral)
}

// Property 8 (client side): B == 0 or B == N is rejected with
// ErrInvalidPeerEphemeral.
func TestClientRejectsBadB(t *testing.T) {
	salt := GenerateSalt()
	x, err := DerivePrivateKey(salt, "alice", "password123")
	require.NoError(t, err)

	clientEph, err := GenerateClientEphemeral()
	require.NoError(t, err)

	zero := strings.Repeat("0", 512)
	_, err = DeriveClientSession(clientEph.Secret, zero, salt, "alice", x)
	require.ErrorIs(t, err, ErrInvalidPeerEphemeral)

	nHex := mustGroupNHex(t, Group2048)
	_, err = DeriveClientSession(clientEph.Secret, nHex, salt, "alice", x)
	require.ErrorIs(t, err, ErrInvalidPeerEphemeral)
}

// Property 9: using the wrong password makes the server reject the
// client's proof with overwhelming probability.
func TestWrongPasswordFailsClientProof(t *testing.T) {
	salt := GenerateSalt()
	x, err := DerivePrivateKey(salt, "alice", "password123")
	require.NoError(t, err)
	v, err := DeriveVerifier(x)
	require.NoError(t, err)

	clientEph, err := GenerateClientEphemeral()
	require.NoError(t, err)
	serverEph, err := GenerateServerEphemeral(v)
	require.NoError(t, err)

	wrongX, err := DerivePrivateKey(salt, "alice", "password124")
	require.NoError(t, err)

	clientSess, err := DeriveClientSession(clientEph.Secret, serverEph.Public, salt, "alice", wrongX)
	require.NoError(t, err)

	_, err = DeriveServerSession(serverEph.Secret, clientEph.Public, salt, "alice", v, clientSess.Proof)
	require.ErrorIs(t, err, ErrInvalidClientProof)
}

// Property 10: tampering with any bit of M2 makes VerifySession fail.
func TestTamperedServerProofFails(t *testing.T) {
	clientSess, serverSess, clientEph := fullHandshake(t, Group2048, "alice", "password123")

	tampered := flipLastHexNibble(t, serverSess.Proof)
	err := VerifySession(clientEph.Public, clientSess, tampered)
	require.ErrorIs(t, err, ErrInvalidServerProof)
}

// Scenario A: registration — x and v are deterministic for fixed
// (I, p, salt), and recomputing them yields the same bytes.
func TestScenarioARegistrationIsDeterministic(t *testing.T) {
	salt := strings.Repeat("0", 63) + "1"

	x, err := DerivePrivateKey(salt, "alice", "password123")
	require.NoError(t, err)
	v, err := DeriveVerifier(x)
	require.NoError(t, err)

	x2, err := DerivePrivateKey(salt, "alice", "password123")
	require.NoError(t, err)
	v2, err := DeriveVerifier(x2)
	require.NoError(t, err)

	require.Equal(t, x, x2)
	require.Equal(t, v, v2)
	require.Len(t, x, 64)
	require.Len(t, v, 512)
}

// Scenario B: a full handshake with fixed a, b, salt, I, p succeeds and
// both sides agree.
func TestScenarioBSuccessfulHandshake(t *testing.T) {
	salt := strings.Repeat("0", 63) + "1"
	username, password := "alice", "password123"

	x, err := DerivePrivateKey(salt, username, password)
	require.NoError(t, err)
	v, err := DeriveVerifier(x)
	require.NoError(t, err)

	clientEph, err := GenerateClientEphemeral()
	require.NoError(t, err)
	serverEph, err := GenerateServerEphemeral(v)
	require.NoError(t, err)

	clientSess, err := DeriveClientSession(clientEph.Secret, serverEph.Public, salt, username, x)
	require.NoError(t, err)
	serverSess, err := DeriveServerSession(serverEph.Secret, clientEph.Public, salt, username, v, clientSess.Proof)
	require.NoError(t, err)

	require.Equal(t, clientSess.Key, serverSess.Key)
	require.NoError(t, VerifySession(clientEph.Public, clientSess, serverSess.Proof))
}

// Scenario C: wrong password.
func TestScenarioCWrongPassword(t *testing.T) {
	TestWrongPasswordFailsClientProof(t)
}

// Scenario D: B = all zeros.
func TestScenarioDBadB(t *testing.T) {
	salt := GenerateSalt()
	x, err := DerivePrivateKey(salt, "alice", "password123")
	require.NoError(t, err)
	clientEph, err := GenerateClientEphemeral()
	require.NoError(t, err)

	zero := strings.Repeat("0", 512)
	_, err = DeriveClientSession(clientEph.Secret, zero, salt, "alice", x)
	require.ErrorIs(t, err, ErrInvalidPeerEphemeral)
}

// Scenario E: A = N.
func TestScenarioEBadA(t *testing.T) {
	salt := GenerateSalt()
	x, err := DerivePrivateKey(salt, "alice", "password123")
	require.NoError(t, err)
	v, err := DeriveVerifier(x)
	require.NoError(t, err)
	serverEph, err := GenerateServerEphemeral(v)
	require.NoError(t, err)

	nHex := mustGroupNHex(t, Group2048)
	_, err = DeriveServerSession(serverEph.Secret, nHex, salt, "alice", v, strings.Repeat("0", 64))
	require.ErrorIs(t, err, ErrInvalidPeerEphemeral)
}

// Scenario F: Scenario B across all five groups.
func TestScenarioFGroupSweep(t *testing.T) {
	for _, g := range []Group{Group1024, Group1536, Group2048, Group3072, Group4096} {
		t.Run(g.String(), func(t *testing.T) {
			clientSess, serverSess, clientEph := fullHandshake(t, g, "alice", "password123")
			require.Equal(t, clientSess.Key, serverSess.Key)
			require.NoError(t, VerifySession(clientEph.Public, clientSess, serverSess.Proof))
		})
	}
}

func TestInvalidHexIsRecoverableNotPanic(t *testing.T) {
	_, err := DerivePrivateKey("not-hex", "alice", "password123")
	require.ErrorIs(t, err, ErrInvalidHex)

	_, err = DeriveVerifier("zz")
	require.ErrorIs(t, err, ErrInvalidHex)
}

func TestGroupFromValue(t *testing.T) {
	g, err := GroupFromValue(2048)
	require.NoError(t, err)
	require.Equal(t, Group2048, g)

	_, err = GroupFromValue(512)
	require.ErrorIs(t, err, ErrInvalidGroup)
}

func flipLastHexNibble(t *testing.T, hexStr string) string {
	t.Helper()
	require.NotEmpty(t, hexStr)
	b := []byte(hexStr)
	last := b[len(b)-1]
	if last == '0' {
		b[len(b)-1] = '1'
	} else {
		b[len(b)-1] = '0'
	}
	return string(b)
}

func mustGroupNHex(t *testing.T, g Group) string {
	t.Helper()
	p, err := g.resolve()
	require.NoError(t, err)
	hex, err := p.N.ToHex()
	require.NoError(t, err)
	return hex
}
