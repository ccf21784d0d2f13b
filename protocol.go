package srp

import (
	"crypto/subtle"
	"fmt"

	"github.com/srp6a/srp/internal/bigint"
	"github.com/srp6a/srp/internal/params"
)

// randomSaltBytes is the salt size used by generateSalt.
const randomSaltBytes = 32

// ephemeralBytes is the entropy size for ephemeral secrets a and b: 32
// bytes (256 bits) regardless of the group's modulus size.
const ephemeralBytes = 32

func generateSalt() string {
	salt, err := bigint.RandomInteger(randomSaltBytes)
	if err != nil {
		// crypto/rand failing is not a recoverable protocol error; the
		// process' entropy source is broken.
		panic(fmt.Errorf("srp: generating salt: %w", err))
	}
	return salt.MustHex()
}

func derivePrivateKey(saltHex, username, password string) (string, error) {
	salt, err := bigint.FromHex(saltHex)
	if err != nil {
		return "", wrapHex(err)
	}
	inner := params.HashString(username + ":" + password)
	x := params.Hash(salt, inner)
	return x.MustHex(), nil
}

func deriveVerifier(g *params.Group, xHex string) (string, error) {
	x, err := bigint.FromHex(xHex)
	if err != nil {
		return "", wrapHex(err)
	}
	v := g.G.ModPow(x, g.N)
	return v.MustHex(), nil
}

func generateClientEphemeral(g *params.Group) (ClientEphemeral, error) {
	a, err := bigint.RandomInteger(ephemeralBytes)
	if err != nil {
		return ClientEphemeral{}, fmt.Errorf("srp: generating client ephemeral: %w", err)
	}
	A := g.G.ModPow(a, g.N)
	return ClientEphemeral{Secret: a.MustHex(), Public: A.MustHex()}, nil
}

// deriveClientSession computes the client's session key and proof.
// aOverrideHex lets a caller substitute its own A for the one derived
// from a; pass "" when the caller has not supplied one.
func deriveClientSession(g *params.Group, aHex, bHex, saltHex, username, xHex, aOverrideHex string) (ClientSession, error) {
	a, err := bigint.FromHex(aHex)
	if err != nil {
		return ClientSession{}, wrapHex(err)
	}
	B, err := bigint.FromHex(bHex)
	if err != nil {
		return ClientSession{}, wrapHex(err)
	}
	salt, err := bigint.FromHex(saltHex)
	if err != nil {
		return ClientSession{}, wrapHex(err)
	}
	x, err := bigint.FromHex(xHex)
	if err != nil {
		return ClientSession{}, wrapHex(err)
	}

	var A bigint.Int
	if aOverrideHex != "" {
		A, err = bigint.FromHex(aOverrideHex)
		if err != nil {
			return ClientSession{}, wrapHex(err)
		}
	} else {
		A = g.G.ModPow(a, g.N)
	}

	if B.Mod(g.N).IsZero() {
		return ClientSession{}, fmt.Errorf("%w: B mod N == 0", ErrInvalidPeerEphemeral)
	}

	u := params.Hash(A, B)

	gx := g.G.ModPow(x, g.N)
	kgx := g.K().Multiply(gx)
	base := B.Subtract(kgx).Mod(g.N)
	exponent := a.Add(u.Multiply(x))
	S := base.ModPow(exponent, g.N)

	K := params.Hash(S)
	M1 := params.Hash(g.HashNXorHashG(), params.HashString(username), salt, A, B, K)

	return ClientSession{Key: K.MustHex(), Proof: M1.MustHex()}, nil
}

// verifyClientSession checks the server's proof M2.
func verifyClientSession(aHex string, session ClientSession, m2Hex string) error {
	A, err := bigint.FromHex(aHex)
	if err != nil {
		return wrapHex(err)
	}
	K, err := bigint.FromHex(session.Key)
	if err != nil {
		return wrapHex(err)
	}
	M1, err := bigint.FromHex(session.Proof)
	if err != nil {
		return wrapHex(err)
	}
	M2, err := bigint.FromHex(m2Hex)
	if err != nil {
		return wrapHex(err)
	}

	expected := params.Hash(A, M1, K)
	if !constantTimeEqual(expected, M2) {
		return ErrInvalidServerProof
	}
	return nil
}

func generateServerEphemeral(g *params.Group, vHex string) (ServerEphemeral, error) {
	v, err := bigint.FromHex(vHex)
	if err != nil {
		return ServerEphemeral{}, wrapHex(err)
	}
	b, err := bigint.RandomInteger(ephemeralBytes)
	if err != nil {
		return ServerEphemeral{}, fmt.Errorf("srp: generating server ephemeral: %w", err)
	}
	B := computeB(g, b, v)
	return ServerEphemeral{Secret: b.MustHex(), Public: B.MustHex()}, nil
}

func computeB(g *params.Group, b, v bigint.Int) bigint.Int {
	kv := g.K().Multiply(v)
	gb := g.G.ModPow(b, g.N)
	return kv.Add(gb).Mod(g.N)
}

// deriveServerSession verifies the client's proof M1 and, on success,
// computes the server's session key and proof.
func deriveServerSession(g *params.Group, bHex, aHex, saltHex, username, vHex, m1Hex string) (ServerSession, error) {
	b, err := bigint.FromHex(bHex)
	if err != nil {
		return ServerSession{}, wrapHex(err)
	}
	A, err := bigint.FromHex(aHex)
	if err != nil {
		return ServerSession{}, wrapHex(err)
	}
	salt, err := bigint.FromHex(saltHex)
	if err != nil {
		return ServerSession{}, wrapHex(err)
	}
	v, err := bigint.FromHex(vHex)
	if err != nil {
		return ServerSession{}, wrapHex(err)
	}
	M1, err := bigint.FromHex(m1Hex)
	if err != nil {
		return ServerSession{}, wrapHex(err)
	}

	if A.Mod(g.N).IsZero() {
		return ServerSession{}, fmt.Errorf("%w: A mod N == 0", ErrInvalidPeerEphemeral)
	}

	B := computeB(g, b, v)
	u := params.Hash(A, B)

	base := A.Multiply(v.ModPow(u, g.N))
	S := base.ModPow(b, g.N)

	K := params.Hash(S)
	expectedM1 := params.Hash(g.HashNXorHashG(), params.HashString(username), salt, A, B, K)
	if !constantTimeEqual(expectedM1, M1) {
		return ServerSession{}, ErrInvalidClientProof
	}

	M2 := params.Hash(A, M1, K)
	return ServerSession{Key: K.MustHex(), Proof: M2.MustHex()}, nil
}

// constantTimeEqual compares two hashed values (always 64 hex digits
// wide) in time independent of where they first differ, so a proof
// mismatch can't be timed to recover which nibble was wrong.
func constantTimeEqual(a, b bigint.Int) bool {
	ah, errA := a.ToHex()
	bh, errB := b.ToHex()
	if errA != nil || errB != nil || len(ah) != len(bh) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(ah), []byte(bh)) == 1
}
