package srp

import (
	"errors"
	"fmt"

	"github.com/srp6a/srp/internal/bigint"
	"github.com/srp6a/srp/internal/params"
)

// Sentinel errors for the protocol's failure kinds, plus one
// Go-API-misuse error that is not part of the protocol itself.
var (
	// ErrInvalidHex is returned when a caller-supplied hex string fails
	// to parse.
	ErrInvalidHex = errors.New("srp: invalid hex string")

	// ErrInvalidGroup is returned by GroupFromValue for an unsupported
	// bit size.
	ErrInvalidGroup = errors.New("srp: invalid group")

	// ErrInvalidPeerEphemeral is returned when a peer's ephemeral public
	// value is zero modulo N (A mod N == 0 on the server, B mod N == 0
	// on the client).
	ErrInvalidPeerEphemeral = errors.New("srp: invalid peer ephemeral value")

	// ErrInvalidClientProof is returned by the server when the client's
	// M1 does not match the server's own recomputation.
	ErrInvalidClientProof = errors.New("srp: invalid client proof")

	// ErrInvalidServerProof is returned by the client when the server's
	// M2 does not match the client's own recomputation.
	ErrInvalidServerProof = errors.New("srp: invalid server proof")

	// ErrProtocolState is returned by the object (Client/Server) API
	// when a method is called out of the handshake's expected order. It
	// never occurs when using the stateless function API.
	ErrProtocolState = errors.New("srp: operation called out of order")
)

// wrapHex normalizes a bigint.ErrInvalidHex into the package's public
// ErrInvalidHex while preserving the original error for errors.Is/As.
func wrapHex(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bigint.ErrInvalidHex) || errors.Is(err, bigint.ErrUnsizedHex) {
		return fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return err
}

// wrapGroup normalizes a params.ErrInvalidGroup into the package's
// public ErrInvalidGroup.
func wrapGroup(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, params.ErrInvalidGroup) {
		return fmt.Errorf("%w: %v", ErrInvalidGroup, err)
	}
	return err
}
