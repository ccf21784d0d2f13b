// Package params supplies the five RFC 5054 safe-prime groups and the
// SHA-256-based hash functions the SRP-6a core hashes every protocol
// value with.
package params

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/srp6a/srp/internal/bigint"
)

//go:embed groups/1024.txt groups/1536.txt groups/2048.txt groups/3072.txt groups/4096.txt
var groupFiles embed.FS

// ErrInvalidGroup is returned by FromBits for an unsupported group size.
var ErrInvalidGroup = errors.New("params: unsupported group size")

// DefaultBits is the group used by every stateless package-level
// function that does not take an explicit group.
const DefaultBits = 2048

// Group holds one RFC 5054 safe-prime group and its SHA-256-derived
// constants. Derived constants (k, H(N), H(g), H(N) xor H(g)) are
// computed once per Group and cached; Group values are immutable after
// construction and safe for concurrent use.
type Group struct {
	Bits int
	N    bigint.Int
	G    bigint.Int

	once    sync.Once
	k       bigint.Int
	hN      bigint.Int
	hG      bigint.Int
	hNxorHG bigint.Int
}

var (
	groupsOnce sync.Once
	groups     map[int]*Group
	groupsErr  error
)

// load parses the embedded group files exactly once; every group's
// constants are then served from the in-memory map for the life of the
// process.
func load() {
	groups = make(map[int]*Group)
	for _, bits := range []int{1024, 1536, 2048, 3072, 4096} {
		g, err := parseGroupFile(bits)
		if err != nil {
			groupsErr = fmt.Errorf("params: loading %d-bit group: %w", bits, err)
			return
		}
		groups[bits] = g
	}
}

func parseGroupFile(bits int) (*Group, error) {
	data, err := groupFiles.ReadFile(fmt.Sprintf("groups/%d.txt", bits))
	if err != nil {
		return nil, err
	}
	var nHex, gHex string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "N="):
			nHex = strings.TrimPrefix(line, "N=")
		case strings.HasPrefix(line, "g="):
			gHex = strings.TrimPrefix(line, "g=")
		}
	}
	if nHex == "" || gHex == "" {
		return nil, fmt.Errorf("malformed group file for %d bits", bits)
	}

	n, err := bigint.FromHex(nHex)
	if err != nil {
		return nil, fmt.Errorf("parsing N: %w", err)
	}

	gVal, err := strconv.ParseUint(gHex, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parsing g: %w", err)
	}
	// The generator is a small integer (2 or 5); its hex width inherits
	// from N once it's fed through H or ModPow, so here it gets no width
	// of its own until it is combined with N-width context.
	g := bigint.FromBytes(bigIntBytes(gVal))

	return &Group{Bits: bits, N: n, G: g}, nil
}

func bigIntBytes(v uint64) []byte {
	if v == 0 {
		return []byte{0}
	}
	var b []byte
	for v > 0 {
		b = append([]byte{byte(v & 0xff)}, b...)
		v >>= 8
	}
	return b
}

// FromBits looks up the group for the given RFC 5054 bit size.
func FromBits(bits int) (*Group, error) {
	groupsOnce.Do(load)
	if groupsErr != nil {
		return nil, groupsErr
	}
	g, ok := groups[bits]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGroup, bits)
	}
	return g, nil
}

// Default returns the 2048-bit group, used by every stateless
// package-level operation that takes no explicit group argument.
func Default() *Group {
	g, err := FromBits(DefaultBits)
	if err != nil {
		// The embedded default group file is part of the binary; a
		// failure here means the build itself is broken.
		panic(err)
	}
	return g
}

// k, H(N), H(g) and H(N) xor H(g) are pure functions of (N, g); compute
// them lazily the first time any of them is requested.
func (g *Group) derive() {
	g.once.Do(func() {
		g.hN = hashValues(g.N)
		g.hG = hashValues(g.G)
		g.hNxorHG = g.hN.Xor(g.hG)
		g.k = hashValues(g.N, g.G)
	})
}

// K returns the multiplier parameter k = H(N, g), with g hashed in its
// own native width rather than padded out to N's width.
func (g *Group) K() bigint.Int {
	g.derive()
	return g.k
}

// HashN returns H(N).
func (g *Group) HashN() bigint.Int {
	g.derive()
	return g.hN
}

// HashG returns H(g).
func (g *Group) HashG() bigint.Int {
	g.derive()
	return g.hG
}

// HashNXorHashG returns H(N) xor H(g), the first component of M1.
func (g *Group) HashNXorHashG() bigint.Int {
	g.derive()
	return g.hNxorHG
}

// Hash concatenates each argument's big-endian bytes, padded on the left
// to its own declared hex width, and returns SHA-256 of the
// concatenation as a 64-hex-digit-wide Int. Two arguments with different
// widths are each hashed in their native width, not a shared canonical
// width — this is what lets both peers, who may arrive at the same
// integer value by different widths, agree on the same hash.
func Hash(args ...bigint.Int) bigint.Int {
	return hashValues(args...)
}

func hashValues(args ...bigint.Int) bigint.Int {
	h := sha256.New()
	for _, a := range args {
		hexStr, err := a.ToHex()
		if err != nil {
			// Every argument reaching a protocol hash site has already
			// been constructed with a width (from a parse, a random
			// draw, or a previous ModPow/Hash result).
			panic(fmt.Errorf("params: hashing unsized value: %w", err))
		}
		if len(hexStr)%2 == 1 {
			hexStr = "0" + hexStr
		}
		b, err := hex.DecodeString(hexStr)
		if err != nil {
			panic(fmt.Errorf("params: internal hex corruption: %w", err))
		}
		h.Write(b)
	}
	digest := h.Sum(nil)
	return bigint.FromBytes(digest)
}

// HashString returns SHA-256 of the raw UTF-8 bytes of s, same shape as
// Hash (64-hex-digit width).
func HashString(s string) bigint.Int {
	digest := sha256.Sum256([]byte(s))
	return bigint.FromBytes(digest[:])
}

