package srp

import (
	"fmt"

	"github.com/srp6a/srp/internal/params"
)

// Group names one of the five RFC 5054 safe-prime groups. The zero value
// is not a valid group; use GroupFromValue or one of the Group1024...
// constants.
type Group int

// The five RFC 5054 groups this library supports.
const (
	Group1024 Group = 1024
	Group1536 Group = 1536
	Group2048 Group = 2048
	Group3072 Group = 3072
	Group4096 Group = 4096
)

// GroupFromValue validates a bit-size tag against the supported RFC 5054
// groups, returning ErrInvalidGroup for anything else.
func GroupFromValue(bits int) (Group, error) {
	if _, err := params.FromBits(bits); err != nil {
		return 0, wrapGroup(err)
	}
	return Group(bits), nil
}

// resolve looks up the internal group parameters for g, defaulting to
// the 2048-bit group when g is the zero value (so a Client{} or
// Server{} constructed without NewClient/NewServer still behaves like
// the stateless, default-group function API).
func (g Group) resolve() (*params.Group, error) {
	if g == 0 {
		return params.Default(), nil
	}
	p, err := params.FromBits(int(g))
	if err != nil {
		return nil, wrapGroup(err)
	}
	return p, nil
}

func (g Group) String() string {
	if g == 0 {
		return fmt.Sprintf("%d (default)", Group2048)
	}
	return fmt.Sprintf("%d", int(g))
}
