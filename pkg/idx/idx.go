// Package idx issues ULID identifiers. The API client stamps one on every
// outbound call (X-Request-ID) so a request, its replay and its log lines can
// be tied together.
package idx

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

// Zero is the empty ID. It never comes out of a Generator.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

// Generator produces monotonically increasing IDs. It is safe for concurrent
// use; the monotonic entropy source itself is not, hence the mutex.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewGenerator builds a Generator reading randomness from r.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{entropy: ulid.Monotonic(r, 0)}
}

// Next returns an ID stamped with the current UTC time.
func (g *Generator) Next() ID {
	return g.At(time.Now().UTC())
}

// At returns an ID stamped with t.
func (g *Generator) At(t time.Time) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t), g.entropy).String())
}

var defaultGenerator = sync.OnceValue(func() *Generator {
	return NewGenerator(rand.Reader)
})

// New returns an ID from the process-wide generator.
func New() ID {
	return defaultGenerator().Next()
}

// NewAt returns an ID from the process-wide generator stamped with t.
func NewAt(t time.Time) ID {
	return defaultGenerator().At(t)
}

// Parse validates s as a ULID. Surrounding whitespace is ignored, which
// matters when the value comes back from a header.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

func (id ID) IsZero() bool   { return id == Zero }
func (id ID) String() string { return string(id) }

// Time extracts the embedded timestamp, or the zero time for invalid IDs.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(id.String())
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
