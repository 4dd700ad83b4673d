package attendance

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// ===== interfaces =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type IDGen interface {
	New() (string, error)
}

// ulidGen shares one monotonic entropy source so ids issued within the
// same millisecond still sort and never repeat.
type ulidGen struct {
	entropy *ulid.LockedMonotonicReader
}

func newULIDGen() ulidGen {
	return ulidGen{entropy: &ulid.LockedMonotonicReader{MonotonicReader: ulid.Monotonic(rand.Reader, 0)}}
}

func (g ulidGen) New() (string, error) {
	t := time.Now().UTC()
	id, err := ulid.New(ulid.Timestamp(t), g.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ===== helpers =====

func today(c Clock) string {
	return c.Now().UTC().Format(DateLayout)
}

// normalizeDateString expands "today" to the current UTC date; anything
// else is kept as typed.
func normalizeDateString(v string, c Clock) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "today") {
		return today(c)
	}
	return v
}
