package util

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Rand is the subset of *rand.Rand the services draw from. Tests pass a
// seeded source to make picks and confidence scores reproducible.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a goroutine-safe Rand seeded with seed.
func NewRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

// DefaultRand returns a goroutine-safe Rand seeded from the current time.
func DefaultRand() Rand {
	return NewRand(time.Now().UnixNano())
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// GenerateRandomNumber generates a random number between min and max (inclusive)
func GenerateRandomNumber(r Rand, min, max int) int {
	return min + r.Intn(max-min+1)
}

// RandomFloat returns a float in [min, max).
func RandomFloat(r Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// RandomDuration returns base plus a uniform jitter in [0, jitter).
func RandomDuration(r Rand, base, jitter time.Duration) time.Duration {
	if jitter <= 0 {
		return base
	}
	return base + time.Duration(r.Float64()*float64(jitter))
}

const hexDigits = "0123456789abcdef"

// RandomHex returns n lower-case hex digits.
func RandomHex(r Rand, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(hexDigits[r.Intn(len(hexDigits))])
	}
	return b.String()
}
