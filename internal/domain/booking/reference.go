package booking

import (
	"context"
	"crypto/rand"
	"io"
	"strconv"
	"strings"

	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/errs"
)

const (
	referencePrefix       = "BK"
	referenceSuffixLen    = 4
	referenceAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultMaxRefAttempts = 10
)

var ErrReferenceExhausted = errs.New("could not generate a unique booking reference")

// ReferenceExists reports whether a reference is already taken.
type ReferenceExists func(ctx context.Context, reference string) (bool, error)

type ReferenceGenerator struct {
	clock       clock.Clock
	random      io.Reader
	maxAttempts int
}

type ReferenceOption func(*ReferenceGenerator)

func WithRandomSource(r io.Reader) ReferenceOption {
	return func(g *ReferenceGenerator) { g.random = r }
}

func WithMaxAttempts(n int) ReferenceOption {
	return func(g *ReferenceGenerator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func NewReferenceGenerator(clk clock.Clock, opts ...ReferenceOption) *ReferenceGenerator {
	g := &ReferenceGenerator{
		clock:       clk,
		random:      rand.Reader,
		maxAttempts: DefaultMaxRefAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate yields BK-<base36 millis>-<4 random chars>, retrying on collision.
func (g *ReferenceGenerator) Generate(ctx context.Context, exists ReferenceExists) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		ref, err := g.candidate()
		if err != nil {
			return "", errs.Wrap(err, "generate reference suffix")
		}
		taken, err := exists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !taken {
			return ref, nil
		}
	}
	return "", ErrReferenceExhausted
}

func (g *ReferenceGenerator) candidate() (string, error) {
	millis := g.clock.Now().UnixMilli()
	timePart := strings.ToUpper(strconv.FormatInt(millis, 36))

	buf := make([]byte, referenceSuffixLen)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", err
	}
	suffix := make([]byte, referenceSuffixLen)
	for i, b := range buf {
		suffix[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return referencePrefix + "-" + timePart + "-" + string(suffix), nil
}
