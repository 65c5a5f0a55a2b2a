// Package mailcheck implements a best-effort check that an email address
// belongs to a domain that can plausibly receive mail, by looking up the
// domain's MX records. It proves the domain can receive mail, not that the
// address exists.
package mailcheck

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/voiceviz/voiceviz-server/internal/common"
)

// Resolver is the subset of net.Resolver used by the checker.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// Checker performs MX lookups with a bounded timeout.
type Checker struct {
	resolver Resolver
	timeout  time.Duration
}

// NewChecker builds a Checker using the default system resolver.
func NewChecker(timeout time.Duration) *Checker {
	return &Checker{resolver: net.DefaultResolver, timeout: timeout}
}

// NewCheckerWithResolver builds a Checker with a custom resolver.
func NewCheckerWithResolver(r Resolver, timeout time.Duration) *Checker {
	return &Checker{resolver: r, timeout: timeout}
}

// HasMailExchange reports whether the domain of the given email address has
// at least one MX record.
//
// A missing "@" or an empty domain is a malformed address and returns
// common.ErrorValidation before any DNS work. Any resolution failure
// (NXDOMAIN, timeout, network error) yields false with a nil error: a single
// attempt, no retries, failure treated as a negative result.
func (c *Checker) HasMailExchange(ctx context.Context, email string) (bool, error) {
	at := strings.Index(email, "@")
	if at < 0 {
		return false, common.ErrorValidation
	}

	domain := email[at+1:]
	if domain == "" {
		return false, common.ErrorValidation
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	records, err := c.resolver.LookupMX(ctx, domain)
	if err != nil {
		return false, nil
	}

	return len(records) > 0, nil
}
