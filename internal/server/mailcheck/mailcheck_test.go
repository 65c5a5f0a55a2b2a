package mailcheck

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/voiceviz/voiceviz-server/internal/common"
)

type fakeResolver struct {
	records []*net.MX
	err     error
	delay   time.Duration
}

func (f *fakeResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.records, f.err
}

func TestHasMailExchange_RecordsFound(t *testing.T) {
	t.Parallel()

	c := NewCheckerWithResolver(&fakeResolver{
		records: []*net.MX{{Host: "mx1.example.com.", Pref: 10}},
	}, time.Second)

	ok, err := c.HasMailExchange(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("HasMailExchange error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true when MX records resolve")
	}
}

func TestHasMailExchange_NoRecords(t *testing.T) {
	t.Parallel()

	c := NewCheckerWithResolver(&fakeResolver{records: nil}, time.Second)

	ok, err := c.HasMailExchange(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("HasMailExchange error: %v", err)
	}
	if ok {
		t.Fatalf("expected false when no MX records exist")
	}
}

func TestHasMailExchange_ResolutionFailureIsFalse(t *testing.T) {
	t.Parallel()

	c := NewCheckerWithResolver(&fakeResolver{err: errors.New("NXDOMAIN")}, time.Second)

	ok, err := c.HasMailExchange(context.Background(), "a@no-such-domain.invalid")
	if err != nil {
		t.Fatalf("resolution failure must not surface as an error, got %v", err)
	}
	if ok {
		t.Fatalf("expected false on resolution failure")
	}
}

func TestHasMailExchange_TimeoutIsFalse(t *testing.T) {
	t.Parallel()

	c := NewCheckerWithResolver(&fakeResolver{
		records: []*net.MX{{Host: "mx1.example.com.", Pref: 10}},
		delay:   200 * time.Millisecond,
	}, 10*time.Millisecond)

	start := time.Now()
	ok, err := c.HasMailExchange(context.Background(), "a@slow.example.com")
	if err != nil {
		t.Fatalf("timeout must not surface as an error, got %v", err)
	}
	if ok {
		t.Fatalf("expected false on lookup timeout")
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Fatalf("lookup was not bounded by the timeout, took %v", elapsed)
	}
}

func TestHasMailExchange_MissingAtSign(t *testing.T) {
	t.Parallel()

	c := NewCheckerWithResolver(&fakeResolver{}, time.Second)

	_, err := c.HasMailExchange(context.Background(), "not-an-email")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation for address without @, got %v", err)
	}
}

func TestHasMailExchange_EmptyDomain(t *testing.T) {
	t.Parallel()

	c := NewCheckerWithResolver(&fakeResolver{}, time.Second)

	_, err := c.HasMailExchange(context.Background(), "user@")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation for empty domain, got %v", err)
	}
}
