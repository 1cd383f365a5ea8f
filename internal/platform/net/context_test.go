package net_test

import (
	"context"
	"testing"
	"time"

	pnet "trainerbot/internal/platform/net"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	base := context.Background()
	if pnet.WithRequestID(base, "") != base {
		t.Fatalf("empty id should leave ctx unchanged")
	}
	if got := pnet.RequestID(pnet.WithRequestID(base, "req-9")); got != "req-9" {
		t.Fatalf("RequestID = %q", got)
	}
	if got := pnet.RequestID(base); got != "" {
		t.Fatalf("RequestID on bare ctx = %q", got)
	}
}

func TestPrincipal(t *testing.T) {
	t.Parallel()

	if _, ok := pnet.PrincipalFrom(context.Background()); ok {
		t.Fatalf("bare ctx should carry no principal")
	}

	in := pnet.Principal{UserID: 42, Username: "ann", QueryID: "AAF", AuthDate: time.Unix(1_700_000_000, 0)}
	got, ok := pnet.PrincipalFrom(pnet.WithPrincipal(context.Background(), in))
	if !ok || got != in {
		t.Fatalf("PrincipalFrom = %+v %v", got, ok)
	}
}
