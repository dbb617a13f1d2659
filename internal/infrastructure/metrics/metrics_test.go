package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ApprovalObserved("approved")
	c.ApprovalObserved("approved")
	c.ApprovalObserved("unauthorized")
	c.ContractCreated()
	c.ModificationObserved("requested")
	c.ObserveHTTP("POST", "/contracts/:id/approve", "200", 15*time.Millisecond)

	if got := testutil.ToFloat64(c.approvals.WithLabelValues("approved")); got != 2 {
		t.Fatalf("approved = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.approvals.WithLabelValues("unauthorized")); got != 1 {
		t.Fatalf("unauthorized = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.contractsCreated); got != 1 {
		t.Fatalf("contracts = %v, want 1", got)
	}

	expected := `
# HELP contract_approval_modifications_total Modification requests by outcome.
# TYPE contract_approval_modifications_total counter
contract_approval_modifications_total{result="requested"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "contract_approval_modifications_total"); err != nil {
		t.Fatalf("modifications metric: %v", err)
	}
	if n := testutil.CollectAndCount(c.httpDuration); n != 1 {
		t.Fatalf("http duration series = %d, want 1", n)
	}
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	defer func() {
		if recover() == nil {
			t.Fatalf("registering the same collectors twice should panic")
		}
	}()
	New(reg)
}
