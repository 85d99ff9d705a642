package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCreditDebit(t *testing.T) {
	before := testutil.ToFloat64(Diamonds.WithLabelValues("credit", "streak"))
	Credit("streak", 20)
	Credit("streak", 0)
	if got := testutil.ToFloat64(Diamonds.WithLabelValues("credit", "streak")); got != before+20 {
		t.Errorf("credit counter = %v, want %v", got, before+20)
	}

	before = testutil.ToFloat64(Diamonds.WithLabelValues("debit", "bypass"))
	Debit("bypass", 20)
	if got := testutil.ToFloat64(Diamonds.WithLabelValues("debit", "bypass")); got != before+20 {
		t.Errorf("debit counter = %v, want %v", got, before+20)
	}
}

func TestRegistryGathers(t *testing.T) {
	ObserveLLM("roadmap", true, 0)
	families, err := Registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "khalari_llm_requests_total" {
			found = true
		}
	}
	if !found {
		t.Error("llm_requests_total not registered")
	}
}
