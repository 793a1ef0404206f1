package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestInit_Idempotent(t *testing.T) {
	Init()
	Init()
}

func TestGradeOutcomes_Gather(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(GradeOutcomes)

	GradeOutcomes.Reset()
	GradeOutcomes.WithLabelValues("spell", "correct").Inc()
	GradeOutcomes.WithLabelValues("spell", "correct").Inc()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) != 1 || mfs[0].GetName() != "wordwhiz_grade_total" {
		t.Fatalf("unexpected families: %v", mfs)
	}
	if got := mfs[0].GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Errorf("counter = %v, want 2", got)
	}
}
