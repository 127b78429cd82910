package app

import (
	"testing"

	jjzdoctor "github.com/jjzio/jjz/pkg/doctor"
)

func TestDoctorResultWithoutFix(t *testing.T) {
	checks := []jjzdoctor.DoctorCheck{
		{Name: "fix-login", Status: jjzdoctor.StatusPass, Detail: "ok"},
		{Name: "old-spike", Status: jjzdoctor.StatusFail, Detail: "directory missing", Kind: jjzdoctor.KindRecordOrphan, AutoFixable: true},
	}

	res := doctorResult(checks, nil)

	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(res.Rows))
	}
	payload, ok := res.JSON.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", res.JSON)
	}
	if _, hasFix := payload["fix"]; hasFix {
		t.Fatalf("expected no fix key when fixRes is nil, got %+v", payload)
	}
}

func TestDoctorResultWithFix(t *testing.T) {
	checks := []jjzdoctor.DoctorCheck{
		{Name: "old-spike", Status: jjzdoctor.StatusFail, Kind: jjzdoctor.KindRecordOrphan, AutoFixable: true},
	}
	fixRes := jjzdoctor.FixResult{Fixed: []string{"old-spike"}}

	res := doctorResult(checks, &fixRes)

	payload, ok := res.JSON.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", res.JSON)
	}
	got, ok := payload["fix"].(*jjzdoctor.FixResult)
	if !ok || len(got.Fixed) != 1 {
		t.Fatalf("unexpected fix payload: %+v", payload["fix"])
	}
}
