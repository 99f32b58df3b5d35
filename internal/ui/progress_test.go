package ui

import (
	"strings"
	"testing"
)

func TestProgress_Steps(t *testing.T) {
	p := NewProgress("Backing up", "Fetch stats", "Fetch settings", "Write file")

	p.StartStep(1)
	if p.Current != 1 || p.Percent != 0 {
		t.Errorf("after start: current %d percent %v", p.Current, p.Percent)
	}
	p.CompleteStep(1, "ok")
	p.FailStep(2, "timeout")
	if p.Percent < 0.33 || p.Percent > 0.34 {
		t.Errorf("percent after failure = %v, want 1/3", p.Percent)
	}
	p.SkipRemaining()

	if p.Steps[2].Status != StepSkipped {
		t.Errorf("step 3 status = %v, want skipped", p.Steps[2].Status)
	}
	if p.Percent < 0.66 || p.Percent > 0.67 {
		t.Errorf("percent = %v, want 2/3", p.Percent)
	}

	plain := p.Plain()
	want := "✓ Fetch stats (ok)\n✗ Fetch settings (timeout)\n⊘ Write file\n"
	if plain != want {
		t.Errorf("Plain() = %q, want %q", plain, want)
	}

	if !strings.Contains(p.Render(), "Fetch settings") {
		t.Error("Render() missing step name")
	}

	p.UpdateStep(9, StepComplete, "")
}
