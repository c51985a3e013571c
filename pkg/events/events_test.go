package events

import "testing"

func TestEmitAppendsInOrder(t *testing.T) {
	l := NewLog()
	l.Emit("step-1", PhaseMoveStart, "actor-1", nil)
	l.Emit("step-1", PhaseMoveEnd, "actor-1", nil)
	if len(l.Timeline) != 2 {
		t.Fatalf("expected 2 events, got %d", len(l.Timeline))
	}
	if len(l.Warnings) != 0 {
		t.Errorf("expected no warnings for correctly ordered phases, got %v", l.Warnings)
	}
}

func TestEmitWarnsOnRegression(t *testing.T) {
	l := NewLog()
	l.Emit("step-1", PhaseDamageApply, "actor-1", nil)
	l.Emit("step-1", PhaseMoveStart, "actor-1", nil)
	if len(l.Warnings) != 1 {
		t.Fatalf("expected exactly 1 warning for a phase regression, got %d", len(l.Warnings))
	}
}

func TestEmitDoesNotWarnAcrossSteps(t *testing.T) {
	l := NewLog()
	l.Emit("step-1", PhaseDamageApply, "actor-1", nil)
	l.Emit("step-2", PhaseMoveStart, "actor-2", nil)
	if len(l.Warnings) != 0 {
		t.Errorf("different step ids should not trigger a regression warning, got %v", l.Warnings)
	}
}

func TestTickIsOneIndexed(t *testing.T) {
	l := NewLog()
	if idx := l.Tick("Damage"); idx != 1 {
		t.Errorf("expected first tick index 1, got %d", idx)
	}
	if idx := l.Tick("Heal"); idx != 2 {
		t.Errorf("expected second tick index 2, got %d", idx)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := NewLog()
	l.Emit("s", PhaseIntentStart, "a", nil)
	c := l.Clone()
	c.Emit("s", PhaseIntentEnd, "a", nil)
	if len(l.Timeline) != 1 {
		t.Errorf("original log should be unaffected by mutating the clone, got %d events", len(l.Timeline))
	}
	if len(c.Timeline) != 2 {
		t.Errorf("clone should have both events, got %d", len(c.Timeline))
	}
}
