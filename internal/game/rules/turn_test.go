package rules

import "testing"

func TestTurnManagerSequence(t *testing.T) {
	tm := NewTurnManager()
	if tm.TurnNumber() != 0 {
		t.Fatalf("expected turn 0 before reset, got %d", tm.TurnNumber())
	}

	tm.Reset()
	if tm.TurnNumber() != 1 {
		t.Fatalf("expected turn 1 after reset, got %d", tm.TurnNumber())
	}
	if tm.CurrentStep() != StepMain {
		t.Fatalf("expected opening turn to start in main, got %s", tm.CurrentStep())
	}

	tm.BeginTurn()
	expected := []Step{StepUntap, StepUpkeep, StepDraw, StepMain, StepCombat, StepEnd}
	for i, exp := range expected {
		if tm.CurrentStep() != exp {
			t.Fatalf("step %d: expected %s, got %s", i, exp, tm.CurrentStep())
		}
		if i < len(expected)-1 {
			tm.AdvanceStep()
		}
	}
	if tm.TurnNumber() != 2 {
		t.Fatalf("expected turn 2, got %d", tm.TurnNumber())
	}
}

func TestTurnManagerEndStepIsSticky(t *testing.T) {
	tm := NewTurnManager()
	tm.Reset()
	tm.EnterStep(StepEnd)
	if step := tm.AdvanceStep(); step != StepEnd {
		t.Fatalf("expected to stay in end step, got %s", step)
	}
	if tm.TurnNumber() != 1 {
		t.Fatalf("advancing must not start a new turn, got %d", tm.TurnNumber())
	}
}

func TestTurnManagerEnterStep(t *testing.T) {
	tm := NewTurnManager()
	tm.Reset()
	if !tm.EnterStep(StepCombat) {
		t.Fatal("expected to enter combat from main")
	}
	if tm.EnterStep(StepUpkeep) {
		t.Fatal("moving backwards should be rejected")
	}
	if tm.CurrentStep() != StepCombat {
		t.Fatalf("expected combat, got %s", tm.CurrentStep())
	}
}

func TestStepString(t *testing.T) {
	if StepDraw.String() != "DRAW" {
		t.Fatalf("unexpected name %s", StepDraw)
	}
	if Step(42).String() != "STEP_42" {
		t.Fatalf("unexpected fallback name %s", Step(42))
	}
}
