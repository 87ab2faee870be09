package rules

import "fmt"

// Step represents the individual steps the playtester walks through each turn.
type Step int

const (
	StepUntap Step = iota
	StepUpkeep
	StepDraw
	StepMain
	StepCombat
	StepEnd
)

var stepNames = map[Step]string{
	StepUntap:  "UNTAP",
	StepUpkeep: "UPKEEP",
	StepDraw:   "DRAW",
	StepMain:   "MAIN",
	StepCombat: "COMBAT",
	StepEnd:    "END",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

// turnSequence is the order steps are entered in a normal turn.
var turnSequence = []Step{
	StepUntap,
	StepUpkeep,
	StepDraw,
	StepMain,
	StepCombat,
	StepEnd,
}

// TurnManager tracks the turn number and the step in progress.
type TurnManager struct {
	turnNumber int
	orderIndex int
}

// NewTurnManager creates a manager before the first turn (turn 0).
func NewTurnManager() *TurnManager {
	return &TurnManager{}
}

// Reset starts the opening turn. Turn one begins in the main step because
// the opening hand replaces the draw.
func (tm *TurnManager) Reset() {
	tm.turnNumber = 1
	tm.orderIndex = indexOf(StepMain)
}

// BeginTurn increments the turn number and returns to the untap step.
func (tm *TurnManager) BeginTurn() {
	tm.turnNumber++
	tm.orderIndex = 0
}

// TurnNumber returns the current turn number.
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// CurrentStep returns the step currently in progress.
func (tm *TurnManager) CurrentStep() Step {
	return turnSequence[tm.orderIndex]
}

// AdvanceStep moves to the next step. The end step is sticky: the next turn
// only starts through BeginTurn.
func (tm *TurnManager) AdvanceStep() Step {
	if tm.orderIndex < len(turnSequence)-1 {
		tm.orderIndex++
	}
	return tm.CurrentStep()
}

// EnterStep jumps forward to step within the current turn. Moving backwards
// is ignored and reports false.
func (tm *TurnManager) EnterStep(step Step) bool {
	idx := indexOf(step)
	if idx < tm.orderIndex {
		return false
	}
	tm.orderIndex = idx
	return true
}

func indexOf(step Step) int {
	for i, s := range turnSequence {
		if s == step {
			return i
		}
	}
	return 0
}
