package model

// Stage is the lead's position in the sales funnel.
type Stage string

const (
	StageNew       Stage = "new"
	StageContacted Stage = "contacted"
	StagePitched   Stage = "pitched"
	StageClosed    Stage = "closed"
)

// stageRank orders stages along the funnel. Closed is terminal.
var stageRank = map[Stage]int{
	StageNew:       0,
	StageContacted: 1,
	StagePitched:   2,
	StageClosed:    3,
}

// ValidStage reports whether s is one of the known funnel stages.
func ValidStage(s Stage) bool {
	_, ok := stageRank[s]
	return ok
}

// CanTransition reports whether moving from one stage to another is allowed.
// Transitions are monotonic along new → contacted → pitched → closed, with
// one exception: any stage may jump directly to closed. A closed lead never
// moves again.
func CanTransition(from, to Stage) bool {
	if !ValidStage(from) || !ValidStage(to) {
		return false
	}
	if from == StageClosed {
		return false
	}
	if to == StageClosed {
		return true
	}
	return stageRank[to] > stageRank[from]
}
