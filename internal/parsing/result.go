package parsing

import "github.com/jonathan/exec-search/internal/types"

// Shape selects the record shape the parser recovers
type Shape string

// Shape constants
const (
	// ShapeProfiles is a batch of candidate profiles
	ShapeProfiles Shape = "profiles"
	// ShapeScore is a single vetting score record
	ShapeScore Shape = "score"
)

// Strategy names the extraction step that produced the payload
type Strategy string

// Strategy constants, in priority order
const (
	StrategyFenced   Strategy = "fenced"
	StrategyWhole    Strategy = "whole"
	StrategyBracket  Strategy = "bracket"
	StrategyRepaired Strategy = "repaired"
	StrategyFreeform Strategy = "freeform"
	// StrategyNone means nothing could be recovered
	StrategyNone Strategy = "none"
)

// RecordStatus is the degradation mode of a single record
type RecordStatus string

// RecordStatus constants
const (
	// RecordRecovered means the record needed no defaults or renames
	RecordRecovered RecordStatus = "recovered"
	// RecordDefaulted means the record was kept after defaults or renames were applied
	RecordDefaulted RecordStatus = "defaulted"
	// RecordDropped means the record could not be turned into the target type
	RecordDropped RecordStatus = "dropped"
)

// RecordOutcome describes what happened to one record of a batch
type RecordOutcome struct {
	Index   int
	Status  RecordStatus
	Defects []string
	Err     error
}

// ProfileExtraction is the result of parsing a profile batch
type ProfileExtraction struct {
	Strategy Strategy
	Profiles []types.CandidateProfile
	Outcomes []RecordOutcome
}

// Count returns the number of records with the given status
func (e ProfileExtraction) Count(status RecordStatus) int {
	n := 0
	for _, o := range e.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// ScoreExtraction is the result of parsing a vetting score
type ScoreExtraction struct {
	Strategy Strategy
	Score    types.VettingScore
	// Upstream is the recommendation the text claimed, after label validation
	Upstream types.Recommendation
	Status   RecordStatus
	Defects  []string
}

// Extraction is the shape-agnostic result of Extract
type Extraction struct {
	Shape    Shape
	Profiles *ProfileExtraction
	Score    *ScoreExtraction
}

// Strategy returns the strategy that produced the payload
func (e Extraction) Strategy() Strategy {
	switch {
	case e.Profiles != nil:
		return e.Profiles.Strategy
	case e.Score != nil:
		return e.Score.Strategy
	default:
		return StrategyNone
	}
}
