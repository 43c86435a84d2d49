// Package agents defines the contract with the external sourcing and vetting
// capability and the executors that fulfil it.
package agents

import (
	"context"
	"encoding/json"

	"github.com/jonathan/exec-search/internal/types"
)

// Stage names the capability an executor call belongs to
type Stage string

const (
	StageSourcing Stage = "sourcing"
	StageVetting  Stage = "vetting"
)

// SourcingTask asks the capability for a pool of candidate profiles
type SourcingTask struct {
	Query        string
	RoleTitle    string
	Requirements map[string]string
	Count        int
}

// VettingTask asks the capability to score one candidate
type VettingTask struct {
	CandidateID  string
	Name         string
	Resume       string
	Profile      *types.CandidateProfile
	RoleTitle    string
	Category     types.RoleCategory
	Requirements map[string]string
}

// Executor runs sourcing and vetting tasks and returns the raw response text.
// Responses are untrusted; callers recover structure with the parsing package.
type Executor interface {
	Source(ctx context.Context, task SourcingTask) (string, error)
	Vet(ctx context.Context, task VettingTask) (string, error)
}

// RequirementsJSON renders requirements as a JSON object with sorted keys
func RequirementsJSON(requirements map[string]string) string {
	if len(requirements) == 0 {
		return "{}"
	}
	data, err := json.MarshalIndent(requirements, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
