// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		runes := []rune(line)
		if len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequirements outputs the analyzed role and client requirements.
func (p *Printer) PrintRequirements(state *types.SearchState) {
	if state == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query:    %s\n", state.Query))
	sb.WriteString(fmt.Sprintf("Role:     %s (%s)\n", state.RoleTitle, state.RoleCategory))

	if len(state.ClientRequirements) > 0 {
		sb.WriteString("\nRequirements:\n")
		keys := make([]string, 0, len(state.ClientRequirements))
		for key := range state.ClientRequirements {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", key, state.ClientRequirements[key]))
		}
	}

	p.printBox("SEARCH REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction summarizes how a sourcing response was recovered
func (p *Printer) PrintExtraction(extraction *parsing.ProfileExtraction) {
	if extraction == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Strategy:  %s\n", extraction.Strategy))
	sb.WriteString(fmt.Sprintf("Recovered: %d\n", extraction.Count(parsing.RecordRecovered)))
	sb.WriteString(fmt.Sprintf("Defaulted: %d\n", extraction.Count(parsing.RecordDefaulted)))
	sb.WriteString(fmt.Sprintf("Dropped:   %d", extraction.Count(parsing.RecordDropped)))

	shown := 0
	for _, outcome := range extraction.Outcomes {
		if outcome.Status != parsing.RecordDropped || shown == maxItemsToShow {
			continue
		}
		if shown == 0 {
			sb.WriteString("\n\nDropped records:\n")
		}
		sb.WriteString(fmt.Sprintf("  #%d %v\n", outcome.Index, outcome.Err))
		shown++
	}

	p.printBox("SOURCING EXTRACTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidatePool outputs the first candidates of the sourced pool.
func (p *Printer) PrintCandidatePool(pool []types.Candidate) {
	if len(pool) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates: %d\n\n", len(pool)))

	count := min(len(pool), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := pool[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, c.Name))
		if c.Profile != nil && len(c.Profile.Experience) > 0 {
			latest := c.Profile.Experience[0]
			sb.WriteString(fmt.Sprintf("    %s, %s\n", latest.Title, latest.Company))
		}
	}

	if len(pool) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(pool)-maxItemsToShow))
	}

	p.printBox("CANDIDATE POOL", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVettingResults outputs scores and recommendations of vetted candidates.
func (p *Printer) PrintVettingResults(vetted []types.Candidate) {
	if len(vetted) == 0 {
		return
	}

	var sb strings.Builder
	for i, c := range vetted {
		sb.WriteString(fmt.Sprintf("%s: %s\n", c.Name, c.FinalFit))
		sb.WriteString(fmt.Sprintf("    Auditor %d / Domain %d / Matchmaker %d\n",
			c.AuditorScore, c.DomainScore, c.MatchmakerScore))
		if c.VettingIncomplete {
			sb.WriteString("    (placeholder: vetting incomplete)\n")
		} else if len(c.RedFlags) > 0 {
			sb.WriteString(fmt.Sprintf("    Red flags: %d\n", len(c.RedFlags)))
		}
		if i < len(vetted)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VETTING RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}
