// Package parsing recovers typed candidate profiles and vetting scores from
// unreliable model output.
//
// Profile batches go through fenced-block extraction, whole-text parsing,
// bracket scanning, truncation repair and finally a freeform split on the
// resume sentinel. Score records go through the fenced, whole-text and
// object-scan steps, then jsonrepair, then a regular-expression scrape. The
// parser never returns an error: results carry the strategy that succeeded
// and the degradation mode of every record.
package parsing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/exec-search/internal/logging"
	"github.com/jonathan/exec-search/internal/types"
)

// MaxFreeformRecords caps the records synthesized from freeform text
const MaxFreeformRecords = 5

// Observer receives extraction events, typically to feed metrics
type Observer interface {
	ObserveExtraction(shape Shape, strategy Strategy)
	ObserveRecord(shape Shape, status RecordStatus)
}

// Parser extracts records from raw model output
type Parser struct {
	logger   *slog.Logger
	observer Observer
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger used for diagnostic trace lines
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logging.Named(logger, "parser")
	}
}

// WithObserver registers an observer for extraction events
func WithObserver(observer Observer) Option {
	return func(p *Parser) {
		p.observer = observer
	}
}

// NewParser creates a parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: logging.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// ParseProfiles extracts a profile batch with a parser that logs nowhere
func ParseProfiles(raw string) ProfileExtraction {
	return defaultParser.ParseProfiles(raw)
}

// ParseVettingScore extracts a vetting score with a parser that logs nowhere
func ParseVettingScore(raw string) ScoreExtraction {
	return defaultParser.ParseVettingScore(raw)
}

// Extract recovers records of the given shape from raw text
func (p *Parser) Extract(raw string, shape Shape) Extraction {
	if shape == ShapeScore {
		score := p.ParseVettingScore(raw)
		return Extraction{Shape: shape, Score: &score}
	}
	profiles := p.ParseProfiles(raw)
	return Extraction{Shape: ShapeProfiles, Profiles: &profiles}
}

// ParseProfiles recovers a batch of candidate profiles from raw text
func (p *Parser) ParseProfiles(raw string) ProfileExtraction {
	records, strategy := p.extractRecords(raw)

	if strategy == StrategyNone {
		p.logger.Debug("no structured payload, falling back to freeform text", "chars", len(raw))
		extraction := p.freeformProfiles(raw)
		p.observeExtraction(ShapeProfiles, extraction)
		return extraction
	}

	p.logger.Debug("extracted records", "strategy", string(strategy), "records", len(records))

	extraction := ProfileExtraction{
		Strategy: strategy,
		Profiles: make([]types.CandidateProfile, 0, len(records)),
		Outcomes: make([]RecordOutcome, 0, len(records)),
	}
	for i, record := range records {
		profile, outcome := p.normalizeProfile(i, record)
		extraction.Outcomes = append(extraction.Outcomes, outcome)
		if outcome.Status == RecordDropped {
			p.logger.Debug("dropped record", "index", i, "error", outcome.Err)
			continue
		}
		p.logger.Debug("normalized record", "index", i, "name", profile.FullName, "defects", len(outcome.Defects))
		extraction.Profiles = append(extraction.Profiles, profile)
	}

	p.observeExtraction(ShapeProfiles, extraction)
	return extraction
}

// normalizeProfile isolates one record so a failure cannot abort the batch
func (p *Parser) normalizeProfile(index int, record any) (profile types.CandidateProfile, outcome RecordOutcome) {
	outcome = RecordOutcome{Index: index}
	defer func() {
		if r := recover(); r != nil {
			outcome.Status = RecordDropped
			outcome.Err = &RecordError{Index: index, Message: fmt.Sprintf("panic during normalization: %v", r)}
		}
	}()

	object, ok := record.(map[string]any)
	if !ok {
		outcome.Status = RecordDropped
		outcome.Err = &RecordError{Index: index, Message: fmt.Sprintf("record is %T, not an object", record)}
		return profile, outcome
	}

	normalized, defects := NormalizeProfileRecord(object)
	outcome.Defects = defects

	profile, err := profileFromRecord(normalized)
	if err != nil {
		outcome.Status = RecordDropped
		outcome.Err = &RecordError{Index: index, Message: "normalization failed", Cause: err}
		return profile, outcome
	}

	if len(defects) > 0 {
		outcome.Status = RecordDefaulted
	} else {
		outcome.Status = RecordRecovered
	}
	return profile, outcome
}

// freeformProfiles splits text on the resume sentinel and synthesizes minimal profiles
func (p *Parser) freeformProfiles(raw string) ProfileExtraction {
	extraction := ProfileExtraction{Strategy: StrategyNone}
	if !strings.Contains(raw, types.ResumeSentinel) {
		return extraction
	}

	segments := strings.Split(raw, types.ResumeSentinel)[1:]
	if len(segments) > MaxFreeformRecords {
		p.logger.Debug("capping freeform segments", "found", len(segments), "cap", MaxFreeformRecords)
		segments = segments[:MaxFreeformRecords]
	}

	extraction.Strategy = StrategyFreeform
	for i, segment := range segments {
		body := strings.TrimSpace(segment)
		name := strings.TrimSpace(strings.SplitN(body, "\n", 2)[0])
		if name == "" {
			name = fmt.Sprintf("Candidate %d", i+1)
		}

		extraction.Profiles = append(extraction.Profiles, types.CandidateProfile{
			ID:         uuid.NewString()[:8],
			FullName:   name,
			ResumeText: body,
		})
		extraction.Outcomes = append(extraction.Outcomes, RecordOutcome{
			Index:   i,
			Status:  RecordDefaulted,
			Defects: []string{"synthesized from freeform text"},
		})
	}
	return extraction
}

// ParseVettingScore recovers one vetting score and enforces recommendation consistency
func (p *Parser) ParseVettingScore(raw string) (extraction ScoreExtraction) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("score normalization panicked, scraping text", "panic", fmt.Sprint(r))
			score, defects := scrapeScore(raw)
			extraction = p.finishScore(StrategyFreeform, score, append(defects, "normalization panicked"))
		}
	}()

	object, strategy := p.extractObject(raw)
	if strategy == StrategyNone {
		p.logger.Debug("no score object recovered, scraping text", "chars", len(raw))
		score, defects := scrapeScore(raw)
		return p.finishScore(StrategyFreeform, score, defects)
	}

	score, defects := NormalizeScoreRecord(object)
	return p.finishScore(strategy, score, defects)
}

func (p *Parser) finishScore(strategy Strategy, score types.VettingScore, defects []string) ScoreExtraction {
	upstream := score.FinalRecommendation
	score = EnforceRecommendation(score)

	status := RecordRecovered
	if len(defects) > 0 {
		status = RecordDefaulted
	}

	p.logger.Debug("vetting score parsed",
		"strategy", string(strategy),
		"upstream", string(upstream),
		"final", string(score.FinalRecommendation),
		"mean", score.MeanScore())

	extraction := ScoreExtraction{
		Strategy: strategy,
		Score:    score,
		Upstream: upstream,
		Status:   status,
		Defects:  defects,
	}
	if p.observer != nil {
		p.observer.ObserveExtraction(ShapeScore, strategy)
		p.observer.ObserveRecord(ShapeScore, status)
	}
	return extraction
}

func (p *Parser) observeExtraction(shape Shape, extraction ProfileExtraction) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveExtraction(shape, extraction.Strategy)
	for _, outcome := range extraction.Outcomes {
		p.observer.ObserveRecord(shape, outcome.Status)
	}
}
