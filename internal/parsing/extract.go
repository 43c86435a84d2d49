package parsing

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
)

var (
	// fencedJSONPattern matches a ```json fenced block, tolerant of case and padding
	fencedJSONPattern = regexp.MustCompile("(?is)```\\s*json\\s*(.*?)\\s*```")
	// arrayOfObjectsPattern is greedy: from the first "[{" to the last "}]"
	arrayOfObjectsPattern = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)
	arrayStartPattern     = regexp.MustCompile(`\[\s*\{`)
	objectPattern         = regexp.MustCompile(`(?s)\{.*\}`)
	// objectCloseBoundary marks cut points for truncation repair: "}" before a separator or end of input
	objectCloseBoundary = regexp.MustCompile(`\}\s*(?:,|$)`)
)

// scoreRecordKeys are the wire keys of a vetting score; a scanned or repaired object
// must carry at least one of them to be accepted as a score record
var scoreRecordKeys = []string{
	"auditor_score", "auditor_notes",
	"domain_score", "domain_notes",
	"matchmaker_score", "matchmaker_notes",
	"red_flags", "final_recommendation",
}

// decodeJSON decodes raw into v keeping numbers as json.Number
func decodeJSON(raw string, v any) error {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	return decoder.Decode(v)
}

// recordsFromJSON decodes text as a record collection. An array is used as is; an
// object contributes its first array-valued member in document order. An empty
// collection counts as no records.
func recordsFromJSON(text string) ([]any, bool) {
	text = strings.TrimSpace(text)
	if text == "" || !gjson.Valid(text) {
		return nil, false
	}

	result := gjson.Parse(text)
	var raw string
	switch {
	case result.IsArray():
		raw = result.Raw
	case result.IsObject():
		result.ForEach(func(_, value gjson.Result) bool {
			if value.IsArray() {
				raw = value.Raw
				return false
			}
			return true
		})
	}
	if raw == "" {
		return nil, false
	}

	var records []any
	if err := decodeJSON(raw, &records); err != nil {
		return nil, false
	}
	return records, len(records) > 0
}

// objectFromJSON decodes text as a non-empty JSON object
func objectFromJSON(text string) (map[string]any, bool) {
	text = strings.TrimSpace(text)
	if text == "" || !gjson.Valid(text) || !gjson.Parse(text).IsObject() {
		return nil, false
	}

	var object map[string]any
	if err := decodeJSON(text, &object); err != nil {
		return nil, false
	}
	return object, len(object) > 0
}

// repairTruncatedArray closes a cut-off array of objects at the last object
// boundary that still yields a valid array, scanning boundaries from the end
func repairTruncatedArray(candidate string) ([]any, int, bool) {
	boundaries := objectCloseBoundary.FindAllStringIndex(candidate, -1)
	for i := len(boundaries) - 1; i >= 0; i-- {
		repaired := candidate[:boundaries[i][0]+1] + "]"
		if !gjson.Valid(repaired) || !gjson.Parse(repaired).IsArray() {
			continue
		}
		var records []any
		if err := decodeJSON(repaired, &records); err != nil || len(records) == 0 {
			continue
		}
		return records, len(boundaries) - i, true
	}
	return nil, len(boundaries), false
}

// extractRecords runs the profile-batch strategies in priority order
func (p *Parser) extractRecords(raw string) ([]any, Strategy) {
	if match := fencedJSONPattern.FindStringSubmatch(raw); match != nil {
		if records, ok := recordsFromJSON(match[1]); ok {
			return records, StrategyFenced
		}
		p.logger.Debug("fenced block did not yield records", "chars", len(match[1]))
	} else {
		p.logger.Debug("no fenced json block found")
	}

	if records, ok := recordsFromJSON(raw); ok {
		return records, StrategyWhole
	}

	candidate := arrayOfObjectsPattern.FindString(raw)
	if candidate != "" {
		if records, ok := recordsFromJSON(candidate); ok {
			return records, StrategyBracket
		}
		p.logger.Debug("bracket candidate failed to parse, attempting repair", "chars", len(candidate))
	} else if loc := arrayStartPattern.FindStringIndex(raw); loc != nil {
		// No closing bracket at all: generation was cut off, repair from the array start
		candidate = strings.TrimSpace(raw[loc[0]:])
		p.logger.Debug("unterminated array found, attempting repair", "chars", len(candidate))
	}

	if candidate != "" {
		records, tried, ok := repairTruncatedArray(candidate)
		if ok {
			p.logger.Debug("repaired truncated array", "records", len(records), "cut_points_tried", tried)
			return records, StrategyRepaired
		}
		p.logger.Debug("all repair attempts failed", "cut_points", tried)
	}

	return nil, StrategyNone
}

// extractObject runs the score-record strategies in priority order
func (p *Parser) extractObject(raw string) (map[string]any, Strategy) {
	if match := fencedJSONPattern.FindStringSubmatch(raw); match != nil {
		if object, ok := objectFromJSON(match[1]); ok {
			return object, StrategyFenced
		}
		p.logger.Debug("fenced block did not yield an object", "chars", len(match[1]))
	}

	if object, ok := objectFromJSON(raw); ok {
		return object, StrategyWhole
	}

	candidate := objectPattern.FindString(raw)
	if candidate != "" {
		if object, ok := objectFromJSON(candidate); ok && hasScoreKey(object) {
			return object, StrategyBracket
		}
	} else if i := strings.Index(raw, "{"); i >= 0 {
		candidate = raw[i:]
	}

	if candidate != "" {
		repaired, err := jsonrepair.JSONRepair(candidate)
		if err != nil {
			p.logger.Debug("object repair failed", "error", err)
			return nil, StrategyNone
		}
		if object, ok := objectFromJSON(repaired); ok && hasScoreKey(object) {
			return object, StrategyRepaired
		}
	}

	return nil, StrategyNone
}

func hasScoreKey(object map[string]any) bool {
	for _, key := range scoreRecordKeys {
		if _, ok := object[key]; ok {
			return true
		}
	}
	return false
}
