package parsing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/exec-search/internal/types"
)

// Placeholders backfilled into profile records
const (
	DefaultSummary     = "No summary available"
	UnknownRole        = "Unknown Role"
	UnknownCompany     = "Unknown Company"
	UnknownDate        = "Unknown"
	DefaultDescription = "No description provided"
)

// NormalizeProfileRecord reconciles field-naming drift in one loosely typed
// profile record. The input is not modified; the returned record is safe to
// normalize again and yields no further defects.
func NormalizeProfileRecord(record map[string]any) (map[string]any, []string) {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}
	var defects []string

	if name, ok := out["name"]; ok {
		if _, has := out["full_name"]; !has {
			out["full_name"] = name
			delete(out, "name")
			defects = append(defects, "name renamed to full_name")
		}
	}

	switch id := out["id"].(type) {
	case string:
		if strings.TrimSpace(id) == "" {
			out["id"] = uuid.NewString()
			defects = append(defects, "blank id synthesized")
		}
	case json.Number:
		out["id"] = id.String()
		defects = append(defects, "numeric id coerced to string")
	case float64:
		out["id"] = strconv.FormatFloat(id, 'f', -1, 64)
		defects = append(defects, "numeric id coerced to string")
	case nil:
		out["id"] = uuid.NewString()
		defects = append(defects, "id synthesized")
	}

	if _, ok := out["summary"]; !ok {
		if bio, has := out["bio"]; has {
			out["summary"] = stringify(bio)
			defects = append(defects, "summary taken from bio")
		} else {
			out["summary"] = DefaultSummary
			defects = append(defects, "summary defaulted")
		}
	}

	if skills, ok := out["skills"].(string); ok {
		out["skills"] = splitList(skills)
		defects = append(defects, "skills split from string")
	}

	switch education := out["education"].(type) {
	case string:
		out["education"] = []any{education}
		defects = append(defects, "education wrapped in list")
	case nil:
		out["education"] = []any{}
		defects = append(defects, "education defaulted")
	}

	if experience, ok := out["experience"]; ok {
		entries, entryDefects := normalizeExperienceList(experience)
		out["experience"] = entries
		defects = append(defects, entryDefects...)
	}

	return out, defects
}

func normalizeExperienceList(value any) (any, []string) {
	var defects []string
	var entries []any

	switch v := value.(type) {
	case map[string]any:
		entries = []any{v}
		defects = append(defects, "experience object wrapped in list")
	case string:
		entries = []any{map[string]any{"description": v}}
		defects = append(defects, "experience string wrapped as description")
	case []any:
		entries = v
	default:
		return value, nil
	}

	normalized := make([]any, 0, len(entries))
	for i, entry := range entries {
		switch e := entry.(type) {
		case map[string]any:
			fixed, entryDefects := normalizeExperience(e)
			normalized = append(normalized, fixed)
			for _, d := range entryDefects {
				defects = append(defects, fmt.Sprintf("experience[%d]: %s", i, d))
			}
		case string:
			fixed, entryDefects := normalizeExperience(map[string]any{"description": e})
			normalized = append(normalized, fixed)
			defects = append(defects, fmt.Sprintf("experience[%d]: string wrapped as description", i))
			for _, d := range entryDefects {
				defects = append(defects, fmt.Sprintf("experience[%d]: %s", i, d))
			}
		default:
			normalized = append(normalized, entry)
		}
	}
	return normalized, defects
}

func normalizeExperience(entry map[string]any) (map[string]any, []string) {
	out := make(map[string]any, len(entry))
	for k, v := range entry {
		out[k] = v
	}
	var defects []string

	if role, ok := out["role"]; ok {
		if _, has := out["title"]; !has {
			out["title"] = role
			delete(out, "role")
			defects = append(defects, "role renamed to title")
		}
	}

	if duration, ok := out["duration"]; ok {
		_, hasStart := out["start_date"]
		_, hasEnd := out["end_date"]
		if !hasStart || !hasEnd {
			delete(out, "duration")
			start, end := splitDuration(stringify(duration))
			if !hasStart {
				out["start_date"] = start
			}
			if !hasEnd {
				out["end_date"] = end
			}
			defects = append(defects, "duration split into dates")
		}
	}

	for _, backfill := range []struct {
		key   string
		value string
	}{
		{key: "title", value: UnknownRole},
		{key: "company", value: UnknownCompany},
		{key: "start_date", value: UnknownDate},
		{key: "end_date", value: UnknownDate},
	} {
		if isBlank(out[backfill.key]) {
			out[backfill.key] = backfill.value
			defects = append(defects, backfill.key+" backfilled")
		}
	}

	if _, ok := out["description"]; !ok {
		if achievements, isList := out["achievements"].([]any); isList {
			parts := make([]string, 0, len(achievements))
			for _, a := range achievements {
				parts = append(parts, stringify(a))
			}
			out["description"] = strings.Join(parts, "; ")
			defects = append(defects, "description derived from achievements")
		} else {
			out["description"] = DefaultDescription
			defects = append(defects, "description defaulted")
		}
	}

	if _, ok := out["key_achievements"]; !ok {
		if achievements, has := out["achievements"]; has {
			out["key_achievements"] = achievements
			delete(out, "achievements")
			defects = append(defects, "achievements renamed to key_achievements")
		} else {
			out["key_achievements"] = []any{}
			defects = append(defects, "key_achievements defaulted")
		}
	}

	return out, defects
}

// splitDuration splits "start - end" into its dates. A spaced hyphen is
// preferred so ISO dates survive; otherwise the first two hyphen-separated
// parts are used. Without a hyphen the whole value is the start and the stint
// is taken as ongoing.
func splitDuration(duration string) (string, string) {
	if parts := strings.SplitN(duration, " - ", 2); len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	if parts := strings.Split(duration, "-"); len(parts) >= 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return duration, types.PresentEndDate
}

// profileFromRecord converts a normalized record into the typed profile and validates it
func profileFromRecord(record map[string]any) (types.CandidateProfile, error) {
	var profile types.CandidateProfile

	data, err := json.Marshal(record)
	if err != nil {
		return profile, &ParseError{Message: "failed to re-encode record", Cause: err}
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return profile, &ParseError{Message: "record does not match the profile shape", Cause: err}
	}
	if strings.TrimSpace(profile.FullName) == "" {
		return profile, &ValidationError{Field: "full_name", Message: "no candidate name could be recovered"}
	}
	if err := profile.Validate(); err != nil {
		return profile, &ValidationError{Message: err.Error()}
	}
	return profile, nil
}

// isBlank reports whether an experience field is absent, null or only whitespace
func isBlank(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(s) == ""
	default:
		return false
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

func splitList(s string) []any {
	parts := strings.Split(s, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
