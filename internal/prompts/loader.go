// Package prompts holds the embedded model prompts and the per-role vetting rubrics.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/exec-search/internal/types"
)

//go:embed *.json
var promptFiles embed.FS

// File names an embedded prompt file
type File string

// Embedded prompt files
const (
	RubricsFile  File = "rubrics.json"
	VettingFile  File = "vetting.json"
	SourcingFile File = "sourcing.json"
)

// Key names one prompt inside a file
type Key string

// Prompt keys
const (
	VetCandidateKey    Key = "vet-candidate"
	SourceCandidateKey Key = "source-candidates"
)

// keywordsSuffix turns a rubric key into the key of its comma-separated keyword list
const keywordsSuffix = "-keywords"

var (
	loadOnce sync.Once
	library  map[File]map[Key]string
	errLoad  error
)

// load parses every embedded file once
func load() (map[File]map[Key]string, error) {
	loadOnce.Do(func() {
		entries, err := promptFiles.ReadDir(".")
		if err != nil {
			errLoad = fmt.Errorf("failed to list prompt files: %w", err)
			return
		}
		lib := make(map[File]map[Key]string, len(entries))
		for _, entry := range entries {
			data, err := promptFiles.ReadFile(entry.Name())
			if err != nil {
				errLoad = fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
				return
			}
			var prompts map[Key]string
			if err := json.Unmarshal(data, &prompts); err != nil {
				errLoad = fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
				return
			}
			lib[File(entry.Name())] = prompts
		}
		library = lib
	})
	return library, errLoad
}

// Get returns the prompt stored under key in file
func Get(file File, key Key) (string, error) {
	lib, err := load()
	if err != nil {
		return "", err
	}
	prompts, ok := lib[file]
	if !ok {
		return "", fmt.Errorf("prompt file %s is not embedded", file)
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, file)
	}
	return prompt, nil
}

// Rubric returns the vetting rubric text for a role category.
// Unknown categories get the general executive rubric.
func Rubric(category types.RoleCategory) (string, error) {
	return rubricEntry(category, "")
}

// RubricKeywords returns the competency keywords a resume is checked against for a role category
func RubricKeywords(category types.RoleCategory) ([]string, error) {
	raw, err := rubricEntry(category, keywordsSuffix)
	if err != nil {
		return nil, err
	}

	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords, nil
}

func rubricEntry(category types.RoleCategory, suffix string) (string, error) {
	if entry, err := Get(RubricsFile, Key(string(category)+suffix)); err == nil {
		return entry, nil
	}
	return Get(RubricsFile, Key(string(types.RoleGeneralExecutive)+suffix))
}

// Format fills {{.Name}} placeholders from data in a single pass, so values
// are never rescanned. Placeholders without data are left as they are.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
