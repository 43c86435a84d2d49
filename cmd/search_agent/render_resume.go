package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/exec-search/internal/parsing"
	"github.com/jonathan/exec-search/internal/synthetic"
)

var renderResumeCmd = &cobra.Command{
	Use:   "render-resume",
	Short: "Render candidate profiles as plain-text resumes",
	Long: `Render profiles from a JSON file (or any text the parser can recover profiles from)
into the plain-text resume layout consumed by vetting.`,
	RunE: runRenderResume,
}

var (
	renderIn    string
	renderIndex int
	renderOut   string
)

func init() {
	renderResumeCmd.Flags().StringVarP(&renderIn, "in", "i", "", "Profiles file, or - for stdin (required)")
	renderResumeCmd.Flags().IntVar(&renderIndex, "index", -1, "Render only the profile at this index")
	renderResumeCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output text file (defaults to stdout)")
	_ = renderResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(renderResumeCmd)
}

func runRenderResume(cmd *cobra.Command, _ []string) error {
	_, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd, renderIn)
	if err != nil {
		return err
	}

	extraction := parsing.NewParser(parsing.WithLogger(logger)).ParseProfiles(string(raw))
	profiles := extraction.Profiles
	if len(profiles) == 0 {
		return fmt.Errorf("no profiles found in %s", renderIn)
	}
	if renderIndex >= 0 {
		if renderIndex >= len(profiles) {
			return fmt.Errorf("index %d out of range: %d profiles", renderIndex, len(profiles))
		}
		profiles = profiles[renderIndex : renderIndex+1]
	}

	resumes := make([]string, 0, len(profiles))
	for i := range profiles {
		resumes = append(resumes, synthetic.RenderResumeText(&profiles[i]))
	}
	return writeOutput(cmd, renderOut, []byte(strings.Join(resumes, "\n\n")+"\n"))
}
