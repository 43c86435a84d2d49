package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/exec-search/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON artifact against a schema",
	Long: fmt.Sprintf(`Validate a JSON file against an embedded schema (%s)
or a schema file on disk.`, strings.Join(schemas.Names(), ", ")),
	RunE: runValidate,
}

var (
	validateSchema string
	validateIn     string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Embedded schema name or schema file path (required)")
	validateCmd.Flags().StringVarP(&validateIn, "in", "i", "", "JSON file to validate (required)")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := schemas.ValidateFile(validateSchema, validateIn); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid against %s\n", validateIn, validateSchema)
	return nil
}
