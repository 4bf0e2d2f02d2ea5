package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskman/internal/cli/styles"
)

// Global output-mode flags, registered on the root command
var (
	jsonOutput bool
	quietMode  bool
)

// RegisterGlobalFlags binds the output-mode flags to the root command so
// every subcommand inherits them
func RegisterGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVar(&quietMode, "quiet", false, "Minimal output (ids only)")
}

// OutputFormatter handles three output modes: JSON, quiet, and
// human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

func newFormatter() *OutputFormatter {
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// SuccessID outputs the result of a mutating operation. In quiet mode
// only the id is printed, for bash capture.
func (f *OutputFormatter) SuccessID(id int64, data any, human string) error {
	if f.Quiet {
		fmt.Printf("%d\n", id)
		return nil
	}
	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}
	fmt.Println(styles.SuccessStyle.Render("✓") + " " + human)
	return nil
}

// JSONData outputs data in JSON mode and reports whether it did, so
// callers can fall through to their human rendering
func (f *OutputFormatter) JSONData(data any) (bool, error) {
	if !f.JSON {
		return false, nil
	}
	return true, json.NewEncoder(os.Stdout).Encode(map[string]any{
		"success": true,
		"data":    data,
	})
}

// Error outputs error information on stderr (or as JSON on stdout)
func (f *OutputFormatter) Error(code string, message string) {
	if f.JSON {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error": map[string]any{
				"code":    code,
				"message": message,
			},
		})
		return
	}
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("error:")+" "+message)
}
