package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"contentai/internal/models"
)

var (
	generateFile   string
	generateOutput string
)

// generateCmd runs one request through the pipeline from the terminal.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate content from a JSON request",
	Long: `Reads a generation request from a JSON file (or stdin with --file -)
and prints the generated content plus a metadata summary.

The request shape matches the POST /api/v1/generate body:
  {"content_type": "article", "context": {...}, "specifications": {...}}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		req, err := readGenerateRequest(generateFile)
		if err != nil {
			return err
		}

		resp, err := appInstance.ContentService.Generate(cmd.Context(), "cli", req)
		if err != nil {
			color.Red("Generation failed: %v", err)
			return err
		}

		if generateOutput != "" {
			if err := os.WriteFile(generateOutput, []byte(resp.Content), 0o644); err != nil {
				return fmt.Errorf("write output file: %w", err)
			}
			color.Green("Content written to %s", generateOutput)
		} else {
			fmt.Println(resp.Content)
			fmt.Println()
		}

		printMetadata(resp.Metadata)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "JSON request file ('-' for stdin)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Write generated content to this file instead of stdout")
	generateCmd.MarkFlagRequired("file")
}

func readGenerateRequest(path string) (*models.GenerateRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	var req models.GenerateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse request JSON: %w", err)
	}
	return &req, nil
}

func printMetadata(meta *models.ContentMetadata) {
	if meta == nil {
		return
	}

	table := tablewriter.NewWriter(os.Stderr)
	table.SetHeader([]string{"Field", "Value"})
	table.SetBorder(false)

	table.Append([]string{"Model", meta.Model})
	if meta.TokensUsed != nil {
		table.Append([]string{"Tokens Used", strconv.Itoa(*meta.TokensUsed)})
	}
	table.Append([]string{"Word Count", strconv.Itoa(meta.WordCount)})
	table.Append([]string{"Read Time", meta.EstimatedReadTime})
	if len(meta.Sections) > 0 {
		table.Append([]string{"Sections", strings.Join(meta.Sections, ", ")})
	}
	if len(meta.SEOKeywords) > 0 {
		table.Append([]string{"SEO Keywords", strings.Join(meta.SEOKeywords, ", ")})
	}
	if len(meta.Hashtags) > 0 {
		table.Append([]string{"Hashtags", strings.Join(meta.Hashtags, ", ")})
	}
	table.Append([]string{"Word Count Valid", checkmark(meta.WordCountValid)})
	table.Append([]string{"Sections Complete", checkmark(meta.SectionsComplete)})
	table.Render()
}

func checkmark(ok bool) string {
	if ok {
		return color.GreenString("yes")
	}
	return color.YellowString("no")
}
