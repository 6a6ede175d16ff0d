package main

import (
	"errors"
	"fmt"
	"os"

	"cv-renderer/internal/domain"

	"github.com/spf13/cobra"
)

var (
	renderInput string
	renderOut   string
	renderHTML  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a JSON fixture offline",
	Long:  "Renders a {cv, profile, template} fixture to PDF and/or HTML without a database or upload.",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "Path to fixture JSON (required)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Path to write the PDF")
	renderCmd.Flags().StringVar(&renderHTML, "html", "", "Path to write the compiled HTML")
	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if renderOut == "" && renderHTML == "" {
		return errors.New("nothing to do: set --out and/or --html")
	}
	ctx := cmd.Context()

	fx, err := domain.LoadFixture(renderInput)
	if err != nil {
		return err
	}

	a, err := buildApp(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	if renderHTML != "" {
		html, source, err := a.processor.BuildHTML(ctx, fx.CV, fx.Profile, fx.Template)
		if err != nil {
			return err
		}
		if err := os.WriteFile(renderHTML, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to write html: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (template: %s)\n", renderHTML, source)
	}

	if renderOut != "" {
		art, err := a.processor.RenderCV(ctx, fx.CV, fx.Profile, fx.Template)
		if err != nil {
			return err
		}
		if err := os.WriteFile(renderOut, art.PDF, 0o644); err != nil {
			return fmt.Errorf("failed to write pdf: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pages, template: %s)\n", renderOut, art.PageCount, art.TemplateSource)
	}
	return nil
}
