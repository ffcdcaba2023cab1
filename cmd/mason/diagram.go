// Package main provides the entry point for the mason CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/masonhq/mason/internal/diagram"
	"github.com/masonhq/mason/internal/output"
)

// newDiagramCmd creates the diagram command with its subcommands.
func newDiagramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Generate, validate, and render mermaid diagrams",
	}
	cmd.AddCommand(newDiagramGenerateCmd("flowchart", diagram.TypeFlowchart,
		"Generate flowchart source from a spec file"))
	cmd.AddCommand(newDiagramGenerateCmd("sequence", diagram.TypeSequence,
		"Generate sequence diagram source from a spec file"))
	cmd.AddCommand(newDiagramGenerateCmd("class", diagram.TypeClass,
		"Generate class diagram source from a spec file"))
	cmd.AddCommand(newDiagramValidateCmd())
	cmd.AddCommand(newDiagramRenderCmd())
	return cmd
}

// loadSpec reads and parses a diagram spec file, forcing the given type.
func loadSpec(path string, typ diagram.Type) (*diagram.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, output.NewUserError(fmt.Sprintf("reading spec file: %v", err))
	}

	var spec diagram.Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, output.NewUserError(fmt.Sprintf("parsing spec file: %v", err))
	}
	spec.Type = typ
	return &spec, nil
}

// newDiagramGenerateCmd creates one generation subcommand for a diagram type.
func newDiagramGenerateCmd(name string, typ diagram.Type, short string) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   name + " <spec.yaml>",
		Short: short,
		Long: short + `.

The spec file is YAML describing the diagram structure. For example, a
flowchart spec:

  nodes:
    - id: a
      label: Start
    - id: b
  edges:
    - from: a
      to: b
      label: next

Without --out the generated source is printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

			spec, err := loadSpec(args[0], typ)
			if err != nil {
				printer.Error(err)
				return err
			}

			source, err := diagram.Generate(spec)
			if err != nil {
				userErr := output.NewUserError(err.Error())
				printer.Error(userErr)
				return userErr
			}

			if outFlag != "" {
				if err := os.MkdirAll(filepath.Dir(outFlag), 0o755); err != nil {
					sysErr := output.NewSystemErrorWithCause("creating output directory", err)
					printer.Error(sysErr)
					return sysErr
				}
				if err := os.WriteFile(outFlag, []byte(source), 0o644); err != nil {
					sysErr := output.NewSystemErrorWithCause("writing diagram source", err)
					printer.Error(sysErr)
					return sysErr
				}
				return printer.Success(map[string]any{
					"message": "Wrote " + outFlag,
					"path":    outFlag,
				})
			}

			if printer.IsJSON() {
				return printer.Success(map[string]any{"source": source})
			}
			printer.Print("%s", source)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Write source to file instead of stdout")
	return cmd
}

// newDiagramValidateCmd creates the diagram validate command.
func newDiagramValidateCmd() *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "validate <source.mmd>",
		Short: "Validate mermaid source against the supported grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

			data, err := os.ReadFile(args[0])
			if err != nil {
				userErr := output.NewUserError(fmt.Sprintf("reading source file: %v", err))
				printer.Error(userErr)
				return userErr
			}

			violations := diagram.Validate(string(data), diagram.Type(typeFlag))

			if printer.IsJSON() {
				messages := make([]string, 0, len(violations))
				for _, v := range violations {
					messages = append(messages, v.String())
				}
				if err := printer.Success(map[string]any{
					"valid":      len(violations) == 0,
					"violations": messages,
				}); err != nil {
					return err
				}
			} else if len(violations) == 0 {
				printer.Success(map[string]any{"message": "Valid"})
			} else {
				for _, v := range violations {
					printer.Println(v.String())
				}
			}

			if len(violations) > 0 {
				return output.NewUserError(fmt.Sprintf("%d violation(s) found", len(violations)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&typeFlag, "type", "flowchart", "Diagram type: flowchart, sequence, class, state")
	return cmd
}

// newDiagramRenderCmd creates the diagram render command.
func newDiagramRenderCmd() *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "render <source.mmd>",
		Short: "Render mermaid source to an image via the configured compiler",
		Long: `Render mermaid source to an image file.

The compiler binary, timeout, output directory, and format come from
configuration (renderer.binary, renderer.timeout_seconds, renderer.output_dir,
renderer.format). Without --out, the image lands in the output directory
under a generated name.

Examples:
  mason diagram render arch.mmd
  mason diagram render arch.mmd --out docs/arch.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

			settings, err := loadSettings(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				userErr := output.NewUserError(fmt.Sprintf("reading source file: %v", err))
				printer.Error(userErr)
				return userErr
			}

			renderer := diagram.NewRenderer(settings.Renderer, newLogger(cmd))
			path, err := renderer.Render(cmd.Context(), string(data), outFlag)
			if err != nil {
				sysErr := output.NewSystemErrorWithCause("rendering diagram", err)
				printer.Error(sysErr)
				return sysErr
			}

			return printer.Success(map[string]any{
				"message": "Rendered " + path,
				"path":    path,
			})
		},
	}
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output image path")
	return cmd
}
