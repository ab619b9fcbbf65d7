package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bakito/example-gen/internal/example"
	"github.com/bakito/example-gen/internal/flags"
	"github.com/bakito/example-gen/internal/generate"
	"github.com/bakito/example-gen/internal/openapi"
	"github.com/bakito/example-gen/internal/render"
	"github.com/bakito/example-gen/internal/source"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	specPath    string
	crdPath     string
	gitURL      string
	gitRef      string
	operations  []string
	format      = flags.FormatJSON
	target      string
	version     string
	expandMixed bool
	debug       bool

	fs afero.Fs = afero.NewOsFs()
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "generate-example",
		Short:        "Generate example request and response bodies from OpenAPI documents or CRDs",
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&specPath, "spec", "s", "", "The OpenAPI document (path within the repository if --git-url is set)")
	rootCmd.Flags().StringVar(&crdPath, "crd", "", "A CRD file to generate an example resource for")
	rootCmd.Flags().StringVar(&gitURL, "git-url", "", "Read the document from this git repository")
	rootCmd.Flags().StringVar(&gitRef, "git-ref", "", "The tag, branch or commit of the git repository")
	rootCmd.Flags().StringSliceVarP(&operations, "operation", "o", nil, "Only generate examples of these operationIds or 'METHOD /path' entries")
	rootCmd.Flags().VarP(&format, "format", "f", "The output format (json, yaml)")
	rootCmd.Flags().StringVarP(&target, "target", "t", "", "The target directory to write the examples to; stdout if not defined")
	rootCmd.Flags().StringVar(&version, "version", "", "The version to select from the CRD; If not defined, the storage version is used")
	rootCmd.Flags().BoolVar(&expandMixed, "expand-mixed", false, "Expand object and array kinds of mixed types")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.MarkFlagsMutuallyExclusive("spec", "crd")
	rootCmd.MarkFlagsMutuallyExclusive("crd", "git-url")
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if strings.TrimSpace(specPath) == "" && strings.TrimSpace(crdPath) == "" {
		return errors.New("either --spec or --crd must be defined")
	}

	opts := generate.Options{
		Operations: operations,
		Synth:      example.Options{ExpandMixed: expandMixed},
	}
	loader := source.NewLoader(fs)

	var results []generate.Result
	if crdPath != "" {
		data, err := loader.Load(cmd.Context(), source.Source{Path: crdPath})
		if err != nil {
			return err
		}
		cr, err := openapi.ParseCRD(data, version)
		if err != nil {
			return fmt.Errorf("failed to parse CRD %s: %w", crdPath, err)
		}
		results = append(results, generate.CustomResource(cr, opts))
	} else {
		src := source.Source{Path: specPath, GitURL: gitURL, GitRef: gitRef}
		data, err := loader.Load(cmd.Context(), src)
		if err != nil {
			return err
		}
		doc, err := openapi.Parse(data)
		if err != nil {
			return fmt.Errorf("failed to parse document %s: %w", src, err)
		}
		results = generate.Document(doc, opts)
		if len(results) == 0 && len(operations) > 0 {
			return fmt.Errorf("no request or response bodies found for operations %v", operations)
		}
	}

	if strings.TrimSpace(target) == "" {
		return render.WriteList(cmd.OutOrStdout(), results, format)
	}
	return render.WriteExamples(fs, results, target, format)
}
