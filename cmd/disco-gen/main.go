package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	cli "github.com/discokit/disco-gen/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:   "disco-gen",
		Short: "Generate Go client packages from REST discovery documents",
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var packageName string
	var out string
	var runtimeImport string
	var force bool

	cmd := &cobra.Command{
		Use:   "generate [path-or-url]",
		Short: "Generate a client package from a discovery document",
		Long: `Generate loads a discovery document from a local file or an HTTP(S) URL,
renders the client source for it and writes a single .go file.

With no argument it fetches the service directory, prints a numbered
listing and generates whichever service is selected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := cli.GenerateParams{
				ConfigPath:    configPath,
				Package:       packageName,
				Out:           out,
				RuntimeImport: runtimeImport,
				Force:         force,
			}

			var (
				path string
				err  error
			)
			if len(args) == 0 {
				path, err = cli.RunInteractive(cmd.Context(), params, os.Stdin, os.Stdout)
			} else {
				params.Input = args[0]
				path, err = cli.RunGenerate(cmd.Context(), params)
			}
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to disco-gen.yaml config")
	cmd.Flags().StringVar(&packageName, "package", "", "Generated package name (defaults to the service name)")
	cmd.Flags().StringVar(&out, "out", "", "Output file or directory")
	cmd.Flags().StringVar(&runtimeImport, "runtime-import", "", "Import path of the dispatch package")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite the output file if it exists")

	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path-or-url>",
		Short: "Check that a discovery document would generate cleanly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.RunValidate(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("%s: ok\n", args[0])
			return nil
		},
	}
}
