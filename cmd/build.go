package cmd

import (
	"github.com/spf13/cobra"

	"github.com/itsmostafa/pagegen/internal/generate"
	"github.com/itsmostafa/pagegen/internal/output"
)

var buildOutDir string

var buildCmd = &cobra.Command{
	Use:   "build <page.html>",
	Short: "Generate page.h and page.cc from a tagged page",
	Long: `Parse the page into its section tree and write the C++ header declaring
the table and the source defining it. Both files are written into the output
directory only if the whole page was processed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("out") {
			cfg.OutputDir = buildOutDir
		}

		res, err := generate.New(cfg, logger).Generate(args[0])
		if err != nil {
			return err
		}

		if !quiet {
			output.FormatSummary(cmd.OutOrStdout(), res)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", ".", "Directory to write the generated files into")
	rootCmd.AddCommand(buildCmd)
}
