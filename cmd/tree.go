package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/itsmostafa/pagegen/internal/generate"
	"github.com/itsmostafa/pagegen/internal/output"
)

var treeYAML bool

var treeCmd = &cobra.Command{
	Use:   "tree <page.html>",
	Short: "Print the section tree of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		root, err := generate.New(cfg, logger).Parse(args[0])
		if err != nil {
			return err
		}

		if treeYAML {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(root.Subsections); err != nil {
				return err
			}
			return enc.Close()
		}

		output.FormatTree(cmd.OutOrStdout(), filepath.Base(args[0]), root)
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVar(&treeYAML, "yaml", false, "Print the tree as YAML")
	rootCmd.AddCommand(treeCmd)
}
