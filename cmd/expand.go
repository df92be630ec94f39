package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/itsmostafa/pagegen/internal/expand"
	"github.com/itsmostafa/pagegen/internal/generate"
)

var expandSection string
var expandVars string

var expandCmd = &cobra.Command{
	Use:   "expand <page.html>",
	Short: "Render a page the way the web UI serves one section",
	Long: `Render the page with only the selected section visible. List regions are
repeated once per item in the variables file, with each {KEY} replaced by the
item's value.

Variables file example:

  device_status:
    - {PLUG_ID: "0", PLUG_NAME: lamp}
    - {PLUG_ID: "1", PLUG_NAME: fan}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		root, err := generate.New(cfg, logger).Parse(args[0])
		if err != nil {
			return err
		}

		var lists expand.Lists
		if expandVars != "" {
			if lists, err = expand.LoadLists(expandVars); err != nil {
				return err
			}
		}

		selected := expandSection
		if selected == "" {
			sections := expand.Sections(root)
			if len(sections) == 0 {
				return fmt.Errorf("%s has no sections, pass --section", args[0])
			}
			selected = sections[0]
			logger.Debug().Str("section", selected).Msg("defaulting to first section")
		}

		page, err := expand.Page(root.Subsections, selected, lists)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), page)
		return err
	},
}

func init() {
	expandCmd.Flags().StringVarP(&expandSection, "section", "s", "", "Section to show (default: first section in the page)")

	// Variables file flag with env var fallback
	defaultVars := os.Getenv("PAGEGEN_VARS")
	expandCmd.Flags().StringVar(&expandVars, "vars", defaultVars, "YAML file with list variables")

	rootCmd.AddCommand(expandCmd)
}
