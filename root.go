package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/robalobadob/games/apps/go-server/internal/config"
	"github.com/robalobadob/games/apps/go-server/internal/i18n"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "games",
		Short:        "Logic games backend: grid robot and word chain",
		Long:         `Serves the robot interpreter and word chain validator over HTTP, or runs them once from the command line.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("lang", "", "Language for anomaly and reason messages (en, es)")

	root.AddCommand(newServeCmd(), newRobotCmd(), newWordsCmd())
	return root
}

// translatorFor resolves --lang against the loaded catalogs; an empty flag
// selects DEFAULT_LANG.
func translatorFor(cmd *cobra.Command, cfg config.Config) (*i18n.Translator, error) {
	bundle, err := i18n.Load(cfg.DefaultLang)
	if err != nil {
		return nil, err
	}
	lang, _ := cmd.Flags().GetString("lang")
	return bundle.Translator(bundle.Match(lang)), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
