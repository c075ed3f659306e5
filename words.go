package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/games/apps/go-server/internal/chain"
	"github.com/robalobadob/games/apps/go-server/internal/config"
	"github.com/robalobadob/games/apps/go-server/internal/daily"
	"github.com/robalobadob/games/apps/go-server/internal/words"
)

type verdictOutput struct {
	chain.Verdict
	Message string `json:"reason,omitempty"`
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Word chain tools",
	}
	cmd.AddCommand(newValidateCmd(), newDailyCmd(time.Now))
	return cmd
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <word>",
		Short: "Validate one word against the dictionaries and chain state",
		Example: `  games words validate perro
  games words validate oso --used perro --letter o`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			catalog, err := words.Load(words.Sources{SpanishFile: cfg.SpanishWordsFile, EnglishFile: cfg.EnglishWordsFile})
			if err != nil {
				return err
			}
			t, err := translatorFor(cmd, cfg)
			if err != nil {
				return err
			}
			used, _ := cmd.Flags().GetStringSlice("used")
			letter, _ := cmd.Flags().GetString("letter")

			v := chain.Validate(catalog.Dictionary(), args[0], used, letter)
			return printJSON(cmd.OutOrStdout(), verdictOutput{
				Verdict: v,
				Message: t.Reason(v.Reason, v.Required, v.Candidate),
			})
		},
	}
	cmd.Flags().StringSlice("used", nil, "Words already played (comma separated)")
	cmd.Flags().String("letter", "", "Letter the word must start with")
	return cmd
}

func newDailyCmd(now func() time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Print today's starting letter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			today := now().UTC()
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"date":   daily.DateKey(today),
				"letter": daily.Letter(today, cfg.DailySalt),
			})
		},
	}
}
