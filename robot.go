package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/games/apps/go-server/internal/config"
	"github.com/robalobadob/games/apps/go-server/internal/robot"
)

type robotOutput struct {
	Final     robot.State   `json:"finalPosition"`
	History   []robot.State `json:"history"`
	Anomalies []string      `json:"anomalies"`
	Processed int           `json:"processedCommands"`
}

func newRobotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "robot <commands...>",
		Short: "Interpret a robot command string and print the replay",
		Example: `  games robot A A D A
  games robot --lang es "A A A A"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			t, err := translatorFor(cmd, cfg)
			if err != nil {
				return err
			}
			res := robot.Interpret(strings.Join(args, " "))
			return printJSON(cmd.OutOrStdout(), robotOutput{
				Final:     res.Final,
				History:   res.History,
				Anomalies: t.Anomalies(res.Anomalies),
				Processed: res.Tokens,
			})
		},
	}
}
