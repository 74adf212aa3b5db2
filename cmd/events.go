package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yotei-chat/yotei/pkg/api"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List upcoming calendar events",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		events, err := client.Events(cmd.Context())
		if err != nil {
			if api.AuthRequired(err) {
				return authHint(cmd, client)
			}
			return fmt.Errorf("failed to list events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("予定はありません")
			return nil
		}
		for _, ev := range events {
			fmt.Println(ev.String())
		}
		return nil
	},
}

// authHint fetches the OAuth URL so the user can authorize in a browser.
func authHint(cmd *cobra.Command, client *api.Client) error {
	url, err := client.AuthURL(cmd.Context())
	if err != nil {
		return fmt.Errorf("カレンダーの認証が必要です: %w", err)
	}
	return fmt.Errorf("カレンダーの認証が必要です。ブラウザで開いてください: %s", url)
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
