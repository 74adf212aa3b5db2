package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yotei-chat/yotei/pkg/api"
	"github.com/yotei-chat/yotei/pkg/chat"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <request>",
	Short: "Send one scheduling request without streaming",
	Long:  `Sends a single request to the non-streaming scheduling endpoint and prints the reply. Example: yotei schedule "2月7日の13時から15時に会議を入れて"`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		messages := []api.ChatMessage{{
			Role:    chat.RoleUser,
			Content: strings.Join(args, " "),
		}}

		reply, err := client.Schedule(cmd.Context(), messages)
		if err != nil {
			if api.AuthRequired(err) {
				return authHint(cmd, client)
			}
			return fmt.Errorf("scheduling request failed: %w", err)
		}

		fmt.Println(reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
