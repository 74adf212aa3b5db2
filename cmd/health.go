package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend liveness",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		health, err := client.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("backend is unreachable: %w", err)
		}

		if health.Message != "" {
			fmt.Printf("%s: %s\n", health.Status, health.Message)
		} else {
			fmt.Println(health.Status)
		}
		if health.Status != "healthy" {
			return fmt.Errorf("backend reports status %q", health.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
