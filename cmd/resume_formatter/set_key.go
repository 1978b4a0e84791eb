package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/config"
)

var setKeyCommand = &cobra.Command{
	Use:   "set-key [api-key]",
	Short: "Save the judgment-service API key in the per-user config",
	Long:  "Persists the Gemini API key in the per-user config file. The " + config.EnvAPIKey + " environment variable still wins when set.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetKeyCmd,
}

func init() {
	rootCmd.AddCommand(setKeyCommand)
}

func runSetKeyCmd(_ *cobra.Command, args []string) error {
	key := strings.TrimSpace(args[0])
	if key == "" {
		return fmt.Errorf("api key is empty")
	}

	if err := config.SaveAPIKey(key); err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Printf("API key saved to %s\n", path)
	return nil
}
