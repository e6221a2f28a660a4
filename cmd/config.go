package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/informaticafecor/OCRProyecto/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persisted configuration",
	Long: `Manage persisted configuration settings.

Configuration is stored in a YAML file in your user configuration directory
(~/.ocrproyecto/config.yaml). You can list all settings, get specific values,
or set new values using dotted keys.

Available commands:
  list  - List all configured settings
  get   - Get a specific value
  set   - Set a specific value

Examples:
  ocrproyecto config list                          # List all settings
  ocrproyecto config get ocr.language              # Get recognition language
  ocrproyecto config set ocr.language eng          # Set recognition language
  ocrproyecto config set processing.create_backups false
  ocrproyecto config set ocrmypdf_path /usr/local/bin/ocrmypdf`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "list":
			listConfig()
		case "get":
			if len(args) < 2 {
				fmt.Println("Error: 'get' command requires a key name")
				fmt.Println("Usage: ocrproyecto config get <key>")
				return
			}
			getConfig(args[1])
		case "set":
			if len(args) < 3 {
				fmt.Println("Error: 'set' command requires a key and value")
				fmt.Println("Usage: ocrproyecto config set <key> <value>")
				return
			}
			setConfig(args[1], args[2])
		default:
			fmt.Printf("Error: Unknown config command '%s'\n", args[0])
			fmt.Println("Available commands: list, get, set")
		}
	},
}

// listConfig lists every persisted setting with its current value.
func listConfig() {
	fmt.Println("⚙️  Configuration")
	fmt.Println("=================")

	configPath, _ := config.GetConfigFilePath()
	fmt.Printf("📁 Config file: %s\n\n", configPath)

	for _, key := range config.ConfigKeys() {
		value, err := config.GetConfigValue(key)
		if err != nil {
			value = fmt.Sprintf("<error: %v>", err)
		}
		fmt.Printf("  %-32s = %s\n", key, value)
	}

	fmt.Println("\n💡 Tip: Use 'ocrproyecto config get <key>' to get specific values")
	fmt.Println("💡 Tip: Use 'ocrproyecto config set <key> <value>' to change settings")
}

// getConfig gets a specific configuration value
func getConfig(key string) {
	value, err := config.GetConfigValue(key)
	if err != nil {
		fmt.Printf("❌ Error getting config value '%s': %v\n", key, err)
		return
	}
	fmt.Printf("%s = %s\n", key, value)
}

// setConfig sets a specific configuration value
func setConfig(key, value string) {
	if err := config.SetConfigValue(key, value); err != nil {
		fmt.Printf("❌ Error setting config value '%s': %v\n", key, err)
		return
	}
	fmt.Printf("✅ Set %s = %s\n", key, value)
}

func init() {
	rootCmd.AddCommand(configCmd)
}
