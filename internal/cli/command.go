package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/dolmetscher/internal"
	"codeberg.org/snonux/dolmetscher/internal/config"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dolmetscher [text...]",
		Short: "English/German translator backed by OpenAI",
		Long: `dolmetscher translates text between English and German using an
OpenAI chat model.

The API key is stored in the user configuration directory and can be set
with --set-key or in the settings dialog of the GUI.

Examples:
  dolmetscher                          # Launch interactive GUI (default)
  dolmetscher Good morning             # Translate English to German
  dolmetscher --to-english Guten Tag   # Translate German to English
  dolmetscher --file letter.txt        # Translate the contents of a file
  echo Hallo | dolmetscher -e -f -     # Translate standard input`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.dolmetscher.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Local flags
	cmd.Flags().StringVarP(&flags.InputFile, "file", "f", "", "Translate the contents of a file (- reads standard input)")
	cmd.Flags().BoolVarP(&flags.ToEnglish, "to-english", "e", false, "Translate German to English (default is English to German)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the stored API key")

	// Credential flags
	cmd.Flags().StringVar(&flags.SetKey, "set-key", "", "Store the OpenAI API key and exit")
	cmd.Flags().BoolVar(&flags.ShowKey, "show-key", false, "Show the stored OpenAI API key (masked)")

	// Configuration overrides
	cmd.Flags().StringVarP(&flags.Model, "model", "m", "", "OpenAI chat model (default chatgpt-4o-latest)")
	cmd.Flags().StringVar(&flags.Locale, "locale", "", "User interface language: en or de")

	cmd.MarkFlagsMutuallyExclusive("set-key", "show-key", "list-models")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("openai.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("ui.locale", cmd.Flags().Lookup("locale"))
}

// InitConfig initializes the global viper instance from defaults, the
// environment and the config file
func InitConfig(cfgFile string) error {
	if err := config.Setup(viper.GetViper(), cfgFile); err != nil {
		return err
	}

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
	return nil
}

// LoadConfig decodes the global viper instance, including bound flags
func LoadConfig() (*config.Config, error) {
	return config.FromViper(viper.GetViper())
}

// PrintError writes msg to w in red
func PrintError(w io.Writer, msg string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, msg)
}
