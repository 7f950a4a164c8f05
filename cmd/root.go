package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beanboi7/chyp8/config"
	"github.com/beanboi7/chyp8/logger"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "chyp8 [command]",
	Short:         "Chip-8 emulator using Go",
	Long:          "A Chip-8 emulator written from scratch that mimics the functionalities of a Chip-8, an interpretted language originally written for the COSMIC-VIP/ Telmac 8 bit systems.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chyp8.yaml)")

	config.SetDefaults(viper.GetViper())

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(inspectCmd)
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "chyp8: %v\n", err)
		return 1
	}
	return 0
}

// initConfig points viper at the config file, the CHYP8_ environment and
// finally the flag defaults, in that order of precedence.
func initConfig() {
	cobra.CheckErr(readConfig(viper.GetViper(), cfgFile))
}

func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(".chyp8")
	}

	v.SetEnvPrefix("chyp8")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err == nil {
		logger.Logf("config", "using %s", v.ConfigFileUsed())
		return nil
	}

	// a missing file in the home directory is fine, a named one is not
	var notFound viper.ConfigFileNotFoundError
	if path == "" && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("config: %w", err)
}

// bindFlags ties every flag of cmd to the viper key of the same name.
func bindFlags(cmd *cobra.Command) {
	cobra.CheckErr(viper.BindPFlags(cmd.Flags()))
}
