package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"aidMatch/pkg/logger"
)

const app = "aidmatch-sim"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "Offline simulator for the aidMatch recommendation engine",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env := "development"
			if !viper.GetBool("debug") {
				env = "production"
			}
			logger.Init(env)
			return initConfig()
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "engine settings file (yaml); flags and AIDMATCH_* env override it")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	viper.SetEnvPrefix("AIDMATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initConfig() error {
	if cfgFile == "" {
		return nil
	}
	viper.SetConfigFile(cfgFile)
	return viper.ReadInConfig()
}
