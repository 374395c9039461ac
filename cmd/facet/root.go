// Root command and configuration loading for the facet CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/facetframe/facet/pkg/types"
)

// configFile is set by the --config flag.
var configFile string

var rootCmd = &cobra.Command{
	Use:   "facet",
	Short: "Facet is a generic object modeling engine",
	Long: `Facet stores user-defined object types built from reusable typed
property definitions, and objects whose property values are validated
and parsed against each definition's declared data type.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: facet.yaml in the working directory)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration from file, environment (FACET_*), and
// defaults, in that precedence order.
func loadConfig() (types.Config, error) {
	v := viper.New()
	v.SetDefault("backend", types.BackendSQLite)
	v.SetDefault("data_dir", ".facet-db")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("FACET")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("facet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := types.Config{
		Backend:    v.GetString("backend"),
		DataDir:    v.GetString("data_dir"),
		ListenAddr: v.GetString("listen_addr"),
		LogLevel:   v.GetString("log_level"),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}
