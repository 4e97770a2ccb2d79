// cmd/root.go - Root command implementation
package cmd

import (
	"io"
	"os"
	"path/filepath"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/shiena/ansicolor"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// log is the process logger; components receive scoped entries derived from it
var log = logrus.New()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tile-extract",
	Short: "Extract map tile regions from local tile containers",
	Long: `tile-extract slices a geographic region and zoom range out of a local
tile container (currently MBTiles) and writes it as a conventional XYZ tile
directory tree, one file per tile, with a JSON index per zoom level.

The resulting tree (output/<region>/<zoom>/<column>/<row>.<ext>) can be served
directly by any static file server for offline or local mapping tools.

Examples:
  # Extract a predefined region
  tile-extract extract --region ankara --source osm_turkey

  # Extract an explicit bounding box
  tile-extract extract --source osm_turkey --bbox "32.5,39.7,33.2,40.1" --min-zoom 8 --max-zoom 12

  # Inspect the catalog
  tile-extract sources
  tile-extract regions

  # Summarize a previously written region
  tile-extract stats ankara`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringP("output-dir", "o", "", "output directory for extracted tiles")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("defaults.output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TILE_EXTRACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("logging.verbose") {
			log.Infof("using config file: %s", viper.ConfigFileUsed())
		}
	}
}

// initLogging configures the process logger from the loaded configuration
func initLogging() {
	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		ShowFullLevel:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	writers := []io.Writer{os.Stderr}
	if logDir := viper.GetString("logging.log_dir"); logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err == nil {
			filename := filepath.Join(logDir, time.Now().Format("2006-01-02")+".log")
			if file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
				writers = append(writers, file)
			}
		}
	}
	log.SetOutput(ansicolor.NewAnsiColorWriter(io.MultiWriter(writers...)))

	level, err := logrus.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
}
