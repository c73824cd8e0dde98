package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "tapwire",
	Short: "Capture and decode ethernet frames from a virtual network interface",
	Long: `tapwire attaches to a virtual network interface (TAP device) or a pcap
capture file and decodes the ethernet frames it sees: ARP and IPv4 payloads
are parsed and validated, everything else is carried opaquely. Frames that
fail validation are logged and skipped.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupFromConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace..panic)")
	rootCmd.PersistentFlags().String("log-file", "", "log to a rotated file instead of stderr")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.AddCommand(sniffCmd)
	rootCmd.AddCommand(replayCmd)
}

func setupFromConfig(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}

	level, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if file := viper.GetString("log.file"); file != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // MB
			MaxBackups: 3,
		})
	}

	return nil
}
