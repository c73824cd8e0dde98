package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tapwire"
)

var sniffCmd = &cobra.Command{
	Use:   "sniff",
	Short: "Capture and decode frames from a TAP device",
	RunE: func(cmd *cobra.Command, args []string) error {
		tap, err := tapwire.OpenTapPort(viper.GetString("capture.interface"))
		if err != nil {
			return err
		}
		defer tap.Close()

		log.WithField("ifce", tap.Name()).Info("capturing")

		sniffer := &tapwire.Sniffer{Source: tap}

		if dump := viper.GetString("capture.dump"); dump != "" {
			f, err := os.Create(dump)
			if err != nil {
				return err
			}
			defer f.Close()

			sink, err := tapwire.NewPcapSink(f)
			if err != nil {
				return err
			}
			sniffer.Dump = sink

			log.WithField("file", dump).Info("dumping raw frames")
		}

		return sniffer.Run()
	},
}

func init() {
	sniffCmd.Flags().StringP("interface", "i", "", "TAP device name (default: next free tapN)")
	sniffCmd.Flags().String("dump", "", "also write raw frames to this pcap file")

	_ = viper.BindPFlag("capture.interface", sniffCmd.Flags().Lookup("interface"))
	_ = viper.BindPFlag("capture.dump", sniffCmd.Flags().Lookup("dump"))
}
