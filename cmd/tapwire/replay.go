package main

import (
	"os"

	"github.com/spf13/cobra"

	"tapwire"
)

var replayCmd = &cobra.Command{
	Use:   "replay <capture.pcap>",
	Short: "Decode frames from a pcap capture file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		source, err := tapwire.NewPcapSource(f)
		if err != nil {
			return err
		}

		sniffer := &tapwire.Sniffer{Source: source}
		return sniffer.Run()
	},
}
