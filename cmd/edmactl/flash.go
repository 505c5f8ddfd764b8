package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tarm/serial"

	"github.com/soclab/edma/xmodem"
)

var (
	flashDevice string
	flashBaud   int
	flashOffset uint32
	flashFlags  uint32
)

var flashCmd = &cobra.Command{
	Use:   "flash <image>",
	Short: "Send a firmware image to a board over XMODEM-1K.",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runFlash(args[0])
	},
}

func init() {
	flashCmd.Flags().StringVar(&flashDevice, "device",
		envOr("EDMACTL_SERIAL", "/dev/ttyUSB0"), "serial device of the board")
	flashCmd.Flags().IntVar(&flashBaud, "baud", 115200, "serial baud rate")
	flashCmd.Flags().Uint32Var(&flashOffset, "offset", 0,
		"flash offset the loader writes the image to")
	flashCmd.Flags().Uint32Var(&flashFlags, "flags", 0, "loader flags")

	rootCmd.AddCommand(flashCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runFlash(imagePath string) error {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return err
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        flashDevice,
		Baud:        flashBaud,
		ReadTimeout: 10 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("opening %s: %w", flashDevice, err)
	}
	defer port.Close()

	log.Printf("sending %d bytes to %s at offset 0x%x",
		len(image), flashDevice, flashOffset)

	if err := xmodem.SendImage(port, image, flashOffset, flashFlags); err != nil {
		return err
	}

	log.Printf("image sent")

	return nil
}
