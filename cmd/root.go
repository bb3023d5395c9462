package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	go_ping "github.com/hbasria/go-ping"
	"github.com/spf13/cobra"
)

var (
	root *cobra.Command
)

func init() {
	root = &cobra.Command{
		Use:   "go-ping <destination>",
		Short: "ICMP echo latency, jitter and MOS for one host",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.SilenceErrors = true
	root.Flags().IntP("count", "c", 10, "number of echo requests to send")
	root.Flags().Float64P("timeout", "t", 2, "seconds to wait for each reply")
	root.Flags().BoolP("verbose", "v", false, "print every probe and discarded packet")
	root.Flags().Uint16("id", 0, "ICMP identifier, defaults to the process id")
	root.Flags().Bool("seq-increment", false, "increment the sequence number on every probe")
}

func run(cmd *cobra.Command, args []string) error {
	dest := args[0]
	count, _ := cmd.Flags().GetInt("count")
	timeout, _ := cmd.Flags().GetFloat64("timeout")
	verbose, _ := cmd.Flags().GetBool("verbose")
	id, _ := cmd.Flags().GetUint16("id")
	seqIncrement, _ := cmd.Flags().GetBool("seq-increment")

	conf := go_ping.DefaultConfig()
	conf.Count = count
	conf.Timeout = time.Duration(timeout * float64(time.Second))
	conf.IncrementSeq = seqIncrement
	if cmd.Flags().Changed("id") {
		conf.ID = id
	}
	if verbose {
		conf.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	pinger, err := go_ping.NewPinger(conf)
	if err != nil {
		return err
	}
	// usage is only for argument errors
	cmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := pinger.Ping(ctx, dest)
	if err != nil {
		return err
	}
	report(os.Stdout, dest, res, verbose)
	return nil
}

func main() {
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
