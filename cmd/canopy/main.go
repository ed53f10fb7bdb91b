// canopy trains topic models on a corpus with one document per line.
// Usage:
/*
  canopy bars --out=/tmp/bars.txt
  canopy lda --corpus=/tmp/bars.txt --topics=10 -logtostderr
  canopy hlda --corpus=./corpus.gz --depth=3 --eta=2,1,0.5 -logtostderr
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "canopy",
		Short: "Gibbs sampling trainers of flat and hierarchical topic models",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its flags from flag.CommandLine.
			return flag.CommandLine.Parse(nil)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(
		HLDACmd(),
		LDACmd(),
		BarsCmd(),
	)

	err := rootCmd.Execute()
	log.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// interrupted returns a channel that receives once SIGINT arrives, so
// that training loops can stop between iterations.
func interrupted() <-chan os.Signal {
	sigs := make(chan os.Signal, 1)
	exit := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		for sig := range sigs {
			log.Infof("Caught signal, will stop after this iteration ...")
			exit <- sig
		}
	}()
	return exit
}
