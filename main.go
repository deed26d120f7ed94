package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/hadv/vanbtc/miner"
)

const logo = `
__   ___   _  _ ___ _____ ___
\ \ / /_\ | \| | _ )_   _/ __|
 \ V / _ \| .  | _ \ | || (__
  \_/_/ \_\_|\_|___/ |_| \___|

   bc1q vanity address miner
`

func main() {
	fmt.Print(logo)

	pattern := flag.StringP("pattern", "p", "", "pattern to search for right after the bc1q tag (required)")
	suffix := flag.StringP("suffix", "x", "", "pattern the address should end with")
	threads := flag.IntP("threads", "t", runtime.NumCPU(), "number of search workers (defaults to all CPUs)")
	statsInterval := flag.IntP("stats-interval", "s", 5, "print progress stats every N seconds")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Brute-forces secp256k1 key pairs until a bc1q address matches the requested pattern.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -p test\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -p test -x 99 -t 8 -s 10\n", os.Args[0])
	}
	flag.Parse()

	if *pattern == "" {
		fmt.Fprintln(os.Stderr, "Error: --pattern (-p) is required")
		flag.Usage()
		os.Exit(1)
	}
	if *threads <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --threads must be at least 1")
		os.Exit(1)
	}
	if *statsInterval <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --stats-interval must be at least 1 second")
		os.Exit(1)
	}

	search := miner.NewPattern(*pattern, *suffix)
	if errs := search.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e)
		}
		os.Exit(1)
	}

	// A stopped search holds no partial state worth reporting, so an
	// interrupt is an immediate abort.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupts
		fmt.Println("\nInterrupted before a match was found")
		os.Exit(130)
	}()

	fmt.Println("Starting Bitcoin bc1q vanity address generator")
	fmt.Printf("Looking for pattern: '%s' (after bc1q)\n", search.Prefix())
	if search.Suffix() != "" {
		fmt.Printf("And ending with: '%s'\n", search.Suffix())
	}
	fmt.Printf("Using %d workers, ~%.0f attempts expected on average\n", *threads, search.ExpectedAttempts())
	fmt.Println("Press Ctrl+C to stop...")
	fmt.Println()

	m := miner.NewCPUMiner(*threads, time.Duration(*statsInterval)*time.Second)
	result, stats, err := m.Mine(search)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	color.Green("Found matching address after %d attempts in %s!",
		stats.Attempts(), stats.Elapsed().Round(10*time.Millisecond))
	fmt.Printf("Address:     %s\n", result.Address)
	fmt.Printf("Private key: %s\n", result.PrivateKey)
	fmt.Printf("WIF:         %s\n", result.WIF)
}
