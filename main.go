// Command ch8 executes CHIP-8 programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nf/ch8/vip"
)

func main() {
	log.SetPrefix("ch8: ")
	log.SetFlags(0)

	var (
		cliFlag   = flag.Bool("cli", false, "run in the terminal instead of a window")
		watchFlag = flag.Bool("watch", false, "reload the program whenever its file changes")
		muteFlag  = flag.Bool("mute", false, "disable the buzzer")
		scaleFlag = flag.Int("scale", 0, "window pixels per display cell (default 15)")
		speedFlag = flag.Int("speed", 0, "instructions executed per frame (default 15)")
		seedFlag  = flag.Uint64("seed", 0, "seed for random numbers (default random)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	cfg := vip.Config{
		CyclesPerFrame: *speedFlag,
		Scale:          *scaleFlag,
		Seed:           *seedFlag,
		Mute:           *muteFlag,
		Watch:          *watchFlag,
	}
	if err := run(flag.Arg(0), cfg, *cliFlag); err != nil {
		log.Fatal(err)
	}
}

func run(romFile string, cfg vip.Config, cli bool) error {
	rom, err := os.ReadFile(romFile)
	if err != nil {
		return err
	}

	var (
		front vip.Frontend
		buzz  vip.Buzzer = vip.NopBuzzer{}
	)
	if cli {
		t, err := vip.NewTerm()
		if err != nil {
			return err
		}
		front = t
		if !cfg.Mute {
			buzz = t
		}
	} else {
		front = vip.NewGUI(cfg)
		if !cfg.Mute {
			b, err := vip.NewToneBuzzer()
			if err != nil {
				log.Printf("audio: %v", err)
			} else {
				buzz = b
			}
		}
	}

	r := vip.NewRunner(cfg, buzz)
	if cfg.Watch {
		var w io.Closer
		w, err = watch(romFile, r)
		if err != nil {
			return err
		}
		defer w.Close()
	}
	return r.Run(rom, front)
}
