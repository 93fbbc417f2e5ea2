package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/jinjor/wavecap/src/audio"
	"golang.org/x/sync/errgroup"
)

var (
	inPath      = flag.String("in", "", "raw input WAV recorded into the table")
	controlPath = flag.String("control", "", "control WAV driving the pitch (optional)")
	level       = flag.Float64("level", 0.01, "constant control level when no control WAV is given")
	outPath     = flag.String("out", "out.wav", "output WAV")
	scriptPath  = flag.String("script", "", "command script (optional)")
	blockSize   = flag.Int("block", 64, "block size in samples")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)
	if *inPath == "" {
		log.Fatalln("-in is not passed")
	}
	if *blockSize <= 0 {
		log.Fatalf("invalid block size: %d\n", *blockSize)
	}

	var raw, control []float64
	var sampleRate, controlRate int
	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		raw, sampleRate, err = audio.ReadWav(*inPath)
		return err
	})
	if *controlPath != "" {
		g.Go(func() error {
			var err error
			control, controlRate, err = audio.ReadWav(*controlPath)
			return err
		})
	}
	var events []event
	if *scriptPath != "" {
		g.Go(func() error {
			f, err := os.Open(*scriptPath)
			if err != nil {
				return err
			}
			defer f.Close()
			events, err = parseScript(f)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	if control != nil && controlRate != sampleRate {
		log.Printf("WARN: control rate %d differs from input rate %d\n", controlRate, sampleRate)
	}

	engine, err := audio.NewEngine(float64(sampleRate))
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	// capture from the start unless the script decides otherwise
	if len(events) == 0 {
		events = []event{{offset: 0, command: []string{"bang"}}}
	}
	out, captures := render(engine, raw, fitControl(control, len(raw), *level), events, *blockSize)
	log.Printf("rendered %d samples, %d capture(s)\n", len(out), captures)
	if err := audio.WriteWav(*outPath, out, sampleRate); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("saved " + *outPath)
}
