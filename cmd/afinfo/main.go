// This tool prints the sample format of a wav or aiff file and, with -to,
// how it would be converted.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/sampleconv"
)

const missingPathMessage = "You must pass the path of the file to inspect"

var errMissingPath = errors.New("missing path argument")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("afinfo", flag.ContinueOnError)
	flagSet.SetOutput(out)

	to := flagSet.String("to", "", "sample format to plan a conversion to")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	path := flagSet.Arg(0)

	block, err := readBlock(path)
	if err != nil {
		return err
	}

	desc := block.Format.Descriptor()

	fmt.Fprintf(out, "Format: %s\n", block.Format)
	fmt.Fprintf(out, "Bytes per sample: %d\n", desc.BytesPerSample)
	fmt.Fprintf(out, "Byte order: %s\n", desc.Endian)
	fmt.Fprintf(out, "Encoding: %s\n", desc.Encoding)
	fmt.Fprintf(out, "Channels: %d\n", block.Stream.NumChannels)
	fmt.Fprintf(out, "Sample rate: %d\n", block.Stream.SampleRate)
	fmt.Fprintf(out, "Samples: %d\n", block.Samples())
	fmt.Fprintf(out, "Duration: %s\n", block.Duration())

	if *to == "" {
		return nil
	}

	target, err := sampleconv.ParseFormat(*to)
	if err != nil {
		return err
	}

	cfg, err := sampleconv.Configure(block.Format, target, block.Stream)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Conversion: %s\n", cfg)
	fmt.Fprintf(out, "Output bytes: %d\n", cfg.OutputSize(len(block.Data)))

	return nil
}

func readBlock(path string) (*sampleconv.Block, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".aif", ".aiff":
		return sampleconv.ReadAIFF(file)
	default:
		return sampleconv.ReadWAV(file)
	}
}
