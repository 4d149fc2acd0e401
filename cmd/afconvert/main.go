// This tool converts the sample format of a wav, aiff or raw file. The
// sample rate and channel layout are kept.
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
	"github.com/go-audio/audio"
)

var (
	errMissingPath = errors.New("you must set the -in and -out flags")
	errRawFormat   = errors.New("raw input needs the -from flag")
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

type container int

const (
	containerRaw container = iota
	containerWAV
	containerAIFF
)

func containerOf(path string) container {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return containerWAV
	case ".aif", ".aiff":
		return containerAIFF
	default:
		return containerRaw
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("afconvert", flag.ContinueOnError)
	flagSet.SetOutput(out)

	inPath := flagSet.String("in", "", "input file (.wav, .aif or raw samples)")
	outPath := flagSet.String("out", "", "output file (.wav, .aif or raw samples)")
	to := flagSet.String("to", "", "output sample format, e.g. s16le (defaults to what the output container stores)")
	from := flagSet.String("from", "", "sample format of raw input")
	rate := flagSet.Int("rate", 44100, "sample rate of raw input")
	channels := flagSet.Int("channels", 1, "number of channels of raw input")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *inPath == "" || *outPath == "" {
		return errMissingPath
	}

	block, err := readBlock(*inPath, *from, audio.Format{NumChannels: *channels, SampleRate: *rate})
	if err != nil {
		return err
	}

	target, err := targetFormat(*outPath, *to, block.Format)
	if err != nil {
		return err
	}

	stage := sampleconv.NewStage(target, nil)

	status, err := stage.Init(block.Format, block.Stream)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%s)\n", stage.Config(), status)

	converted, err := stage.Play(block)
	if err != nil {
		return err
	}

	err = writeBlock(*outPath, converted)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d samples written to %s\n", converted.Samples(), *outPath)

	return nil
}

func targetFormat(path, name string, in sampleconv.Format) (sampleconv.Format, error) {
	if name != "" {
		return sampleconv.ParseFormat(name)
	}

	switch containerOf(path) {
	case containerWAV:
		return sampleconv.WAVFormat(in), nil
	case containerAIFF:
		return sampleconv.AIFFFormat(in), nil
	default:
		return in, nil
	}
}

func readBlock(path, from string, stream audio.Format) (*sampleconv.Block, error) {
	kind := containerOf(path)
	if kind == containerRaw {
		return readRaw(path, from, stream)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if kind == containerAIFF {
		return sampleconv.ReadAIFF(file)
	}

	return sampleconv.ReadWAV(file)
}

func readRaw(path, from string, stream audio.Format) (*sampleconv.Block, error) {
	if from == "" {
		return nil, errRawFormat
	}

	format, err := sampleconv.ParseFormat(from)
	if err != nil {
		return nil, err
	}

	if err := sampleconv.ValidateWidth(format.BytesPerSample()); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	bps := format.BytesPerSample()

	return &sampleconv.Block{
		Data:   data[:len(data)-len(data)%bps],
		Format: format,
		Stream: stream,
	}, nil
}

func writeBlock(path string, block *sampleconv.Block) error {
	kind := containerOf(path)
	if kind == containerRaw {
		return os.WriteFile(path, block.Data, 0o644)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer file.Close()

	if kind == containerAIFF {
		err = sampleconv.WriteAIFF(file, block)
	} else {
		err = sampleconv.WriteWAV(file, block)
	}

	if err != nil {
		return err
	}

	return file.Close()
}
