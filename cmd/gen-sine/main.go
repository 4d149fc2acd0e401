package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cwbudde/sampleconv"
	"github.com/go-audio/audio"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	formatName := flagSet.String("format", "s16le", "sample format of the output file")
	sampleRate := flagSet.Int("rate", 48000, "sample rate in hertz")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	format, err := sampleconv.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	if want := sampleconv.WAVFormat(format); want != format {
		return fmt.Errorf("%w: %s (use %s)", sampleconv.ErrUnsupportedWavFormat, format, want)
	}

	log.Printf("generating a %f sec %s sine wav at %f hz", *length, format, *frequency)

	stream := audio.Format{NumChannels: 1, SampleRate: *sampleRate}
	numSamples := int(float64(*sampleRate) * *length)

	buf := &audio.Float32Buffer{
		Format:         &stream,
		Data:           make([]float32, numSamples),
		SourceBitDepth: 32,
	}

	rate := float64(*sampleRate)
	for i := range numSamples {
		buf.Data[i] = float32(math.Sin(float64(i) / rate * *frequency * 2 * math.Pi))
	}

	block, err := sampleconv.BlockFromFloat32Buffer(buf)
	if err != nil {
		return err
	}

	stage := sampleconv.NewStage(format, nil)

	_, err = stage.Init(block.Format, stream)
	if err != nil {
		return err
	}

	converted, err := stage.Play(block)
	if err != nil {
		return err
	}

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer file.Close()

	err = sampleconv.WriteWAV(file, converted)
	if err != nil {
		return err
	}

	return file.Close()
}
