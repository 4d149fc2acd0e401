// Package sampleconv converts blocks of audio samples between sample
// formats.
//
// A Format packs the byte width, byte order, signedness, point type and
// special encoding (mu-law, A-law) of a sample into a single code that is
// compatible with the classic audio filter-chain representation. Configure
// negotiates a conversion between two formats and returns an immutable
// Config that can transform any number of blocks:
//
//	cfg, err := sampleconv.Configure(sampleconv.U8, sampleconv.S16LE, stream)
//	if err != nil {
//		return err
//	}
//
//	out := make([]byte, cfg.OutputSize(len(in)))
//	n, err := cfg.Transform(out, in)
//
// Stage wraps a Config with scratch-buffer management for use inside a
// processing chain, and ReadWAV/WriteWAV/ReadAIFF/WriteAIFF move blocks in
// and out of audio containers.
//
// Sample rate and channel layout are never changed; only width, encoding
// and byte order are.
package sampleconv
