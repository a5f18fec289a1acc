package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"

	"github.com/Sumatoshi-tech/circbuf/pkg/workload"
)

// CompressedSuffix marks report paths written as LZ4 frames.
const CompressedSuffix = ".lz4"

// Encode writes rep as indented JSON, inside an LZ4 frame when compress is set.
func Encode(w io.Writer, rep *workload.Report, compress bool) (err error) {
	if compress {
		zw := lz4.NewWriter(w)

		defer func() {
			err = errors.Join(err, zw.Close())
		}()

		w = zw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}

// Decode reads a report written by Encode.
func Decode(r io.Reader, compressed bool) (*workload.Report, error) {
	if compressed {
		r = lz4.NewReader(r)
	}

	var rep workload.Report

	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	return &rep, nil
}

// WriteFile writes rep to path, compressing when path ends in ".lz4".
func WriteFile(path string, rep *workload.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return Encode(f, rep, strings.HasSuffix(path, CompressedSuffix))
}

// ReadFile reads a report written by WriteFile.
func ReadFile(path string) (*workload.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	return Decode(f, strings.HasSuffix(path, CompressedSuffix))
}
