package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bytestreamsplit/codec"
	"github.com/wippyai/bytestreamsplit/errors"
)

type options struct {
	file     string
	typeName string
	width    int
	encode   bool
	numbered bool
}

func main() {
	var (
		file        = flag.String("file", "", "Path to input file, - for stdin")
		typeName    = flag.String("type", "f32", "Element type (u8 s8 u16 s16 u32 s32 u64 s64 f32 f64)")
		width       = flag.Int("width", 0, "Element width in bytes (defaults to the type width)")
		encode      = flag.Bool("encode", false, "Read decimal values and write byte stream split bytes")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: bss -file <data.bin> [-type f32] [-width 4]")
		fmt.Fprintln(os.Stderr, "       bss -file <values.txt> -type s64 -encode > data.bin")
		fmt.Fprintln(os.Stderr, "       bss -file <data.bin> -type f64 -i  (interactive mode)")
		os.Exit(1)
	}

	log := newLogger(*verbose)
	defer func() { _ = log.Sync() }()
	codec.SetLogger(log.Named("codec"))

	opts := options{
		file:     *file,
		typeName: *typeName,
		width:    *width,
		encode:   *encode,
		numbered: term.IsTerminal(int(os.Stdout.Fd())),
	}

	if *interactive {
		if !opts.numbered {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal on stdout")
			os.Exit(1)
		}
		if err := runInteractive(opts, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	out := bufio.NewWriter(os.Stdout)
	err := run(opts, os.Stdin, out, log)
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func run(opts options, stdin io.Reader, stdout io.Writer, log *zap.Logger) error {
	t, err := parseElementType(opts.typeName)
	if err != nil {
		return err
	}

	data, err := readInput(opts.file, stdin)
	if err != nil {
		return err
	}
	log.Debug("input loaded",
		zap.String("file", opts.file),
		zap.Int("bytes", len(data)),
		zap.String("type", witTypeStr(t)),
	)

	if opts.encode {
		buf, err := encodeValues(strings.Fields(string(data)), t)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		_, err = stdout.Write(buf)
		return err
	}

	values, err := decodeValues(data, t, resolveWidth(opts.width, t))
	if err != nil {
		return fmt.Errorf("decode %s: %w", opts.file, err)
	}
	log.Debug("decoded", zap.Int("values", len(values)))

	for i, v := range values {
		if opts.numbered {
			_, err = fmt.Fprintf(stdout, "%8d  %s\n", i, v)
		} else {
			_, err = fmt.Fprintln(stdout, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "read "+path)
	}
	return data, nil
}
