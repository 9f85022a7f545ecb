package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/jusunglee/kana/internal/kana"
	"github.com/jusunglee/kana/internal/logger"
	"github.com/jusunglee/kana/internal/tui"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/samber/lo"
	"golang.org/x/text/transform"
)

func main() {
	if err := mainE(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE(args []string, stdin io.Reader, stdout io.Writer) error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("kana")

	var (
		to          = fs_.StringLong("to", "katakana", "Target script (katakana, hiragana, kata, hira)")
		interactive = fs_.BoolLong("interactive", "Convert interactively in the terminal")
		logLevel    = fs_.StringLong("log-level", "warn", "Log level (debug, info, warn, error)")
	)

	if err := ff.Parse(fs_, args, ff.WithEnvVars()); err != nil {
		if errors.Is(err, ff.ErrHelp) {
			fmt.Fprintf(stdout, "%s\n", ffhelp.Flags(fs_))
			return nil
		}
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New(logger.Options{Level: *logLevel, Output: os.Stderr})

	target, err := kana.ParseScript(*to)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	if *interactive {
		result, err := tui.Run(target)
		if err != nil {
			return fmt.Errorf("running interactive converter: %w", err)
		}
		log.Debug("interactive session ended", "last", result)
		return nil
	}

	if texts := fs_.GetArgs(); len(texts) > 0 {
		lines := lo.Map(texts, func(text string, _ int) string {
			return kana.Convert(text, target)
		})
		for _, line := range lines {
			fmt.Fprintln(stdout, line)
		}
		return nil
	}

	return convertStream(stdout, stdin, target, log)
}

func convertStream(w io.Writer, r io.Reader, to kana.Script, log *slog.Logger) error {
	bw := bufio.NewWriter(w)
	n, err := io.Copy(bw, transform.NewReader(r, kana.NewTransformer(to)))
	if err != nil {
		return fmt.Errorf("converting stream: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	log.Debug("stream converted", "to", to, "bytes", n)
	return nil
}
