// Command calc evaluates arithmetic expressions.
//
// With no arguments and a terminal on stdin, calc asks for one expression at
// a time. Otherwise, each argument is an expression, and so is each line of
// the -in file or of stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

func main() {
	log.SetFlags(0)
	var (
		cfgname, envname, inname string
		interactive              bool
	)
	flag.StringVar(&cfgname, "config", "", "YAML config file")
	flag.StringVar(&envname, "env", "", "dotenv file to load into the environment (default .env if present)")
	flag.StringVar(&inname, "in", "", "input file with one expression per line, or - for stdin")
	flag.BoolVar(&interactive, "i", false, "ask for expressions interactively even if stdin is not a terminal")
	verb := flag.String("fmt", "", "result formatting string (default %g)")
	level := flag.String("log", "", "stderr log level: debug, info, warn, or error (default warn)")
	logfile := flag.String("logfile", "", "file receiving all log messages as JSON")
	hist := flag.String("history", "", "interactive history file")
	flag.Parse()

	required := envname != ""
	if envname == "" {
		envname = ".env"
	}
	cfg, err := loadConfig(cfgname, envname, required)
	if err != nil {
		log.Fatal(err)
	}
	// Flags override everything else, but only when given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fmt":
			cfg.Format = *verb
		case "log":
			cfg.LogLevel = *level
		case "logfile":
			cfg.LogFile = *logfile
		case "history":
			cfg.History = *hist
		}
	})
	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}
	logger, closer, err := newLogger(cfg, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()
	slog.SetDefault(logger)
	if cfg.envFile != "" {
		logger.Debug("loaded environment file", "path", cfg.envFile)
	} else {
		logger.Debug("no environment file loaded", "path", envname)
	}
	logger.Debug("configured", "config", cfgname, "format", cfg.Format, "history", cfg.History, "log_file", cfg.LogFile)

	if interactive || inname == "" && flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := interact(cfg, logger); err != nil {
			logger.Error("interactive session failed", "err", err)
			closer.Close()
			os.Exit(1)
		}
		return
	}

	failed := 0
	for i, arg := range flag.Args() {
		if !evalOne(arg, os.Stdout, os.Stderr, cfg.Format, logger, fmt.Sprintf("arg %d", i+1)) {
			failed++
		}
	}
	in, name, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if in != nil {
		n, err := batch(in, name, os.Stdout, os.Stderr, cfg.Format, logger)
		in.Close()
		failed += n
		if err != nil {
			logger.Error("batch failed", "err", err)
			failed++
		}
	}
	if failed > 0 {
		closer.Close()
		os.Exit(1)
	}
}

// interact runs an interactive session with line editing, loading and saving
// history if a history file is configured.
func interact(cfg *Config, logger *slog.Logger) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				logger.Warn("read history error", "path", cfg.History, "err", err)
			}
			f.Close()
		}
	}

	s := session{
		in:      line,
		out:     os.Stdout,
		errout:  os.Stderr,
		logger:  logger,
		format:  cfg.Format,
		prompt:  cfg.Prompt,
		history: line.AppendHistory,
	}
	err := s.run()

	if cfg.History != "" {
		if err := saveHistory(line, cfg.History); err != nil {
			logger.Warn("save history error", "path", cfg.History, "err", err)
		}
	}
	return err
}

func saveHistory(line *liner.State, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := line.WriteHistory(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// infile opens the batch input. The result is nil if there is no input file
// and std is false.
func infile(inname string, std bool) (io.ReadCloser, string, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, "", err
		}
		return f, inname, nil
	case inname == "-", std:
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	return nil, "", nil
}
