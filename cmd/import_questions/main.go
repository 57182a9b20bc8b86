package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"iq-admin/internal/adapter/iqbackend"
	"iq-admin/internal/config"
	"iq-admin/internal/csvimport"
	"iq-admin/internal/domain"
	"iq-admin/internal/logger"
	"iq-admin/internal/service"
	"iq-admin/internal/util"
	"iq-admin/internal/validation"

	"go.uber.org/zap"
)

type options struct {
	testID  string
	file    string
	submit  bool
	noColor bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("import_questions", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.testID, "test", "", "ID of the IQ test the questions belong to")
	fs.StringVar(&opts.file, "file", "", "path to the CSV file")
	fs.BoolVar(&opts.submit, "submit", false, "upload the valid rows after the preview")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.testID == "" || opts.file == "" {
		fs.Usage()
		return opts, errors.New("-test and -file are required")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	backend, err := iqbackend.NewClient(cfg.Backend)
	if err != nil {
		logger.Get().Fatal("Failed to create backend client", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := service.NewImportSession(util.NewULID(), opts.testID, backend, service.SessionOptions{
		Parser:        csvimport.NewParser(cfg.Import.MaxRows),
		Normalizer:    csvimport.NewNormalizer(validation.NewValidator()),
		SubmitTimeout: cfg.Backend.Timeout,
	})

	if err := run(ctx, session, opts, os.Stdout); err != nil {
		logger.Get().Error("Import failed", zap.String("testID", opts.testID), zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		logger.Sync()
		os.Exit(1)
	}
}

// run previews opts.file and, with -submit, uploads its valid rows.
func run(ctx context.Context, session *service.ImportSession, opts options, out io.Writer) error {
	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("open %s: %w", opts.file, err)
	}
	defer f.Close()

	snap, err := session.Load(ctx, filepath.Base(opts.file), f)
	if err != nil {
		return err
	}
	renderPreview(out, snap, opts.noColor)

	if snap.ValidCount == 0 {
		return domain.NewNoValidRowsError(len(snap.Records))
	}
	if !opts.submit {
		fmt.Fprintln(out, "Dry run: pass -submit to upload the valid rows.")
		return nil
	}

	result, err := session.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Uploaded %d questions to test %s.\n", result.Submitted, opts.testID)
	if result.RefreshError != "" {
		fmt.Fprintf(out, "Could not reload the question list: %s\n", result.RefreshError)
	} else {
		fmt.Fprintf(out, "The test now has %d questions.\n", len(result.Questions))
	}
	return nil
}
