// Command logslice extracts all log lines for one calendar date from a
// large, date-sorted log archive.
//
// The archive is fetched (HTTP, S3, MinIO, or a local path), decompressed
// into a temp workspace, memory-mapped, and binary-searched for the target
// date. Matches are written to output/output_<date>.txt; when the date is
// absent no output file is created.
//
// Usage:
//
//	logslice --date 2024-01-02 --url https://example.com/logs.zip
//	logslice --date 2024-01-02 --file /var/log/app.log.zst
//	logslice --date 2024-01-02 --s3 my-bucket/archives/app.zip
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"

	"logslice"
	"logslice/fetch"
	minifetch "logslice/fetch/minio"
	s3fetch "logslice/fetch/s3"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, logslice.ErrNotFound) {
			// An absent date is an outcome, not a failure.
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		date      string
		url       string
		file      string
		s3Path    string
		minioPath string
		minioAddr string
		outDir    string
		rateLimit int64
		verbose   bool
		keep      bool
	)

	cmd := &cobra.Command{
		Use:           "logslice",
		Short:         "Extract one day of logs from a date-sorted archive",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !logslice.ValidDate(date) {
				return fmt.Errorf("%w: %q", logslice.ErrInvalidDate, date)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := logslice.NewTextLogger(level)

			src, err := pickSource(ctx, logger, url, file, s3Path, minioPath, minioAddr, rateLimit)
			if err != nil {
				return err
			}

			opts := []logslice.Option{logslice.WithLogger(logger)}
			if keep {
				opts = append(opts, logslice.WithKeepWorkspace())
			}
			ex := logslice.New(opts...)

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			outPath := filepath.Join(outDir, "output_"+date+".txt")

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}

			stats, err := ex.Extract(ctx, src, date, out)
			if cerr := out.Close(); cerr != nil && err == nil {
				err = cerr
			}
			if err != nil {
				// Never leave an empty artifact behind: not for a miss,
				// not for a failed fetch or map. Partial output from a
				// decode failure stays intact.
				if stats.Lines == 0 {
					os.Remove(outPath)
				}
				if errors.Is(err, logslice.ErrNotFound) {
					fmt.Printf("No logs found for date %s\n", date)
				}
				return err
			}

			fmt.Printf("Extracted %d lines (%d bytes) to %s\n", stats.Lines, stats.Bytes, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date to extract, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&url, "url", "", "HTTP(S) URL of the log archive")
	cmd.Flags().StringVar(&file, "file", "", "path to a local log archive")
	cmd.Flags().StringVar(&s3Path, "s3", "", "S3 location of the archive, bucket/key")
	cmd.Flags().StringVar(&minioPath, "minio", "", "MinIO location of the archive, bucket/key")
	cmd.Flags().StringVar(&minioAddr, "minio-addr", "localhost:9000", "MinIO endpoint")
	cmd.Flags().StringVar(&outDir, "out", "output", "output directory")
	cmd.Flags().Int64Var(&rateLimit, "limit-rate", 0, "download rate limit in bytes/sec (0 = unlimited)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().BoolVar(&keep, "keep-workspace", false, "keep the temp workspace for debugging")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

// pickSource builds the fetch source from the mutually exclusive location flags.
func pickSource(ctx context.Context, logger *logslice.Logger, url, file, s3Path, minioPath, minioAddr string, rateLimit int64) (fetch.Source, error) {
	set := 0
	for _, v := range []string{url, file, s3Path, minioPath} {
		if v != "" {
			set++
		}
	}
	if set == 0 {
		return nil, errors.New("one of --url, --file, --s3 or --minio is required")
	}
	if set > 1 {
		return nil, errors.New("--url, --file, --s3 and --minio are mutually exclusive")
	}

	switch {
	case file != "":
		return &fetch.Local{Path: file}, nil
	case url != "":
		return &fetch.HTTP{
			URL:            url,
			RateLimitBytes: rateLimit,
			Progress: func(done, total int64) {
				logger.Info("downloading", "bytes", done, "total", total)
			},
		}, nil
	case s3Path != "":
		bucket, key, err := splitBucketKey(s3Path)
		if err != nil {
			return nil, err
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return s3fetch.New(awss3.NewFromConfig(cfg), bucket, key), nil
	default:
		bucket, key, err := splitBucketKey(minioPath)
		if err != nil {
			return nil, err
		}
		client, err := miniogo.New(minioAddr, &miniogo.Options{
			Creds: credentials.NewEnvMinio(),
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return minifetch.New(client, bucket, key), nil
	}
}

func splitBucketKey(s string) (bucket, key string, err error) {
	bucket, key, ok := strings.Cut(s, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("expected bucket/key, got %q", s)
	}
	return bucket, key, nil
}
