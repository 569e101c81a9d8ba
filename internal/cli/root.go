// Package cli wires the cobra command tree.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// ErrInterrupted reports a crawl cut short by a signal. The process
// exits with a distinct status so scripts can tell partial output from
// a complete run.
var ErrInterrupted = errors.New("crawl interrupted, partial results written")

var rootCmd = &cobra.Command{
	Use:   "ziphound",
	Short: "Crawl a web file index and collect download links",
	Long: `ziphound walks a web file-index tree from a base URL, visits every
subdirectory within scope and collects the URLs of files matching a
target extension, while keeping request rate and concurrency in check.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the command tree under a cancelable context, so
// an interrupt propagates into the crawl.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(exportCmd)
}
