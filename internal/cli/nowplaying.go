package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/tessro/onair/internal/tail"
)

var (
	npFollow    bool
	npCopy      bool
	npTimeout   time.Duration
	npNoEmoji   bool
	npTimestamp bool
	npFormat    string
)

var nowPlayingCmd = &cobra.Command{
	Use:     "nowplaying",
	Aliases: []string{"np"},
	Short:   "Show the title on air",
	Long: `Print the title currently on air.

With --follow, keep printing title and program changes as they happen.
Template fields for --format: .Type .Emoji .Time .Title .Program
.Announcer .Slot

Examples:
  onair np                      # Print the current title
  onair np --copy               # ...and copy it to the clipboard
  onair np -f -t                # Follow with timestamps
  onair np -f --format '{{.Time}} {{.Title}}'`,
	Args: cobra.NoArgs,
	RunE: runNowPlaying,
}

func init() {
	nowPlayingCmd.Flags().BoolVarP(&npFollow, "follow", "f", false, "follow changes until Ctrl+C")
	nowPlayingCmd.Flags().BoolVar(&npCopy, "copy", false, "copy the title to the clipboard")
	nowPlayingCmd.Flags().DurationVar(&npTimeout, "timeout", 10*time.Second, "how long to wait for the live feed")
	nowPlayingCmd.Flags().BoolVar(&npNoEmoji, "no-emoji", false, "disable emoji output")
	nowPlayingCmd.Flags().BoolVarP(&npTimestamp, "timestamp", "t", false, "show timestamps")
	nowPlayingCmd.Flags().StringVar(&npFormat, "format", "", "custom format template")
	rootCmd.AddCommand(nowPlayingCmd)
}

func runNowPlaying(cmd *cobra.Command, args []string) error {
	if npFollow {
		return followNowPlaying(cmd)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), npTimeout)
	defer cancel()

	client := newMetadataClient()
	titles := make(chan string, 1)
	sub := client.Subscribe(func(title string) {
		select {
		case titles <- title:
		default:
		}
	})

	var title string
	select {
	case title = <-titles:
	case <-ctx.Done():
		title = client.Simulated()
	}
	mode := sub.Mode()
	sub.Unsubscribe()

	if title == "" {
		title = cfg.Station.DefaultTitle
	}

	copied := false
	if npCopy {
		if err := clipboard.WriteAll(title); err != nil {
			return fmt.Errorf("failed to copy title: %w", err)
		}
		copied = true
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]any{
			"title":  title,
			"source": mode.String(),
			"copied": copied,
		})
	}

	fmt.Fprintf(out, "🎵 %s\n", title)
	if copied {
		fmt.Fprintln(out, "Copied to clipboard.")
	}
	if Verbose() {
		fmt.Fprintf(out, "  source: %s\n", mode)
	}
	return nil
}

func followNowPlaying(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	formatter := tail.NewFormatter(
		tail.WithEmoji(!npNoEmoji),
		tail.WithTimestamp(npTimestamp),
		tail.WithTemplate(npFormat),
	)

	watcher := tail.NewWatcher(newMetadataClient(), cfg.Programs,
		tail.WithInterval(cfg.Schedule.Every()),
		tail.WithDefaultTitle(cfg.Station.DefaultTitle),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	out := cmd.OutOrStdout()
	for event := range watcher.Events() {
		if JSONOutput() {
			_ = writeJSON(out, followEvent(event))
			continue
		}
		fmt.Fprintln(out, formatter.Format(event))
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func followEvent(e tail.Event) map[string]any {
	m := map[string]any{"timestamp": e.Timestamp}
	switch e.Type {
	case tail.EventTitleChange:
		m["type"] = "title_change"
		m["title"] = e.Title
	case tail.EventProgramChange:
		m["type"] = "program_change"
		m["program"] = e.Program
	}
	return m
}
