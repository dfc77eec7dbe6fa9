package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/player"
)

var playVolume int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the live stream",
	Long: `Play the station's live stream without the dashboard, printing the
now-playing title as it changes. Stop with Ctrl+C.

Examples:
  onair play               # Play at the configured volume
  onair play --volume 40   # Play at 40%`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playVolume, "volume", 0, "Volume (0-100), default from config")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	volume := cfg.Player.VolumeLevel()
	if cmd.Flags().Changed("volume") {
		if playVolume < 0 || playVolume > 100 {
			return fmt.Errorf("volume must be between 0 and 100")
		}
		volume = float64(playVolume) / 100
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A stream that drops after starting leaves the controller paused.
	dropped := make(chan error, 1)
	ctrl := player.New(newStreamOutput(),
		player.WithVolume(volume),
		player.WithEventHandler(func(e player.Event) {
			if e.Kind == player.EventPlaybackError && e.State == core.StatePaused {
				select {
				case dropped <- e.Err:
				default:
				}
			}
		}),
	)
	defer func() { _ = ctrl.Close() }()

	if err := ctrl.Play(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		_ = writeJSON(out, map[string]any{
			"status":  "playing",
			"station": cfg.Station.Name,
			"volume":  int(ctrl.Volume()*100 + 0.5),
		})
	} else {
		fmt.Fprintf(out, "▶ Listening to %s (%d%%). Ctrl+C to stop.\n", cfg.Station.Name, int(ctrl.Volume()*100+0.5))
	}

	sub := newMetadataClient().Subscribe(func(title string) {
		if title == "" {
			title = cfg.Station.DefaultTitle
		}
		if JSONOutput() {
			_ = writeJSON(out, map[string]string{"title": title})
			return
		}
		fmt.Fprintf(out, "♪ %s\n", title)
	})
	defer sub.Unsubscribe()

	select {
	case <-ctx.Done():
		if !JSONOutput() {
			fmt.Fprintln(out, "⏸ Stopped")
		}
		return nil
	case err := <-dropped:
		return err
	}
}
