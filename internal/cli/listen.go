package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessro/onair/internal/tui"
)

var listenCmd = &cobra.Command{
	Use:     "listen",
	Aliases: []string{"ui", "tui"},
	Short:   "Launch interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard provides a live view with:
  • Header - station, clock and the program on air
  • Now Playing - current title, player and volume
  • Schedule - today's programs
  • Listener Messages - the rotating message wall
  • History - titles heard this session

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  Space        Play/Pause
  l            Listen live
  +/-          Volume up/down
  p            Show/hide player
  c            Copy title
  d            Delete message (moderator)
  r            Reload messages`,
	Annotations: map[string]string{fullscreen: "true"},
	RunE:        runListen,
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Deps{
		Config:     cfg,
		ConfigPath: configPath(),
		Output:     newStreamOutput(),
		Store:      store,
		Metadata:   newMetadataClient(),
	})
	return tui.Run(app)
}
