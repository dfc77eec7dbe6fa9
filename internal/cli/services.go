package cli

import (
	"github.com/tessro/onair/internal/messages"
	"github.com/tessro/onair/internal/metadata"
	"github.com/tessro/onair/internal/player"
)

func userAgent() string {
	return "onair/" + Version
}

func newMetadataClient() *metadata.Client {
	return metadata.NewClient(cfg.Metadata.URL,
		metadata.WithPlaylist(cfg.Metadata.Playlist),
		metadata.WithSlot(cfg.Metadata.Slot()),
		metadata.WithFallbackInterval(cfg.Metadata.FallbackEvery()),
	)
}

func newStreamOutput() *player.StreamOutput {
	return player.NewStreamOutput(cfg.Station.StreamURL, userAgent())
}

func openStore() (messages.Store, error) {
	return messages.Open(cfg, messages.Options{})
}
