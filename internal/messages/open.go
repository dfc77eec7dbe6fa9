package messages

import (
	"fmt"

	"github.com/tessro/onair/internal/config"
)

// Open creates the store selected by the messages section of cfg.
func Open(cfg *config.Config, opts Options) (Store, error) {
	if opts.Limit == 0 {
		opts.Limit = cfg.Messages.Limit
	}
	if opts.Placeholder == "" {
		opts.Placeholder = cfg.Station.PlaceholderPhoto
	}

	if cfg.Messages.Backend == "memory" {
		return NewMemoryStore(opts), nil
	}

	path, err := cfg.MessagesPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve message path: %w", err)
	}

	switch cfg.Messages.Backend {
	case "", "json":
		return NewFileStore(path, opts)
	case "sqlite":
		return NewSQLStore(path, opts)
	default:
		return nil, fmt.Errorf("unknown message backend %q", cfg.Messages.Backend)
	}
}
