package sources

import (
	"lunar-assistant/core/holdings"

	"go.uber.org/zap"
)

// Build creates the enabled sources in a stable order.
func Build(cfg Config, logger *zap.Logger) []holdings.Source {
	var out []holdings.Source

	if cfg.Knowhere.Enabled {
		out = append(out, NewKnowhere(cfg))
	}
	if cfg.LCD.Enabled {
		lcd := NewLCD(cfg)
		if len(lcd.contracts) == 0 {
			logger.Warn("LCD source enabled without contracts, skipping")
		} else {
			out = append(out, lcd)
		}
	}
	if cfg.Indexer.Enabled {
		if cfg.Indexer.URL == "" {
			logger.Warn("Indexer source enabled without URL, skipping")
		} else {
			out = append(out, NewIndexer(cfg))
		}
	}

	names := make([]string, 0, len(out))
	for _, s := range out {
		names = append(names, s.Name())
	}
	logger.Info("Holdings sources configured", zap.Strings("sources", names))

	return out
}
