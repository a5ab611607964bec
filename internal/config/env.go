package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. GRIDPAINT_THEME.
const EnvPrefix = "GRIDPAINT"

// Env lists the environment overrides. Unset variables leave the pointer nil
// so the file value survives.
type Env struct {
	Theme        *string `envconfig:"THEME"`
	Size         *string `envconfig:"SIZE"`
	Color        *string `envconfig:"COLOR"`
	HistoryDepth *int    `envconfig:"HISTORY_DEPTH"`
	Format       *string `envconfig:"FORMAT"`
	CellWidth    *int    `envconfig:"CELL_WIDTH"`
	CellHeight   *int    `envconfig:"CELL_HEIGHT"`
	OutputDir    *string `envconfig:"OUTPUT_DIR"`
	Trim         *bool   `envconfig:"TRIM"`
	NotifyExport *bool   `envconfig:"NOTIFY_EXPORT"`
	NotifySave   *bool   `envconfig:"NOTIFY_SAVE"`
	NotifyCopy   *bool   `envconfig:"NOTIFY_COPY"`
}

// ApplyEnv overlays GRIDPAINT_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	var e Env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	setIf(&c.Theme, e.Theme)
	setIf(&c.Paint.Size, e.Size)
	setIf(&c.Paint.Color, e.Color)
	setIf(&c.Paint.HistoryDepth, e.HistoryDepth)
	setIf(&c.Export.Format, e.Format)
	setIf(&c.Export.CellWidth, e.CellWidth)
	setIf(&c.Export.CellHeight, e.CellHeight)
	setIf(&c.Export.OutputDir, e.OutputDir)
	setIf(&c.Export.Trim, e.Trim)
	setIf(&c.Notify.Export, e.NotifyExport)
	setIf(&c.Notify.Save, e.NotifySave)
	setIf(&c.Notify.Copy, e.NotifyCopy)
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
