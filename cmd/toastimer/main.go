package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"

	"github.com/jask/toastimer/internal/config"
	"github.com/jask/toastimer/internal/preset"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Config file path." type:"path" env:"TOASTIMER_CONFIG"`
	LogLevel string `help:"Log level: trace, debug, info, warn, error." name:"log-level"`
	LogFile  string `help:"Log file. Empty disables logging." name:"log-file" type:"path"`
}

type CLI struct {
	Globals

	Run       RunCmd     `cmd:"" default:"withargs" help:"Run the toast timer."`
	History   HistoryCmd `cmd:"" help:"Show recent toasting sessions."`
	Presets   PresetsCmd `cmd:"" help:"List toast presets."`
	ConfigCmd ConfigCmd  `cmd:"" name:"config" help:"Show or write the effective configuration."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("toastimer"),
		kong.Description("A countdown timer for toast."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}

// load reads the config file and applies flag overrides.
func (g *Globals) load() (config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return config.Config{}, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	return cfg, nil
}

// PresetsCmd lists presets, marking the configured default.
type PresetsCmd struct{}

func (c *PresetsCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	for _, p := range preset.NewRegistry(cfg.Presets).All() {
		marker := " "
		if p.Name == cfg.Toast.Preset {
			marker = "*"
		}
		fmt.Printf("%s %-10s %s\n", marker, p.Name, p.Total.Round(time.Millisecond))
	}
	return nil
}

// ConfigCmd prints the effective configuration, or writes it with --write.
type ConfigCmd struct {
	Write bool `help:"Write the effective configuration to the config path."`
}

func (c *ConfigCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Write {
		path := g.Config
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.Save(cfg, path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	}
	fmt.Printf("toast.preset      = %s\n", cfg.Toast.Preset)
	fmt.Printf("toast.interval    = %s\n", cfg.Toast.Interval)
	fmt.Printf("toast.finish_hold = %s\n", cfg.Toast.FinishHold)
	for _, p := range preset.NewRegistry(cfg.Presets).All() {
		fmt.Printf("presets.%-9s = %s\n", p.Name, p.Total)
	}
	fmt.Printf("history.enabled   = %t\n", cfg.History.Enabled)
	fmt.Printf("history.path      = %s\n", cfg.History.Path)
	fmt.Printf("log.level         = %s\n", cfg.Log.Level)
	fmt.Printf("log.file          = %s\n", cfg.Log.File)
	fmt.Printf("log.format        = %s\n", cfg.Log.Format)
	return nil
}
