package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/fbradyirl/openwebif-go/client"
	"github.com/fbradyirl/openwebif-go/simulator"
	"github.com/fbradyirl/openwebif-go/tool"
)

func setLogLevel(cfg tool.Config) {
	if cfg.Log == "" {
		tool.DefaultLogger.SetLevel(log.InfoLevel)
		return
	}
	switch strings.ToLower(cfg.Log) {
	case "dev":
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	case "prod":
		tool.DefaultLogger.SetLevel(log.InfoLevel)
	case "none":
		tool.DefaultLogger.SetLevel(log.FatalLevel)
	default:
		tool.DefaultLogger.Warnf("Unknown log mode %q, using info level", cfg.Log)
		tool.DefaultLogger.SetLevel(log.InfoLevel)
	}
}

// mergeConfig applies CLI overrides on top of the yaml config.
func mergeConfig(cfg tool.Config, appCfg tool.AppConfig) tool.AppConfig {
	if cfg.Host != "" {
		appCfg.Host = cfg.Host
	}
	if cfg.Port > 0 {
		appCfg.Port = cfg.Port
	}
	if cfg.UseHTTPS {
		appCfg.UseHTTPS = true
	}
	if cfg.Username != "" {
		appCfg.Username = cfg.Username
	}
	if cfg.Password != "" {
		appCfg.Password = cfg.Password
	}
	return appCfg
}

func buildClient(appCfg tool.AppConfig) (*client.Client, error) {
	opts := []client.Option{client.WithPort(appCfg.Port)}
	if appCfg.UseHTTPS {
		opts = append(opts, client.WithHTTPS())
	}
	if appCfg.Username != "" || appCfg.Password != "" {
		opts = append(opts, client.WithCredentials(appCfg.Username, appCfg.Password))
	}
	if appCfg.PreferPicon {
		opts = append(opts, client.WithPreferPicon())
	}
	if appCfg.MACAddress != "" {
		opts = append(opts, client.WithMACAddress(appCfg.MACAddress))
	}
	if appCfg.DeepStandby {
		opts = append(opts, client.WithDeepStandby())
	}
	return client.New(appCfg.Host, opts...)
}

func printStatus(ctx context.Context, c *client.Client) error {
	info, err := c.Status(ctx)
	if err != nil {
		return err
	}
	if info.Standby() {
		fmt.Println("standby")
		return nil
	}
	fmt.Printf("station:  %s\n", info.Station)
	fmt.Printf("event:    %s\n", info.EventTitle)
	fmt.Printf("ref:      %s\n", info.ServiceRef)
	fmt.Printf("playback: %s\n", info.Playback())
	fmt.Printf("volume:   %d (muted: %t)\n", info.Volume, info.Muted)
	return nil
}

func runCommand(ctx context.Context, c *client.Client, cfg tool.Config) error {
	ack := func(ok bool, err error) error {
		if err != nil {
			return err
		}
		fmt.Printf("result: %t\n", ok)
		return nil
	}

	switch strings.ToLower(cfg.Command) {
	case "status":
		return printStatus(ctx, c)
	case "about":
		version, err := c.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("OpenWebif version: %s\n", version)
		return nil
	case "standby":
		return ack(c.ToggleStandby(ctx))
	case "on":
		return ack(c.TurnOn(ctx))
	case "off":
		return ack(c.TurnOff(ctx))
	case "playpause":
		return ack(c.TogglePlayPause(ctx))
	case "stop":
		return ack(c.Stop(ctx))
	case "up":
		return ack(c.ChannelUp(ctx))
	case "down":
		return ack(c.ChannelDown(ctx))
	case "mute":
		return ack(c.ToggleMute(ctx))
	case "volume":
		if cfg.Volume < 0 {
			return fmt.Errorf("-cmd volume needs -volume 0-100")
		}
		return ack(c.SetVolume(ctx, cfg.Volume))
	case "zap":
		if cfg.ServiceRef == "" {
			return fmt.Errorf("-cmd zap needs -sref")
		}
		return ack(c.Zap(ctx, cfg.ServiceRef))
	case "bouquets":
		bouquets, err := c.Bouquets(ctx)
		if err != nil {
			return err
		}
		for _, b := range bouquets {
			fmt.Printf("%s\t%s\n", b.Name, b.Ref)
		}
		return nil
	case "sources":
		services, err := c.BouquetSources(ctx, cfg.Bouquet)
		if err != nil {
			return err
		}
		for _, svc := range services {
			fmt.Printf("%s\t%s\n", svc.Name, svc.Ref)
		}
		return nil
	case "picon":
		info, err := c.Status(ctx)
		if err != nil {
			return err
		}
		url := c.PiconURL(ctx, info.Station, info.ServiceRef)
		if url == "" {
			fmt.Println("no picon available")
			return nil
		}
		fmt.Println(url)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
}

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}

	tool.InitLogger()
	setLogLevel(cfg)

	if cfg.Simulate {
		sim := simulator.New(appCfg.Bouquets)
		if err := sim.Run(cfg.SimPort, cfg.UseHTTPS); err != nil {
			tool.DefaultLogger.Fatalf("Simulator failed: %v", err)
		}
		return
	}

	merged := mergeConfig(cfg, appCfg)
	if merged.Host == "" {
		tool.DefaultLogger.Fatal("No box host configured, pass -host or set host in config.yaml")
	}

	c, err := buildClient(merged)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}

	if cfg.ShowQR {
		qr, err := qrcode.New(c.WebURL(), qrcode.Medium)
		if err != nil {
			tool.DefaultLogger.Fatalf("Failed to build QR code: %v", err)
		}
		fmt.Println(qr.ToSmallString(false))
		return
	}

	if err := runCommand(context.Background(), c, cfg); err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
}
