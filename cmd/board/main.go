package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"tinyboard/internal/config"
	"tinyboard/internal/logging"
	"tinyboard/internal/relay"
	"tinyboard/internal/render"
	"tinyboard/internal/rules"
	"tinyboard/internal/transport"
)

// terminal prints every rendered view.
type terminal struct {
	out io.Writer
}

func (t terminal) Show(v render.View) {
	fmt.Fprint(t.out, "\n"+render.Text(v))
}

func main() {
	cfgPath := flag.String("config", "", "path to a config file")
	server := flag.String("server", "", "server base URL, e.g. ws://localhost:8080 (overrides config)")
	gameID := flag.String("game", "", "game id to join (overrides config)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Setup(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Debug = cfg.Debug || *debug
	defer logging.Sync()
	if *server != "" {
		cfg.ServerURL = *server
	}
	if *gameID != "" {
		cfg.GameID = *gameID
	}
	if cfg.GameID == "" {
		fmt.Fprintln(os.Stderr, "a game id is required (-game)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	url := strings.TrimRight(cfg.ServerURL, "/") + "/ws/" + cfg.GameID
	conn, err := transport.Dial(ctx, url, cfg.PingInterval)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gestures := make(chan relay.Gesture)
	go readCommands(ctx, cancel, in, out, gestures)

	client := relay.NewClient(rules.NewGame(), render.New(cfg.ImagePrefix), conn, terminal{out: out})
	return client.Run(ctx, conn.Inbound(ctx), gestures)
}

func readCommands(ctx context.Context, cancel context.CancelFunc, in io.Reader, out io.Writer, gestures chan<- relay.Gesture) {
	defer cancel()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		gs, err := relay.ParseCommand(scanner.Text())
		if errors.Is(err, relay.ErrQuit) {
			return
		}
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		for _, g := range gs {
			select {
			case gestures <- g:
			case <-ctx.Done():
				return
			}
		}
	}
}
