package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/decart/backend"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: explore csv traces as an interactive chart
Usage:

 %[1]s [-config decart.toml] [-trace file.csv]

OR

 decart-gen | %[1]s -trace -

Trace files start with the header "dataset, x, y" followed by one entry per
line. Files are followed for appended entries until another trace is opened.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	configPath := flag.String("config", "", "TOML chart configuration file")
	tracePath := flag.String("trace", "", "Trace file to open at startup, or - for stdin")
	verbosity := flag.Int("v", 0, "Log verbosity")
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("decart")

	cfg := backend.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = backend.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	bundle := backend.NewBundle(ctx, cfg, logger)
	switch *tracePath {
	case "":
	case "-":
		bundle.Source.LoadFromStream("stdin", os.Stdin)
	default:
		if err := bundle.Source.LoadFromPath(*tracePath); err != nil {
			log.Fatal(err)
		}
	}

	go func() {
		w := app.NewWindow(app.Title("Decart"), app.Size(unit.Dp(900), unit.Dp(700)))
		go func() {
			<-ctx.Done()
			w.Perform(system.ActionClose)
		}()
		err := loop(ctx, w, bundle, logger)
		cancel()
		bundle.Source.Close()
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, logger logr.Logger) error {
	expl := explorer.NewExplorer(w)
	ws := backend.NewWindowState(ctx, bundle, w)
	ui := NewUI(ws, expl, w.Invalidate)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			logger.V(1).Info("window closed")
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
