package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/ratel-online/landlord/config"
	"github.com/ratel-online/landlord/landlord/player"
	"github.com/ratel-online/landlord/landlord/ui"
	"github.com/ratel-online/landlord/network"
	"github.com/ratel-online/landlord/service"
	"github.com/spf13/pflag"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Println("main", err)
			async.PrintStackTrace(err)
		}
	}()
	flags := config.Flags(os.Args[0])
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err != pflag.ErrHelp {
			log.Error(err)
		}
		return
	}
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path, flags)
	if err != nil {
		log.Error(err)
		return
	}
	if cfg.Seed == 0 {
		cfg.Seed = int64(rand.Intn(math.MaxInt32)) + 1
	}
	log.Infof("seed %d, %d rounds\n", cfg.Seed, cfg.Rounds)

	names, strategies, err := player.CreatePlayers(cfg.Players, cfg.LLM.Timeout)
	if err != nil {
		log.Error(err)
		return
	}
	opts := []service.Option{
		service.WithSeed(cfg.Seed),
		service.WithTerminal(ui.Stdout, cfg.Delay),
	}
	var server *network.Websocket
	if cfg.Ws.Addr != "" {
		server = network.NewWebsocketServer(cfg.Ws.Addr)
		opts = append(opts, service.WithSink(server))
		async.Async(func() {
			log.Error(server.Serve())
		})
	}
	arena, err := service.NewArena(names, strategies, opts...)
	if err != nil {
		log.Error(err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := arena.Run(ctx, cfg.Rounds); err != nil {
		log.Error(err)
		return
	}
	if server == nil {
		return
	}
	log.Infof("waiting for viewers on %s/ws\n", cfg.Ws.Addr)
	if err := arena.Serve(ctx, network.Starts()); err != nil {
		log.Error(err)
	}
	if err := server.Shutdown(context.Background()); err != nil {
		log.Error(err)
	}
}
