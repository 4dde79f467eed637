package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/grid"
	"github.com/marben/intfract/kernel"
	"github.com/marben/intfract/render"
	"github.com/marben/irpc"
)

// main is the entry point for the fractal render server.
// It serves single images over plain HTTP, progressive renders over a websocket
// and PNG renders to irpc clients over TCP.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	addr := flag.String("addr", envOr("INTFRACT_ADDR", ":8080"), "listen address")
	irpcAddr := flag.String("irpc", envOr("INTFRACT_IRPC", ":8081"), "irpc listen address (empty to disable)")
	static := flag.String("static", envOr("INTFRACT_STATIC", "./static"), "directory served at /")
	renders := flag.Int("renders", 2, "renders computed at the same time")
	threads := flag.Int("threads", runtime.GOMAXPROCS(0), "worker goroutines per render")
	iterate := flag.Int("iterate", 256, "default iteration cap")
	verbose := flag.Bool("v", false, "log render details")
	flag.Parse()

	if *verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if *renders < 1 {
		return fmt.Errorf("-renders %d: need at least one", *renders)
	}
	if *iterate > maxIterate {
		return fmt.Errorf("-iterate %d: at most %d", *iterate, maxIterate)
	}

	defaults := render.Config{
		Region:     mandel.Overview,
		Raster:     mandel.Raster{W: 1920, H: 1080},
		MaxIterate: *iterate,
		Threads:    *threads,
		Kernel:     kernel.KindNarrow,
		Strategy:   grid.PerPixel,
	}
	if err := defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	svc := newRenderService(defaults, *renders)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := webServer(*addr, *static, svc)
	errCh := make(chan error, 2)
	go func() {
		errCh <- fmt.Errorf("httpServer: %w", httpServer.ListenAndServe())
	}()

	// irpc clients get the same render slots as the web clients
	irpcServer := irpc.NewServer(irpc.WithOnConnect(func(ep *irpc.Endpoint) {
		log.Printf("got irpc connection from: %s", ep.RemoteAddr())
	}))
	irpcServer.AddService(mandel.NewPNGRendererIrpcService(svc))
	if *irpcAddr != "" {
		tcpListener, err := net.Listen("tcp", *irpcAddr)
		if err != nil {
			return fmt.Errorf("net.Listen: %w", err)
		}
		log.Printf("irpc listening on %s", tcpListener.Addr())
		go func() {
			errCh <- fmt.Errorf("irpcServer.Serve: %w", irpcServer.Serve(tcpListener))
		}()
	}

	log.Printf("render server waiting for http, websocket and irpc connections")
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	if err := irpcServer.Close(); err != nil {
		log.Printf("irpcServer.Close: %v", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
