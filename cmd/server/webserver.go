package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/output"
)

// progressInterval is how often a websocket client is told about progress.
const progressInterval = 100 * time.Millisecond

// webServer creates a server serving files in the static folder,
// single images on /render and progressive renders on the /ws websocket endpoint.
func webServer(addr, static string, svc *renderService) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(static, svc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://%s", addr)
	return srv
}

func newMux(static string, svc *renderService) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(svc))
	mux.HandleFunc("GET /render", renderHandler(svc))
	mux.Handle("/", http.FileServer(http.Dir(static)))
	return mux
}

// renderHandler answers GET /render with an encoded image.
// Query parameters: region (preset name or realmin,imagmin,realmax,imagmax),
// size (WxH), iterate, threads, kernel, shift, strategy, palette and format
// (png, bmp or tiff).
func renderHandler(svc *renderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req, err := requestFromQuery(q)
		if err != nil {
			httpError(w, err)
			return
		}
		format := output.PNG
		if f := q.Get("format"); f != "" {
			if format, err = output.ParseFormat(f); err != nil {
				httpError(w, err)
				return
			}
		}

		job, err := svc.prepare(req)
		if err != nil {
			httpError(w, err)
			return
		}
		img, err := svc.run(r.Context(), job)
		if err != nil {
			httpError(w, err)
			return
		}

		var b bytes.Buffer
		if err := output.Encode(&b, img, format); err != nil {
			httpError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/"+format.String())
		w.Header().Set("Content-Length", strconv.Itoa(b.Len()))
		if _, err := w.Write(b.Bytes()); err != nil {
			log.Printf("write render response: %v", err)
		}
	}
}

func httpError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, mandel.ErrInvalidConfig):
		code = http.StatusBadRequest
	case errors.Is(err, mandel.ErrTooLarge):
		code = http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled):
		code = http.StatusServiceUnavailable
	}
	http.Error(w, err.Error(), code)
}

// requestFromQuery reads a render request from URL parameters.
// Missing parameters keep their zero value and select the server defaults.
func requestFromQuery(q url.Values) (mandel.RenderRequest, error) {
	req := mandel.RenderRequest{
		Kernel:   q.Get("kernel"),
		Strategy: q.Get("strategy"),
		Palette:  q.Get("palette"),
	}
	if s := q.Get("region"); s != "" {
		region, err := mandel.LookupRegion(s)
		if err != nil {
			return req, err
		}
		req.Region = region
	}
	if s := q.Get("size"); s != "" {
		raster, err := mandel.ParseRaster(s)
		if err != nil {
			return req, err
		}
		req.Width, req.Height = raster.W, raster.H
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"iterate", &req.MaxIterate},
		{"threads", &req.Threads},
	}
	for _, p := range ints {
		if s := q.Get(p.name); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return req, fmt.Errorf("%w: %s=%q", mandel.ErrInvalidConfig, p.name, s)
			}
			*p.dst = v
		}
	}
	if s := q.Get("shift"); s != "" {
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return req, fmt.Errorf("%w: shift=%q", mandel.ErrInvalidConfig, s)
		}
		req.Shift = uint(v)
	}
	return req, nil
}

// websocketHandler handles the /ws endpoint.
// The client sends one RenderRequest; it gets Progress messages while the
// render runs and finally the PNG image as a binary message.
func websocketHandler(svc *renderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		ctx := r.Context()
		if err := serveRender(ctx, c, svc); err != nil {
			log.Printf("websocket %s: %v", r.RemoteAddr, err)
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	}
}

func serveRender(ctx context.Context, c *websocket.Conn, svc *renderService) error {
	var req mandel.RenderRequest
	if err := wsjson.Read(ctx, c, &req); err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	job, err := svc.prepare(req)
	if err != nil {
		c.Close(closeStatus(err), closeReason(err))
		return err
	}

	type result struct {
		png []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := svc.run(ctx, job)
		if err != nil {
			done <- result{err: err}
			return
		}
		var b bytes.Buffer
		err = png.Encode(&b, img)
		done <- result{png: b.Bytes(), err: err}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := wsjson.Write(ctx, c, job.progress()); err != nil {
				return fmt.Errorf("write progress: %w", err)
			}
		case res := <-done:
			if res.err != nil {
				c.Close(closeStatus(res.err), closeReason(res.err))
				return res.err
			}
			if err := wsjson.Write(ctx, c, job.progress()); err != nil {
				return fmt.Errorf("write progress: %w", err)
			}
			if err := c.Write(ctx, websocket.MessageBinary, res.png); err != nil {
				return fmt.Errorf("write image: %w", err)
			}
			return nil
		}
	}
}

func closeStatus(err error) websocket.StatusCode {
	switch {
	case errors.Is(err, mandel.ErrInvalidConfig):
		return websocket.StatusPolicyViolation
	case errors.Is(err, mandel.ErrTooLarge):
		return websocket.StatusMessageTooBig
	}
	return websocket.StatusInternalError
}

// closeReason fits err into the 123 bytes a close frame allows.
func closeReason(err error) string {
	s := err.Error()
	if len(s) > 123 {
		s = s[:123]
	}
	return s
}
