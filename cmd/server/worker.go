package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"sync/atomic"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/buffer"
	"github.com/marben/intfract/output"
	"github.com/marben/intfract/palette"
	"github.com/marben/intfract/render"
)

const (
	// maxThreads bounds the worker goroutines a single request may ask for.
	maxThreads = 256

	// maxIterate bounds the iteration cap a single request may ask for.
	maxIterate = 1 << 20
)

// renderService runs render jobs, at most cap(sem) at a time.
type renderService struct {
	defaults render.Config
	sem      chan struct{}

	active int
	m      sync.Mutex
}

func newRenderService(defaults render.Config, concurrent int) *renderService {
	return &renderService{
		defaults: defaults,
		sem:      make(chan struct{}, concurrent),
	}
}

// renderJob is one validated request with its column progress.
type renderJob struct {
	cfg     render.Config
	painter palette.Painter
	buf     *buffer.Buffer // allocated once the job holds a slot

	done atomic.Int64
}

// prepare validates req. Nothing is allocated or computed yet, so a rejected
// or queued request costs nothing.
func (s *renderService) prepare(req mandel.RenderRequest) (*renderJob, error) {
	cfg, err := render.FromRequest(req, s.defaults)
	if err != nil {
		return nil, err
	}
	if cfg.Threads > maxThreads {
		return nil, fmt.Errorf("%w: %d threads, at most %d", mandel.ErrInvalidConfig, cfg.Threads, maxThreads)
	}
	if cfg.MaxIterate > maxIterate {
		return nil, fmt.Errorf("%w: max iterate %d, at most %d", mandel.ErrInvalidConfig, cfg.MaxIterate, maxIterate)
	}
	p, err := palette.Parse(req.Palette)
	if err != nil {
		return nil, err
	}
	if err := buffer.Check(cfg.Raster); err != nil {
		return nil, err
	}
	job := &renderJob{
		cfg:     cfg,
		painter: palette.Painter{Palette: p, MaxIterate: cfg.MaxIterate},
	}
	job.cfg.OnColumn = func(int, int) { job.done.Add(1) }
	return job, nil
}

func (j *renderJob) progress() mandel.Progress {
	return mandel.Progress{Done: int(j.done.Load()), Total: j.cfg.Raster.W}
}

// run waits for a free slot, allocates the buffer and renders the job.
// Once started a render is not interrupted; ctx only bounds the wait.
func (s *renderService) run(ctx context.Context, job *renderJob) (image.Image, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-s.sem }()

	s.incActive()
	defer s.decActive()

	buf, err := buffer.NewFor(job.cfg.Raster)
	if err != nil {
		return nil, err
	}
	job.buf = buf
	if err := render.Render(job.buf, job.cfg); err != nil {
		return nil, err
	}
	return job.painter.Image(job.buf), nil
}

// RenderPNG implements mandel.PNGRenderer for irpc clients.
// The render shares the slots of the web clients.
func (s *renderService) RenderPNG(ctx context.Context, req mandel.RenderRequest) ([]byte, error) {
	job, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	img, err := s.run(ctx, job)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := output.Encode(&b, img, output.PNG); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return b.Bytes(), nil
}

func (s *renderService) incActive() {
	s.m.Lock()
	s.active++
	a := s.active
	s.m.Unlock()

	log.Printf("active renders: %d", a)
}

func (s *renderService) decActive() {
	s.m.Lock()
	s.active--
	a := s.active
	s.m.Unlock()

	log.Printf("active renders: %d", a)
}

var _ mandel.PNGRenderer = (*renderService)(nil)
