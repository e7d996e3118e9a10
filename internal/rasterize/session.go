// Package rasterize drives a headless Chrome instance to screenshot generated
// slide documents. One Session is shared across the slides of an export run;
// every capture opens and closes its own page.
package rasterize

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config holds rasterizer settings.
type Config struct {
	// Bin optionally pins the Chrome binary; empty lets the launcher decide.
	Bin string
	// NavTimeout bounds content load and selector-visibility waits.
	NavTimeout time.Duration
	// SettleDelay is the fixed pause after visibility, absorbing image
	// decode and layout jitter before capture.
	SettleDelay time.Duration
}

func (c Config) navTimeout() time.Duration {
	if c.NavTimeout <= 0 {
		return 15 * time.Second
	}
	return c.NavTimeout
}

func (c Config) settleDelay() time.Duration {
	if c.SettleDelay <= 0 {
		return 150 * time.Millisecond
	}
	return c.SettleDelay
}

// CaptureSpec describes one screenshot.
type CaptureSpec struct {
	HTML     string
	Width    int
	Height   int
	Selector string
	// Format is "png" or "jpeg".
	Format  string
	Quality int
	// Transparent renders the page on a transparent base so PNG captures
	// keep alpha where the document draws nothing.
	Transparent bool
}

// Session wraps one launched browser.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	cfg      Config
}

// NewSession launches headless Chrome and connects to it.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	l := launcher.New().Headless(true)
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("rasterize: launch chrome: %w", err)
	}
	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("rasterize: connect chrome: %w", err)
	}
	return &Session{browser: browser, launcher: l, cfg: cfg}, nil
}

// Capture loads the document into a fresh page sized to the exact target
// dimensions, waits for the selected element to become visible, lets the page
// settle, and screenshots that element only.
func (s *Session) Capture(ctx context.Context, spec CaptureSpec) ([]byte, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("rasterize: open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx)
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             spec.Width,
		Height:            spec.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("rasterize: set viewport: %w", err)
	}
	if spec.Transparent {
		alpha := 0.0
		override := proto.EmulationSetDefaultBackgroundColorOverride{
			Color: &proto.DOMRGBA{R: 0, G: 0, B: 0, A: &alpha},
		}
		if err := override.Call(page); err != nil {
			return nil, fmt.Errorf("rasterize: transparent base: %w", err)
		}
	}
	if err := page.Timeout(s.cfg.navTimeout()).SetDocumentContent(spec.HTML); err != nil {
		return nil, fmt.Errorf("rasterize: load content: %w", err)
	}

	el, err := page.Timeout(s.cfg.navTimeout()).Element(spec.Selector)
	if err != nil {
		return nil, fmt.Errorf("rasterize: element %q not found: %w", spec.Selector, err)
	}
	if err := el.Timeout(s.cfg.navTimeout()).WaitVisible(); err != nil {
		return nil, fmt.Errorf("rasterize: element %q never visible: %w", spec.Selector, err)
	}
	time.Sleep(s.cfg.settleDelay())

	format := proto.PageCaptureScreenshotFormatPng
	quality := 0
	if spec.Format == "jpeg" {
		format = proto.PageCaptureScreenshotFormatJpeg
		quality = spec.Quality
		if quality <= 0 {
			quality = 90
		}
	}
	data, err := el.Screenshot(format, quality)
	if err != nil {
		return nil, fmt.Errorf("rasterize: screenshot: %w", err)
	}
	return data, nil
}

// Close shuts the browser down and cleans the launcher's temp state. Safe to
// call after a failed run; the pipeline invokes it unconditionally.
func (s *Session) Close() error {
	if s == nil || s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.launcher.Cleanup()
	return err
}
