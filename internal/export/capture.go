// Package export turns the rendered preview into a paginated A4 PDF: the
// captured preview is page one, followed by one page per attached photo.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// Capturer renders an HTML page and returns it as a PNG raster image.
type Capturer interface {
	CapturePNG(ctx context.Context, html string) ([]byte, error)
}

// ChromeConfig configures the headless-Chrome capturer.
type ChromeConfig struct {
	// ChromePath overrides the browser executable; empty means chromedp's
	// default lookup.
	ChromePath string
	// NoSandbox is required when running as root (Docker).
	NoSandbox bool
	// Timeout bounds a single capture. Zero means 30s.
	Timeout time.Duration
}

// ChromeCapturer captures pages with a reusable headless browser. Call Close
// to release the browser process.
type ChromeCapturer struct {
	cfg         ChromeConfig
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromeCapturer prepares the exec allocator. The browser itself starts
// lazily on the first capture.
func NewChromeCapturer(cfg ChromeConfig) *ChromeCapturer {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromeCapturer{cfg: cfg, allocCtx: allocCtx, allocCancel: allocCancel}
}

// Close releases the browser allocator.
func (c *ChromeCapturer) Close() {
	c.allocCancel()
}

// CapturePNG writes html to a temp file, loads it in a fresh tab and takes a
// full-page screenshot against a white background.
func (c *ChromeCapturer) CapturePNG(ctx context.Context, html string) ([]byte, error) {
	f, err := os.CreateTemp("", "offerte-preview-*.html")
	if err != nil {
		return nil, fmt.Errorf("export: creating temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)
	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("export: closing temp file: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("export: resolving path: %w", err)
	}

	tabCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()
	tabCtx, timeoutCancel := context.WithTimeout(tabCtx, c.cfg.Timeout)
	defer timeoutCancel()
	// honor the caller's cancellation as well
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-tabCtx.Done():
		}
	}()

	var buf []byte
	err = chromedp.Run(tabCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 dpi
		chromedp.ActionFunc(func(ctx context.Context) error {
			// white page background, also behind transparent regions
			return emulation.SetDefaultBackgroundColorOverride().
				WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}).Do(ctx)
		}),
		chromedp.Navigate("file://"+abs),
		chromedp.WaitReady("body"),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("export: capturing preview: %w", err)
	}
	return buf, nil
}
