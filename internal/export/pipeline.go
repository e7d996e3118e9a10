// Package export orchestrates per-slide HTML generation, screenshot capture
// and artifact assembly for the three export shapes: single-slide image,
// static archive, and layered video frames.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"slideforge/internal/background"
	"slideforge/internal/domain"
	"slideforge/internal/rasterize"
	"slideforge/internal/render"
	"slideforge/pkg/zip"
)

// Rasterizer is the capture surface of one browser session.
type Rasterizer interface {
	Capture(ctx context.Context, spec rasterize.CaptureSpec) ([]byte, error)
	Close() error
}

// SessionFactory opens the browser session an export run shares across its
// slides.
type SessionFactory func(ctx context.Context) (Rasterizer, error)

// ObjectStore is the upload/signing surface the pipeline needs.
type ObjectStore interface {
	Write(ctx context.Context, key string, data []byte, contentType string) (string, error)
	SignedURL(key string, ttl time.Duration) (string, error)
}

// BackgroundResolver resolves a background descriptor into fetchable URLs.
type BackgroundResolver interface {
	Resolve(ctx context.Context, d domain.BackgroundDescriptor) (background.Resolved, error)
}

// Pipeline wires the collaborators of the rasterization/export core.
type Pipeline struct {
	Templates  domain.TemplateRepository
	Slides     domain.SlideRepository
	Carousels  domain.CarouselRepository
	Exports    domain.ExportRepository
	Brands     domain.BrandKitRepository
	Store      ObjectStore
	Resolver   BackgroundResolver
	NewSession SessionFactory
	SignedTTL  time.Duration
	Log        zerolog.Logger
}

// SlideFrames is the video-prep outcome for one slide.
type SlideFrames struct {
	SlideID        string   `json:"slide_id"`
	BackgroundURLs []string `json:"background_urls"`
	OverlayURL     *string  `json:"overlay_url"`
}

// VideoPrepResult is returned directly to the caller; video-prep runs keep no
// export record.
type VideoPrepResult struct {
	RunID  string        `json:"run_id"`
	Slides []SlideFrames `json:"slides"`
}

// slideContext carries everything needed to render one slide.
type slideContext struct {
	slide    domain.SlideData
	template *domain.TemplateConfig
	brand    *domain.BrandKit
	resolved background.Resolved
	index    int
	total    int
}

// RenderSlide rasterizes a single slide at the target format and size.
func (p *Pipeline) RenderSlide(ctx context.Context, slideID string, format domain.ExportFormat, size domain.ExportSize) ([]byte, string, error) {
	slide, err := p.Slides.GetByID(ctx, slideID)
	if err != nil {
		return nil, "", fmt.Errorf("load slide: %w", err)
	}
	carousel, err := p.Carousels.GetByID(ctx, slide.CarouselID)
	if err != nil {
		return nil, "", fmt.Errorf("load carousel: %w", err)
	}
	slides, err := p.Slides.ListByCarousel(ctx, carousel.ID)
	if err != nil {
		return nil, "", fmt.Errorf("list slides: %w", err)
	}

	sc, err := p.prepareSlide(ctx, *slide, carousel, slide.Position, len(slides))
	if err != nil {
		return nil, "", err
	}

	session, err := p.NewSession(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrRasterize, err)
	}
	defer func() { _ = session.Close() }()

	data, err := p.captureSlide(ctx, session, sc, format, size, render.ModeFull)
	if err != nil {
		return nil, "", err
	}
	return data, contentType(format), nil
}

// RunArchive executes the full archive pipeline for one export record. The
// record ends ready with the archive path, or failed; there is no partial
// success.
func (p *Pipeline) RunArchive(ctx context.Context, carouselID, exportID string) error {
	exp, err := p.Exports.GetByID(ctx, exportID)
	if err != nil {
		return fmt.Errorf("load export: %w", err)
	}
	if exp.CarouselID != carouselID {
		return fmt.Errorf("export %s does not belong to carousel %s: %w", exportID, carouselID, domain.ErrNotFound)
	}
	// Optimistic single-writer guard: never re-process a finished run.
	if err := p.Exports.ClaimPending(ctx, exportID); err != nil {
		return err
	}

	if runErr := p.runArchive(ctx, exp); runErr != nil {
		// Best effort: the original error stays the surfaced one.
		if markErr := p.Exports.MarkFailed(ctx, exportID, runErr.Error()); markErr != nil {
			p.Log.Error().Err(markErr).Str("export_id", exportID).Msg("failed to mark export failed")
		}
		return runErr
	}
	return nil
}

func (p *Pipeline) runArchive(ctx context.Context, exp *domain.ExportRecord) error {
	carousel, err := p.Carousels.GetByID(ctx, exp.CarouselID)
	if err != nil {
		return fmt.Errorf("load carousel: %w", err)
	}
	slides, err := p.Slides.ListByCarousel(ctx, carousel.ID)
	if err != nil {
		return fmt.Errorf("list slides: %w", err)
	}
	if len(slides) == 0 {
		return fmt.Errorf("carousel %s has no slides: %w", carousel.ID, domain.ErrInvalidInput)
	}

	session, err := p.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRasterize, err)
	}
	defer func() { _ = session.Close() }()

	var assets []zip.Asset
	var credits []string
	for i, slide := range slides {
		sc, err := p.prepareSlide(ctx, slide, carousel, i+1, len(slides))
		if err != nil {
			return err
		}
		credits = append(credits, sc.resolved.Credits...)

		data, err := p.captureSlide(ctx, session, sc, exp.Format, exp.Size, render.ModeFull)
		if err != nil {
			return err
		}
		assets = append(assets, zip.Asset{
			Filename: fmt.Sprintf("%02d.%s", i+1, extension(exp.Format)),
			MIME:     contentType(exp.Format),
			Data:     data,
		})
	}

	if sidecar := sidecarText(carousel.Caption, credits); sidecar != "" {
		assets = append(assets, zip.Asset{Filename: "caption.txt", MIME: "text/plain", Data: []byte(sidecar)})
	}

	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		return fmt.Errorf("assemble archive: %w", err)
	}
	key := fmt.Sprintf("exports/%s/%s/carousel.zip", carousel.UserID, exp.ID)
	path, err := p.Store.Write(ctx, key, archive, "application/zip")
	if err != nil {
		return fmt.Errorf("%w: upload archive: %v", domain.ErrStorage, err)
	}
	if err := p.Exports.MarkReady(ctx, exp.ID, path); err != nil {
		return fmt.Errorf("mark export ready: %w", err)
	}
	p.Log.Info().Str("export_id", exp.ID).Str("archive", path).Int("slides", len(slides)).Msg("archive export ready")
	return nil
}

// RunVideoPrep captures, per slide, one background frame per variant image
// (capped) plus one transparent overlay frame shared by all variants.
func (p *Pipeline) RunVideoPrep(ctx context.Context, carouselID string) (*VideoPrepResult, error) {
	carousel, err := p.Carousels.GetByID(ctx, carouselID)
	if err != nil {
		return nil, fmt.Errorf("load carousel: %w", err)
	}
	slides, err := p.Slides.ListByCarousel(ctx, carousel.ID)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("carousel %s has no slides: %w", carousel.ID, domain.ErrInvalidInput)
	}

	session, err := p.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRasterize, err)
	}
	defer func() { _ = session.Close() }()

	runID := uuid.NewString()
	size := domain.ExportSize{Width: 1080, Height: 1920}
	result := &VideoPrepResult{RunID: runID}

	for i, slide := range slides {
		sc, err := p.prepareSlide(ctx, slide, carousel, i+1, len(slides))
		if err != nil {
			return nil, err
		}

		frames := SlideFrames{SlideID: slide.ID}
		variants := sc.resolved.Variants
		if len(variants) == 0 {
			// Solid or gradient background still yields one frame.
			variants = []string{""}
		}
		for v, variant := range variants {
			scv := sc
			if variant != "" {
				scv.resolved.URLs = []string{variant}
			}
			data, err := p.captureSlide(ctx, session, scv, domain.ExportFormatPNG, size, render.ModeBackground)
			if err != nil {
				return nil, err
			}
			key := fmt.Sprintf("video/%s/%s/slide-%02d/bg-%02d.png", carousel.UserID, runID, i+1, v+1)
			url, err := p.uploadSigned(ctx, key, data, "image/png")
			if err != nil {
				return nil, err
			}
			frames.BackgroundURLs = append(frames.BackgroundURLs, url)
		}

		// The overlay frame renders once and is reused across every
		// background variant of the slide.
		model := p.buildModel(sc, size)
		if hasOverlayContent(model) {
			data, err := p.captureModel(ctx, session, model, domain.ExportFormatPNG, size, render.ModeOverlay)
			if err != nil {
				return nil, err
			}
			key := fmt.Sprintf("video/%s/%s/slide-%02d/overlay.png", carousel.UserID, runID, i+1)
			url, err := p.uploadSigned(ctx, key, data, "image/png")
			if err != nil {
				return nil, err
			}
			frames.OverlayURL = &url
		}
		result.Slides = append(result.Slides, frames)
	}
	return result, nil
}

// prepareSlide resolves template, brand kit and background for one slide. A
// missing template is fatal for the run; individual background images fail
// softly inside the resolver.
func (p *Pipeline) prepareSlide(ctx context.Context, slide domain.SlideData, carousel *domain.Carousel, index, total int) (slideContext, error) {
	templateID := slide.TemplateID
	if templateID == "" {
		templateID = carousel.DefaultTemplateID
	}
	if templateID == "" {
		return slideContext{}, fmt.Errorf("slide %d: %w", index, domain.ErrNoTemplate)
	}
	tpl, err := p.Templates.GetByID(ctx, templateID)
	if err != nil {
		return slideContext{}, fmt.Errorf("slide %d: template %s: %w", index, templateID, domain.ErrNoTemplate)
	}

	var brand *domain.BrandKit
	if p.Brands != nil {
		if b, err := p.Brands.GetByUser(ctx, carousel.UserID); err == nil {
			brand = b
		}
	}

	desc := tpl.Background
	if slide.Background != nil {
		desc = *slide.Background
	}
	resolved, err := p.Resolver.Resolve(ctx, desc)
	if err != nil {
		return slideContext{}, fmt.Errorf("slide %d: %w", index, err)
	}

	return slideContext{
		slide:    slide,
		template: tpl,
		brand:    brand,
		resolved: resolved,
		index:    index,
		total:    total,
	}, nil
}

func (p *Pipeline) buildModel(sc slideContext, size domain.ExportSize) render.SlideRenderModel {
	// Fonts render scaled by the height ratio; feeding that ratio into the
	// wrap keeps line breaks identical between preview and export sizes.
	textScale := 1.0
	if sc.template.Height > 0 && size.Height > 0 {
		textScale = float64(size.Height) / float64(sc.template.Height)
	}
	model := render.Build(render.BuildInput{
		Template:      sc.template,
		Slide:         &sc.slide,
		Brand:         sc.brand,
		SlideIndex:    sc.index,
		TotalSlides:   sc.total,
		ZoneOverrides: sc.slide.ZoneOverrides,
		TextScale:     textScale,
		ImageURLs:     sc.resolved.URLs,
	})
	return render.ScaleTo(model, size.Width, size.Height)
}

func (p *Pipeline) captureSlide(ctx context.Context, session Rasterizer, sc slideContext, format domain.ExportFormat, size domain.ExportSize, mode render.Mode) ([]byte, error) {
	return p.captureModel(ctx, session, p.buildModel(sc, size), format, size, mode)
}

func (p *Pipeline) captureModel(ctx context.Context, session Rasterizer, model render.SlideRenderModel, format domain.ExportFormat, size domain.ExportSize, mode render.Mode) ([]byte, error) {
	doc, err := render.HTML(model, mode)
	if err != nil {
		return nil, err
	}
	data, err := session.Capture(ctx, rasterize.CaptureSpec{
		HTML:        doc,
		Width:       size.Width,
		Height:      size.Height,
		Selector:    render.RootSelector,
		Format:      string(format),
		Transparent: mode == render.ModeOverlay,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRasterize, err)
	}
	return data, nil
}

func (p *Pipeline) uploadSigned(ctx context.Context, key string, data []byte, mime string) (string, error) {
	path, err := p.Store.Write(ctx, key, data, mime)
	if err != nil {
		return "", fmt.Errorf("%w: upload %s: %v", domain.ErrStorage, key, err)
	}
	url, err := p.Store.SignedURL(path, p.signedTTL())
	if err != nil {
		return "", fmt.Errorf("%w: sign %s: %v", domain.ErrStorage, path, err)
	}
	return url, nil
}

func (p *Pipeline) signedTTL() time.Duration {
	if p.SignedTTL <= 0 {
		return time.Hour
	}
	return p.SignedTTL
}

func hasOverlayContent(model render.SlideRenderModel) bool {
	if len(model.Blocks) > 0 {
		return true
	}
	c := model.Chrome
	return c.ShowCounter || c.ShowWatermark || c.ShowSwipeHint
}

func sidecarText(caption string, credits []string) string {
	var parts []string
	if strings.TrimSpace(caption) != "" {
		parts = append(parts, strings.TrimSpace(caption))
	}
	if len(credits) > 0 {
		seen := make(map[string]bool)
		var lines []string
		for _, c := range credits {
			c = strings.TrimSpace(c)
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			lines = append(lines, c)
		}
		if len(lines) > 0 {
			parts = append(parts, "Credits:\n"+strings.Join(lines, "\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}

func contentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

func extension(format domain.ExportFormat) string {
	if format == domain.ExportFormatJPEG {
		return "jpeg"
	}
	return "png"
}
