// Package background resolves stored background descriptors into fetchable
// image URLs at render time. Resolved URLs are short-lived and never
// persisted.
package background

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"slideforge/internal/cache"
	"slideforge/internal/domain"
)

// slotConcurrency bounds how many image slots of one slide resolve in
// parallel. Slides themselves are never overlapped.
const slotConcurrency = 4

// MaxVideoVariants caps how many background variants one slide contributes to
// a video-prep run.
const MaxVideoVariants = 4

// SignedURLIssuer issues time-boxed read URLs for stored object keys.
type SignedURLIssuer interface {
	SignedURL(key string, ttl time.Duration) (string, error)
}

// Resolved is the render-ready outcome for one slide background.
type Resolved struct {
	// URLs holds the resolved slot images in slot order; failed slots are
	// absent. Empty for solid and gradient backgrounds.
	URLs []string
	// Variants lists background alternatives for video frames, primary
	// images first, capped at MaxVideoVariants.
	Variants []string
	// Credits accumulates third-party attribution for the images used.
	Credits []string
}

// Resolver turns background descriptors into signed, fetchable URLs.
type Resolver struct {
	store  SignedURLIssuer
	assets domain.AssetPathLookup
	cache  *cache.Cache
	ttl    time.Duration
	log    zerolog.Logger
}

// NewResolver builds a Resolver. The cache holds signed URLs for slightly
// less than the signing TTL so a cached URL is always still valid when used.
func NewResolver(store SignedURLIssuer, assets domain.AssetPathLookup, ttl time.Duration, log zerolog.Logger) *Resolver {
	cacheTTL := ttl - ttl/4
	if cacheTTL <= 0 {
		cacheTTL = ttl
	}
	return &Resolver{
		store:  store,
		assets: assets,
		cache:  cache.New(512, cacheTTL),
		ttl:    ttl,
		log:    log,
	}
}

// Resolve resolves every image reference of the descriptor. Individual
// unresolvable images are skipped; the error is domain.ErrNoBackground only
// when an image background ends up with zero usable images.
func (r *Resolver) Resolve(ctx context.Context, d domain.BackgroundDescriptor) (Resolved, error) {
	switch d.Kind {
	case domain.BackgroundSolid, domain.BackgroundGradient:
		return Resolved{}, nil
	case domain.BackgroundImage:
		return r.resolveSingle(ctx, d.Image)
	case domain.BackgroundMultiImage:
		return r.resolveSlots(ctx, d.Slots)
	default:
		return Resolved{}, fmt.Errorf("background: unknown kind %q: %w", d.Kind, domain.ErrInvalidInput)
	}
}

func (r *Resolver) resolveSingle(ctx context.Context, ref domain.ImageRef) (Resolved, error) {
	url, err := r.resolveRef(ctx, ref)
	if err != nil {
		return Resolved{}, fmt.Errorf("background: image unresolvable: %w", domain.ErrNoBackground)
	}
	out := Resolved{URLs: []string{url}, Variants: []string{url}}
	if ref.Credit != "" {
		out.Credits = append(out.Credits, ref.Credit)
	}
	return out, nil
}

func (r *Resolver) resolveSlots(ctx context.Context, slots []domain.ImageSlot) (Resolved, error) {
	type slotResult struct {
		url        string
		alternates []string
		credit     string
		ok         bool
	}
	results := make([]slotResult, len(slots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(slotConcurrency)
	for i, slot := range slots {
		i, slot := i, slot
		g.Go(func() error {
			url, err := r.resolveRef(gctx, slot.Image)
			if err != nil {
				// Soft failure: the slide renders without this slot.
				r.log.Warn().Err(err).Int("slot", i+1).Msg("background slot skipped")
				return nil
			}
			res := slotResult{url: url, credit: slot.Image.Credit, ok: true}
			for _, alt := range slot.Alternates {
				altURL, err := r.resolveRef(gctx, alt)
				if err != nil {
					r.log.Warn().Err(err).Int("slot", i+1).Msg("background alternate skipped")
					continue
				}
				res.alternates = append(res.alternates, altURL)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Resolved{}, err
	}

	var out Resolved
	for _, res := range results {
		if !res.ok {
			continue
		}
		out.URLs = append(out.URLs, res.url)
		if res.credit != "" {
			out.Credits = append(out.Credits, res.credit)
		}
		if len(out.Variants) < MaxVideoVariants {
			out.Variants = append(out.Variants, res.url)
		}
		for _, alt := range res.alternates {
			if len(out.Variants) >= MaxVideoVariants {
				break
			}
			out.Variants = append(out.Variants, alt)
		}
	}
	if len(out.URLs) == 0 {
		return Resolved{}, fmt.Errorf("background: no slot resolvable: %w", domain.ErrNoBackground)
	}
	return out, nil
}

// resolveRef maps one image reference onto a fetchable URL: pasted absolute
// URLs pass through, library assets resolve to their stored path first, stored
// paths get a signed URL.
func (r *Resolver) resolveRef(ctx context.Context, ref domain.ImageRef) (string, error) {
	switch {
	case ref.ExternalURL != "":
		lower := strings.ToLower(ref.ExternalURL)
		if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
			return "", fmt.Errorf("background: not an absolute url: %q", ref.ExternalURL)
		}
		return ref.ExternalURL, nil
	case ref.AssetID != "":
		if r.assets == nil {
			return "", fmt.Errorf("background: no asset lookup configured")
		}
		path, err := r.assets.StoredPath(ctx, ref.AssetID)
		if err != nil {
			return "", fmt.Errorf("background: asset %s: %w", ref.AssetID, err)
		}
		return r.signPath(path)
	case ref.StoredPath != "":
		return r.signPath(ref.StoredPath)
	default:
		return "", fmt.Errorf("background: empty image reference")
	}
}

func (r *Resolver) signPath(path string) (string, error) {
	if url, ok := r.cache.Get(path); ok {
		return url, nil
	}
	url, err := r.store.SignedURL(path, r.ttl)
	if err != nil {
		return "", fmt.Errorf("background: sign %s: %w", path, err)
	}
	r.cache.Set(path, url)
	return url, nil
}
