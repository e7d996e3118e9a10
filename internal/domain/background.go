package domain

// BackgroundKind tags the background descriptor variant.
type BackgroundKind string

const (
	BackgroundSolid      BackgroundKind = "solid"
	BackgroundGradient   BackgroundKind = "gradient"
	BackgroundImage      BackgroundKind = "image"
	BackgroundMultiImage BackgroundKind = "multi_image"
)

// ImageRef points at one background image. Exactly one of the fields is set:
// a stored object key, an absolute pasted URL, or a library asset id.
type ImageRef struct {
	StoredPath  string `json:"stored_path,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
	AssetID     string `json:"asset_id,omitempty"`
	Credit      string `json:"credit,omitempty"`
}

// ImageSlot is one of up to four positions in a multi-image background. The
// alternates, when present, are shuffle candidates for video background frames.
type ImageSlot struct {
	Image      ImageRef   `json:"image"`
	Alternates []ImageRef `json:"alternates,omitempty"`
}

// BackgroundDescriptor is the tagged union a slide stores. Resolution into
// fetchable URLs happens at render time; resolved URLs are never persisted.
type BackgroundDescriptor struct {
	Kind  BackgroundKind `json:"kind"`
	Color string         `json:"color,omitempty"` // solid
	From  string         `json:"from,omitempty"`  // gradient
	To    string         `json:"to,omitempty"`    // gradient
	Angle int            `json:"angle,omitempty"` // gradient
	Image ImageRef       `json:"image,omitempty"` // image
	Slots []ImageSlot    `json:"slots,omitempty"` // multi_image, 1-4 entries
}

// HasImages reports whether resolving this descriptor requires image lookups.
func (b BackgroundDescriptor) HasImages() bool {
	return b.Kind == BackgroundImage || b.Kind == BackgroundMultiImage
}
