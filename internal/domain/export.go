package domain

import (
	"fmt"
	"time"
)

// ExportStatus enumerates export run lifecycle states. Runs are terminal on
// ready or failed; a failed run is retried as a whole new run.
type ExportStatus string

const (
	ExportStatusPending ExportStatus = "pending"
	ExportStatusReady   ExportStatus = "ready"
	ExportStatusFailed  ExportStatus = "failed"
)

// ExportFormat enumerates supported raster formats.
type ExportFormat string

const (
	ExportFormatPNG  ExportFormat = "png"
	ExportFormatJPEG ExportFormat = "jpeg"
)

// ExportSize is a supported target pixel size.
type ExportSize struct {
	Width  int
	Height int
}

// SupportedExportSizes lists the pixel sizes the pipeline accepts.
var SupportedExportSizes = []ExportSize{
	{Width: 1080, Height: 1080},
	{Width: 1080, Height: 1350},
	{Width: 1080, Height: 1920},
}

// ParseExportSize maps a "WxH" string onto a supported size.
func ParseExportSize(s string) (ExportSize, bool) {
	for _, sz := range SupportedExportSizes {
		if s == sz.String() {
			return sz, true
		}
	}
	return ExportSize{}, false
}

// String renders the size as "WxH".
func (s ExportSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ExportRecord tracks one archive export run. Video-prep runs are ephemeral
// and keep no record.
type ExportRecord struct {
	ID          string
	CarouselID  string
	UserID      string
	Status      ExportStatus
	Format      ExportFormat
	Size        ExportSize
	ArchivePath string
	Error       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
