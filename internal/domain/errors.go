package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNoTemplate       = errors.New("no template resolvable")
	ErrNoBackground     = errors.New("no usable background")
	ErrExportNotPending = errors.New("export already processed")
	ErrRasterize        = errors.New("rasterization failed")
	ErrStorage          = errors.New("storage failure")
	ErrInvalidInput     = errors.New("invalid input")
)
