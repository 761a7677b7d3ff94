package simplenote

import (
	"errors"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/storage"
)

var (
	ErrSongNotFound  = storage.ErrSongNotFound
	ErrExportFailed  = errors.New("export failed")
	ErrUnknownFormat = export.ErrUnknownFormat
	ErrUnknownStyle  = errors.New("unknown notation style")
)
