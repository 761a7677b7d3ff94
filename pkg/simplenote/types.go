package simplenote

import "github.com/himanishpuri/SimpleNote/pkg/simplenote/export"

// ExportResult describes a file written by Export.
type ExportResult struct {
	Path   string        // Where the file was written
	Format export.Format // Format that was requested
	Size   int           // Size in bytes
}
