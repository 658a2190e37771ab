package sheets

import (
	"context"
	"studytrack/internal/core"
)

// Ports for outbound adapters.
type (
	RecordWriter interface {
		AppendRecord(ctx context.Context, r core.StudyRecord) (rowRef string, err error)
	}

	RecordDeleter interface {
		// DeleteRecord removes the row for the given record ID, if present.
		DeleteRecord(ctx context.Context, id int64) error
	}
)
