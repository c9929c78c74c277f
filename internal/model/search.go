package model

import (
	"time"
)

// SearchFilter criteria are combined with AND. Zero values add no constraint.
type SearchFilter struct {
	Filename  string // Case-insensitive substring
	Extension string // Without the dot, case-insensitive
	DateFrom  *time.Time
	DateTo    *time.Time
	MinSize   *int64
	MaxSize   *int64
	FolderID  *int64 // Folder and all its descendants
	Panel     *Panel
}

func (f SearchFilter) IsEmpty() bool {
	return f.Filename == "" &&
		f.Extension == "" &&
		f.DateFrom == nil &&
		f.DateTo == nil &&
		f.MinSize == nil &&
		f.MaxSize == nil &&
		f.FolderID == nil &&
		f.Panel == nil
}
