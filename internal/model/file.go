package model

import (
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the sortable text form used for created_at and uploaded_at.
// Legacy rows written by CURRENT_TIMESTAMP ("2006-01-02 15:04:05") sort correctly against it.
const TimestampLayout = "2006-01-02 15:04:05.000000"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

type File struct {
	ID         int64     `db:"id"`
	FolderID   int64     `db:"folder_id"`
	Filename   string    `db:"filename"` // Display name
	Filepath   string    `db:"filepath"` // Storage path of the payload
	FileSize   int64     `db:"file_size"`
	FileHash   string    `db:"file_hash"` // SHA-256 hex, empty if it could not be computed
	UploadedAt time.Time `db:"uploaded_at"`
}

// Extension returns the lowercased extension without the dot
func (f *File) Extension() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Filename)), ".")
}

func (f *File) IsPDF() bool {
	return f.Extension() == "pdf"
}

// IsDownloadable reports whether the file is opened externally rather than in the PDF viewer
func (f *File) IsDownloadable() bool {
	switch f.Extension() {
	case "docx", "doc", "xlsx", "xls":
		return true
	}
	return false
}

func (f *File) Icon() string {
	switch f.Extension() {
	case "pdf":
		return "📕"
	case "docx", "doc":
		return "📘"
	case "xlsx", "xls":
		return "📗"
	}
	return "📄"
}
