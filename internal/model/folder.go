package model

import (
	"time"
)

type Folder struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	ParentID  *int64    `db:"parent_id"` // Nil for root folders
	Panel     Panel     `db:"panel"`
	CreatedAt time.Time `db:"created_at"`
}

func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

// FolderNode is a folder with its children, used for tree views
type FolderNode struct {
	Folder    *Folder
	FileCount int // Recursive
	Children  []*FolderNode
}
