package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/docportal/internal/model"
)

var (
	ErrFolderNotFound = errors.New("folder not found")
)

type FolderRepository interface {
	Create(folder *model.Folder) error
	ByID(id int64) (*model.Folder, error)
	All(panel *model.Panel) ([]*model.Folder, error)
	Children(parentID *int64, panel *model.Panel) ([]*model.Folder, error)
	Rename(id int64, name string) error
	Path(id int64) ([]*model.Folder, error)
	SubtreeIDs(id int64) ([]int64, error)
	DeleteTree(ids []int64) error
}

type folderRepository struct {
	db *sqlx.DB
}

func NewFolderRepository(db *sqlx.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(folder *model.Folder) error {
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now()
	}
	folder.CreatedAt = folder.CreatedAt.UTC().Truncate(time.Microsecond)

	query := `INSERT INTO folders (name, parent_id, panel, created_at) VALUES (?, ?, ?, ?)`

	result, err := r.db.Exec(query, folder.Name, folder.ParentID, folder.Panel, model.FormatTimestamp(folder.CreatedAt))
	if err != nil {
		return storageError("create folder", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storageError("read folder id", err)
	}
	folder.ID = id

	return nil
}

func (r *folderRepository) ByID(id int64) (*model.Folder, error) {
	folder := &model.Folder{}
	query := `SELECT * FROM folders WHERE id = ?`

	err := r.db.Get(folder, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFolderNotFound
	}
	if err != nil {
		return nil, storageError("get folder", err)
	}

	return folder, nil
}

func (r *folderRepository) All(panel *model.Panel) ([]*model.Folder, error) {
	var folders []*model.Folder
	var err error

	if panel != nil {
		err = r.db.Select(&folders, `SELECT * FROM folders WHERE panel = ? ORDER BY name ASC, id ASC`, *panel)
	} else {
		err = r.db.Select(&folders, `SELECT * FROM folders ORDER BY name ASC, id ASC`)
	}
	if err != nil {
		return nil, storageError("list folders", err)
	}

	return folders, nil
}

// Children returns root folders when parentID is nil (optionally limited to
// one panel) and the direct children of parentID otherwise. Children always
// share their parent's panel, so the panel filter only applies to roots.
func (r *folderRepository) Children(parentID *int64, panel *model.Panel) ([]*model.Folder, error) {
	var folders []*model.Folder
	var err error

	switch {
	case parentID != nil:
		err = r.db.Select(&folders, `SELECT * FROM folders WHERE parent_id = ? ORDER BY name ASC, id ASC`, *parentID)
	case panel != nil:
		err = r.db.Select(&folders, `SELECT * FROM folders WHERE parent_id IS NULL AND panel = ? ORDER BY name ASC, id ASC`, *panel)
	default:
		err = r.db.Select(&folders, `SELECT * FROM folders WHERE parent_id IS NULL ORDER BY name ASC, id ASC`)
	}
	if err != nil {
		return nil, storageError("list subfolders", err)
	}

	return folders, nil
}

func (r *folderRepository) Rename(id int64, name string) error {
	result, err := r.db.Exec(`UPDATE folders SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return storageError("rename folder", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("rename folder", err)
	}

	if rows == 0 {
		return ErrFolderNotFound
	}

	return nil
}

// Path walks parent links from id up to its root and returns the folders in
// root-first order. A missing parent or a revisited folder ends the walk with
// what was collected so far. An unknown id yields an empty path.
func (r *folderRepository) Path(id int64) ([]*model.Folder, error) {
	var path []*model.Folder
	seen := make(map[int64]bool)

	current := &id
	for current != nil && !seen[*current] && len(path) <= MaxFolderDepth {
		folder, err := r.ByID(*current)
		if errors.Is(err, ErrFolderNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}

		seen[folder.ID] = true
		path = append(path, folder)
		current = folder.ParentID
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// SubtreeIDs returns the ids of every descendant of id, level by level.
func (r *folderRepository) SubtreeIDs(id int64) ([]int64, error) {
	var ids []int64
	seen := map[int64]bool{id: true}

	frontier := []int64{id}
	for depth := 0; len(frontier) > 0; depth++ {
		if depth > MaxFolderDepth {
			return nil, fmt.Errorf("%w: folder %d is nested deeper than %d levels", ErrHierarchyCorrupt, id, MaxFolderDepth)
		}

		query, args, err := sqlx.In(`SELECT id FROM folders WHERE parent_id IN (?) ORDER BY name ASC, id ASC`, frontier)
		if err != nil {
			return nil, fmt.Errorf("failed to build subtree query: %w", err)
		}

		var children []int64
		err = r.db.Select(&children, r.db.Rebind(query), args...)
		if err != nil {
			return nil, storageError("list subtree", err)
		}

		frontier = frontier[:0]
		for _, child := range children {
			if seen[child] {
				return nil, fmt.Errorf("%w: folder %d appears twice below folder %d", ErrHierarchyCorrupt, child, id)
			}
			seen[child] = true
			ids = append(ids, child)
			frontier = append(frontier, child)
		}
	}

	return ids, nil
}

// DeleteTree removes the given folders and every file they own in one
// transaction. It does not rely on foreign key enforcement.
func (r *folderRepository) DeleteTree(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return storageError("begin folder delete", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := sqlx.In(`DELETE FROM files WHERE folder_id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("failed to build file delete: %w", err)
	}
	_, err = tx.Exec(tx.Rebind(query), args...)
	if err != nil {
		return storageError("delete folder files", err)
	}

	query, args, err = sqlx.In(`DELETE FROM folders WHERE id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("failed to build folder delete: %w", err)
	}
	result, err := tx.Exec(tx.Rebind(query), args...)
	if err != nil {
		return storageError("delete folders", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("delete folders", err)
	}
	if rows == 0 {
		return ErrFolderNotFound
	}

	err = tx.Commit()
	if err != nil {
		return storageError("commit folder delete", err)
	}

	return nil
}
