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
	ErrFileNotFound = errors.New("file not found")
)

type FileRepository interface {
	Create(file *model.File) error
	ByID(id int64) (*model.File, error)
	InFolder(folderID int64) ([]*model.File, error)
	InFolders(folderIDs []int64) ([]*model.File, error)
	ByPanel(panel model.Panel) ([]*model.File, error)
	Count(folderID int64) (int, error)
	CountByFolder() (map[int64]int, error)
	Delete(id int64) error
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	file.UploadedAt = file.UploadedAt.UTC().Truncate(time.Microsecond)

	query := `INSERT INTO files (folder_id, filename, filepath, file_size, file_hash, uploaded_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		file.FolderID,
		file.Filename,
		file.Filepath,
		file.FileSize,
		file.FileHash,
		model.FormatTimestamp(file.UploadedAt),
	)
	if err != nil {
		return storageError("create file", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storageError("read file id", err)
	}
	file.ID = id

	return nil
}

func (r *fileRepository) ByID(id int64) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE id = ?`

	err := r.db.Get(file, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, storageError("get file", err)
	}

	return file, nil
}

// InFolder returns the files directly in a folder, newest first
func (r *fileRepository) InFolder(folderID int64) ([]*model.File, error) {
	var files []*model.File
	query := `SELECT * FROM files WHERE folder_id = ? ORDER BY uploaded_at DESC, id ASC`

	err := r.db.Select(&files, query, folderID)
	if err != nil {
		return nil, storageError("list files", err)
	}

	return files, nil
}

func (r *fileRepository) InFolders(folderIDs []int64) ([]*model.File, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM files WHERE folder_id IN (?) ORDER BY id ASC`, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build file query: %w", err)
	}

	var files []*model.File
	err = r.db.Select(&files, r.db.Rebind(query), args...)
	if err != nil {
		return nil, storageError("list files", err)
	}

	return files, nil
}

func (r *fileRepository) ByPanel(panel model.Panel) ([]*model.File, error) {
	var files []*model.File
	query := `SELECT f.* FROM files f
	          INNER JOIN folders fo ON f.folder_id = fo.id
	          WHERE fo.panel = ?
	          ORDER BY f.uploaded_at DESC, f.id ASC`

	err := r.db.Select(&files, query, panel)
	if err != nil {
		return nil, storageError("list panel files", err)
	}

	return files, nil
}

func (r *fileRepository) Count(folderID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM files WHERE folder_id = ?`, folderID).Scan(&count)
	if err != nil {
		return 0, storageError("count files", err)
	}
	return count, nil
}

// CountByFolder returns the number of files directly in each folder that has any
func (r *fileRepository) CountByFolder() (map[int64]int, error) {
	var rows []struct {
		FolderID int64 `db:"folder_id"`
		Count    int   `db:"count"`
	}
	err := r.db.Select(&rows, `SELECT folder_id, COUNT(*) AS count FROM files GROUP BY folder_id`)
	if err != nil {
		return nil, storageError("count files", err)
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.FolderID] = row.Count
	}
	return counts, nil
}

func (r *fileRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return storageError("delete file", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("delete file", err)
	}

	if rows == 0 {
		return ErrFileNotFound
	}

	return nil
}
