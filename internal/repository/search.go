package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/docportal/internal/model"
)

type SearchRepository interface {
	// Files runs filter against the file table. When filter.FolderID is set,
	// scope must hold that folder and its descendants.
	Files(filter model.SearchFilter, scope []int64) ([]*model.File, error)
	HasColumn(table, column string) (bool, error)
}

type searchRepository struct {
	db *sqlx.DB
}

func NewSearchRepository(db *sqlx.DB) SearchRepository {
	return &searchRepository{db: db}
}

func (r *searchRepository) Files(filter model.SearchFilter, scope []int64) ([]*model.File, error) {
	var conditions []string
	var args []any

	// fold_name is registered on every connection by the db package
	if filter.Filename != "" {
		conditions = append(conditions, `fold_name(filename) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(model.FoldName(filter.Filename))+"%")
	}

	if ext := strings.TrimPrefix(filter.Extension, "."); ext != "" {
		conditions = append(conditions, `fold_name(filename) LIKE ? ESCAPE '\'`)
		args = append(args, "%."+escapeLike(model.FoldName(ext)))
	}

	if filter.DateFrom != nil {
		conditions = append(conditions, `uploaded_at >= ?`)
		args = append(args, lowerBound(*filter.DateFrom))
	}

	if filter.DateTo != nil {
		conditions = append(conditions, `uploaded_at <= ?`)
		args = append(args, model.FormatTimestamp(*filter.DateTo))
	}

	if filter.FolderID != nil {
		if len(scope) == 0 {
			scope = []int64{*filter.FolderID}
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(scope)), ",")
		conditions = append(conditions, fmt.Sprintf(`folder_id IN (%s)`, placeholders))
		for _, id := range scope {
			args = append(args, id)
		}
	}

	if filter.Panel != nil {
		conditions = append(conditions, `EXISTS (SELECT 1 FROM folders fo WHERE fo.id = files.folder_id AND fo.panel = ?)`)
		args = append(args, *filter.Panel)
	}

	if filter.MinSize != nil || filter.MaxSize != nil {
		// Databases opened before migration have no size column
		hasSize, err := r.HasColumn("files", "file_size")
		if err != nil {
			return nil, err
		}
		if hasSize {
			if filter.MinSize != nil {
				conditions = append(conditions, `file_size >= ?`)
				args = append(args, *filter.MinSize)
			}
			if filter.MaxSize != nil {
				conditions = append(conditions, `file_size <= ?`)
				args = append(args, *filter.MaxSize)
			}
		}
	}

	query := `SELECT * FROM files`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	query += ` ORDER BY uploaded_at DESC, id ASC`

	var files []*model.File
	err := r.db.Select(&files, query, args...)
	if err != nil {
		return nil, storageError("search files", err)
	}

	return files, nil
}

func (r *searchRepository) HasColumn(table, column string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&count)
	if err != nil {
		return false, storageError("inspect columns", err)
	}
	return count > 0, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// lowerBound drops a zero fraction so rows stamped by CURRENT_TIMESTAMP at
// exactly the bound still match.
func lowerBound(t time.Time) string {
	if t.Truncate(time.Second).Equal(t.Truncate(time.Microsecond)) {
		return t.UTC().Format("2006-01-02 15:04:05")
	}
	return model.FormatTimestamp(t)
}
