package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/docportal/internal/model"
)

var (
	ErrAdminNotFound  = errors.New("admin not found")
	ErrDuplicateLogin = errors.New("login already exists")
)

type AdminRepository interface {
	Create(admin *model.Admin) error
	ByLogin(login string) (*model.Admin, error)
	UpdatePasswordHash(id int64, hash string) error
}

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(admin *model.Admin) error {
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	admin.CreatedAt = admin.CreatedAt.UTC().Truncate(time.Microsecond)

	query := `INSERT INTO admins (email, password, password_hash, created_at) VALUES (?, ?, ?, ?)`

	result, err := r.db.Exec(query, admin.Login, admin.Password, admin.PasswordHash, model.FormatTimestamp(admin.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateLogin
		}
		return storageError("create admin", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storageError("read admin id", err)
	}
	admin.ID = id

	return nil
}

func (r *adminRepository) ByLogin(login string) (*model.Admin, error) {
	admin := &model.Admin{}
	query := `SELECT * FROM admins WHERE email = ?`

	err := r.db.Get(admin, query, login)
	if err == sql.ErrNoRows {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, storageError("get admin", err)
	}

	return admin, nil
}

// UpdatePasswordHash stores a new hash and clears the legacy plaintext
func (r *adminRepository) UpdatePasswordHash(id int64, hash string) error {
	result, err := r.db.Exec(`UPDATE admins SET password_hash = ?, password = NULL WHERE id = ?`, hash, id)
	if err != nil {
		return storageError("update admin password", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("update admin password", err)
	}

	if rows == 0 {
		return ErrAdminNotFound
	}

	return nil
}
