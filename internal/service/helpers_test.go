package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/docportal/internal/db"
	"github.com/templui/docportal/internal/model"
	"github.com/templui/docportal/internal/repository"
	"github.com/templui/docportal/internal/storage"
)

type testEnv struct {
	dir        string
	db         *sqlx.DB
	storage    *storage.LocalStorage
	folderRepo repository.FolderRepository
	fileRepo   repository.FileRepository
	folders    *FolderService
	files      *FileService
	search     *SearchService
	auth       *AuthService
	imports    *ImportService
}

// setupTestEnv creates a migrated SQLite database and local storage in a temp dir
func setupTestEnv(t *testing.T) *testEnv {
	return setupTestEnvWith(t, "?_pragma=foreign_keys(1)")
}

func setupTestEnvWith(t *testing.T, params string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	database, err := db.Init("sqlite", filepath.Join(dir, "test.db")+params)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	store, err := storage.NewLocalStorage(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	folderRepo := repository.NewFolderRepository(database)
	fileRepo := repository.NewFileRepository(database)
	folders := NewFolderService(folderRepo, fileRepo, store)
	files := NewFileService(fileRepo, folderRepo, store)

	return &testEnv{
		dir:        dir,
		db:         database,
		storage:    store,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		folders:    folders,
		files:      files,
		search:     NewSearchService(repository.NewSearchRepository(database), folderRepo),
		auth:       NewAuthService(repository.NewAdminRepository(database)),
		imports:    NewImportService(folders, files),
	}
}

func (e *testEnv) mustFolder(t *testing.T, name string, parentID *int64, panel model.Panel) *model.Folder {
	t.Helper()
	folder, err := e.folders.Create(name, parentID, panel)
	if err != nil {
		t.Fatalf("failed to create folder %q: %v", name, err)
	}
	return folder
}

// mustSource writes a file outside managed storage and returns its path
func (e *testEnv) mustSource(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, "src", rel)
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func (e *testEnv) mustUpload(t *testing.T, folderID int64, rel, content string) *model.File {
	t.Helper()
	file, err := e.files.Upload(folderID, e.mustSource(t, rel, content))
	if err != nil {
		t.Fatalf("failed to upload %q: %v", rel, err)
	}
	return file
}

// mustFileAt inserts a file row with a fixed upload time
func (e *testEnv) mustFileAt(t *testing.T, folderID int64, name string, size int64, at time.Time) *model.File {
	t.Helper()
	file := &model.File{
		FolderID:   folderID,
		Filename:   name,
		Filepath:   e.storage.Join("fixtures", name),
		FileSize:   size,
		UploadedAt: at,
	}
	err := e.fileRepo.Create(file)
	if err != nil {
		t.Fatalf("failed to insert file %q: %v", name, err)
	}
	return file
}

func ptr[T any](v T) *T {
	return &v
}

func fileIDs(files []*model.File) []int64 {
	ids := make([]int64, len(files))
	for i, f := range files {
		ids[i] = f.ID
	}
	return ids
}
