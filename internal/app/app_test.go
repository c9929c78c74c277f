package app

import (
	"path/filepath"
	"testing"

	"github.com/templui/docportal/internal/config"
	"github.com/templui/docportal/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		AppEnv:        "test",
		DBDriver:      "sqlite",
		DBConnection:  filepath.Join(dir, "data", "portal.db") + "?_pragma=foreign_keys(1)",
		StorageDriver: config.StorageLocal,
		UploadDir:     filepath.Join(dir, "uploads"),
	}
}

func TestNewWiresServices(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = a.Close() }()

	if !a.AuthService.Authenticate("admin", "admin") {
		t.Error("bootstrap admin missing")
	}

	folder, err := a.FolderService.Create("Reports", nil, model.PanelCertification)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	files, err := a.SearchService.Search(model.SearchFilter{FolderID: &folder.ID})
	if err != nil || len(files) != 0 {
		t.Errorf("Search() = %v, %v", files, err)
	}
}

func TestNewReopensExistingDatabase(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	_, err = a.FolderService.Create("Kept", nil, model.PanelOther)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	a, err = New(cfg)
	if err != nil {
		t.Fatalf("second New() error = %v", err)
	}
	defer func() { _ = a.Close() }()

	folders, err := a.FolderService.All(nil)
	if err != nil || len(folders) != 1 || folders[0].Name != "Kept" {
		t.Errorf("All() = %v, %v", folders, err)
	}
}

func TestNewUnknownStorageDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageDriver = "ftp"

	_, err := New(cfg)
	if err == nil {
		t.Fatal("New() accepted an unknown storage driver")
	}
}
