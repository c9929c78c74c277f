package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/templui/docportal/internal/model"
	"github.com/templui/docportal/internal/validation"
)

// ProgressFunc receives the number of files imported so far and the total
type ProgressFunc func(current, total int)

type ImportRequest struct {
	Source     string       // Directory to mirror
	Panel      model.Panel  // Ignored when ParentID is set
	ParentID   *int64       // Nil imports as a root folder
	Total      int          // Known file total, see CountImportable. 0 disables progress.
	OnProgress ProgressFunc // Called on the importing goroutine
}

type ImportService struct {
	folderService *FolderService
	fileService   *FileService
}

func NewImportService(folderService *FolderService, fileService *FileService) *ImportService {
	return &ImportService{
		folderService: folderService,
		fileService:   fileService,
	}
}

type importRun struct {
	req   ImportRequest
	count int
}

// Import mirrors req.Source into a new folder tree and copies every allowed
// document into managed storage. Files that fail to copy or record are
// logged and skipped, as are subdirectories whose names cannot be folder
// names. A folder row that cannot be stored stops the import; the count
// imported so far is returned with the error.
func (s *ImportService) Import(req ImportRequest) (int, error) {
	source, err := filepath.Abs(req.Source)
	if err != nil {
		return 0, invalidInput(fmt.Errorf("import source: %w", err))
	}
	info, err := os.Stat(source)
	if err != nil {
		return 0, invalidInput(fmt.Errorf("import source: %w", err))
	}
	if !info.IsDir() {
		return 0, invalidInput(fmt.Errorf("import source %s is not a directory", req.Source))
	}
	err = validation.ValidateFolderName(normalizeName(filepath.Base(source)))
	if err != nil {
		return 0, invalidInput(err)
	}

	run := &importRun{req: req}
	err = s.importDir(run, source, req.ParentID)

	slog.Info("import finished", "source", req.Source, "files", run.count, "error", err)
	return run.count, err
}

func (s *ImportService) importDir(run *importRun, dir string, parentID *int64) error {
	folder, err := s.folderService.Create(filepath.Base(dir), parentID, run.req.Panel)
	if err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("skipping unreadable directory", "path", dir, "error", err)
		return nil
	}

	var subdirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			err = validation.ValidateFolderName(normalizeName(entry.Name()))
			if err != nil {
				slog.Warn("skipping directory with an invalid folder name", "path", path, "error", err)
				continue
			}
			subdirs = append(subdirs, path)
			continue
		}
		if !validation.IsAllowedFile(entry.Name()) || !isRegularFile(path) {
			continue
		}
		s.importFile(run, folder, path)
	}

	for _, subdir := range subdirs {
		err = s.importDir(run, subdir, &folder.ID)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *ImportService) importFile(run *importRun, folder *model.Folder, path string) {
	_, err := s.fileService.store(folder, path, normalizeName(filepath.Base(path)))
	if err != nil {
		slog.Warn("skipping file", "path", path, "folder_id", folder.ID, "error", err)
		return
	}

	run.count++
	if run.req.Total > 0 && run.req.OnProgress != nil {
		run.req.OnProgress(run.count, run.req.Total)
	}
}

// CountImportable returns how many files Import would try to copy from dir
func (s *ImportService) CountImportable(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			slog.Warn("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && validation.ValidateFolderName(normalizeName(d.Name())) != nil {
				return fs.SkipDir
			}
			return nil
		}
		if validation.IsAllowedFile(d.Name()) && isRegularFile(path) {
			count++
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipDir) {
		return 0, fmt.Errorf("failed to count files in %s: %w", dir, err)
	}
	return count, nil
}

// isRegularFile follows symlinks
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
