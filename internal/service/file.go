package service

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/templui/docportal/internal/digest"
	"github.com/templui/docportal/internal/model"
	"github.com/templui/docportal/internal/repository"
	"github.com/templui/docportal/internal/storage"
	"github.com/templui/docportal/internal/validation"
)

type FileService struct {
	fileRepo   repository.FileRepository
	folderRepo repository.FolderRepository
	storage    storage.Storage
}

func NewFileService(
	fileRepo repository.FileRepository,
	folderRepo repository.FolderRepository,
	storage storage.Storage,
) *FileService {
	return &FileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		storage:    storage,
	}
}

// Add records a payload that is already in storage. Size and digest are
// snapshots taken now: 0 and "" when the payload cannot be read.
func (s *FileService) Add(folderID int64, filename, path string) (*model.File, error) {
	file := &model.File{
		FolderID: folderID,
		Filename: normalizeName(filename),
		Filepath: path,
		FileSize: s.size(path),
		FileHash: s.hash(path),
	}

	err := s.fileRepo.Create(file)
	if err != nil {
		return nil, err
	}

	return file, nil
}

func (s *FileService) size(path string) int64 {
	size, err := s.storage.Stat(path)
	if err != nil {
		slog.Warn("failed to read file size", "path", path, "error", err)
		return 0
	}
	return size
}

func (s *FileService) hash(path string) string {
	r, err := s.storage.Open(path)
	if err != nil {
		slog.Warn("failed to open file for hashing", "path", path, "error", err)
		return ""
	}
	defer r.Close()

	sum, err := digest.Reader(r)
	if err != nil {
		slog.Warn("failed to hash file", "path", path, "error", err)
		return ""
	}
	return sum
}

// Upload copies a local document into managed storage under the folder's
// name and records it. The copy is removed again if the row insert fails.
func (s *FileService) Upload(folderID int64, sourcePath string) (*model.File, error) {
	name := normalizeName(filepath.Base(sourcePath))
	err := validation.ValidateDocumentName(name)
	if err != nil {
		return nil, invalidInput(err)
	}

	folder, err := s.folderRepo.ByID(folderID)
	if err != nil {
		return nil, err
	}

	return s.store(folder, sourcePath, name)
}

func (s *FileService) store(folder *model.Folder, sourcePath, name string) (*model.File, error) {
	dst := uniqueDestination(s.storage, folder.Name, name)

	err := s.storage.Copy(sourcePath, dst)
	if err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}

	file, err := s.Add(folder.ID, name, dst)
	if err != nil {
		delErr := s.storage.Delete(dst)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", dst)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return file, nil
}

// uniqueDestination returns dir/name, or dir/name_N.ext with the first free N
func uniqueDestination(store storage.Storage, dir, name string) string {
	dst := store.Join(dir, name)
	if !store.Exists(dst) {
		return dst
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		dst = store.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if !store.Exists(dst) {
			return dst
		}
	}
}

// InFolder returns the files directly in a folder, newest first
func (s *FileService) InFolder(folderID int64) ([]*model.File, error) {
	return s.fileRepo.InFolder(folderID)
}

func (s *FileService) ByID(id int64) (*model.File, error) {
	return s.fileRepo.ByID(id)
}

// ByPanel returns every file whose folder belongs to panel, newest first
func (s *FileService) ByPanel(panel model.Panel) ([]*model.File, error) {
	if !panel.Valid() {
		return nil, invalidInput(fmt.Errorf("%w: %q", model.ErrUnknownPanel, string(panel)))
	}
	return s.fileRepo.ByPanel(panel)
}

// Delete removes the payload best-effort, then the row. It reports false
// when the file does not exist.
func (s *FileService) Delete(id int64) (bool, error) {
	file, err := s.fileRepo.ByID(id)
	if errors.Is(err, repository.ErrFileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	delErr := s.storage.Delete(file.Filepath)
	if delErr != nil {
		slog.Warn("failed to delete file from storage", "path", file.Filepath, "file_id", file.ID, "error", delErr)
	}

	err = s.fileRepo.Delete(id)
	if errors.Is(err, repository.ErrFileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Count returns the number of files directly in a folder, or in the folder
// and all its descendants when recursive is set.
func (s *FileService) Count(folderID int64, recursive bool) (int, error) {
	if !recursive {
		return s.fileRepo.Count(folderID)
	}
	return s.countTree(folderID, map[int64]bool{}, 0)
}

func (s *FileService) countTree(folderID int64, seen map[int64]bool, depth int) (int, error) {
	if depth > repository.MaxFolderDepth {
		return 0, fmt.Errorf("%w: folder %d is nested deeper than %d levels", repository.ErrHierarchyCorrupt, folderID, repository.MaxFolderDepth)
	}
	if seen[folderID] {
		return 0, fmt.Errorf("%w: folder %d is its own ancestor", repository.ErrHierarchyCorrupt, folderID)
	}
	seen[folderID] = true

	total, err := s.fileRepo.Count(folderID)
	if err != nil {
		return 0, err
	}

	children, err := s.folderRepo.Children(&folderID, nil)
	if err != nil {
		return 0, err
	}

	for _, child := range children {
		n, err := s.countTree(child.ID, seen, depth+1)
		if err != nil {
			return 0, err
		}
		total += n
	}

	return total, nil
}
