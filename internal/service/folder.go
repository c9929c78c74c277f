package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/templui/docportal/internal/model"
	"github.com/templui/docportal/internal/repository"
	"github.com/templui/docportal/internal/storage"
	"github.com/templui/docportal/internal/validation"
)

type FolderService struct {
	folderRepo repository.FolderRepository
	fileRepo   repository.FileRepository
	storage    storage.Storage
}

func NewFolderService(
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
	storage storage.Storage,
) *FolderService {
	return &FolderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		storage:    storage,
	}
}

// Create adds a folder. With a parent the folder always takes the parent's
// panel, whatever panel was passed.
func (s *FolderService) Create(name string, parentID *int64, panel model.Panel) (*model.Folder, error) {
	name = normalizeName(name)
	err := validation.ValidateFolderName(name)
	if err != nil {
		return nil, invalidInput(err)
	}

	if parentID != nil {
		parent, err := s.folderRepo.ByID(*parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get parent folder: %w", err)
		}
		panel = parent.Panel
	} else if !panel.Valid() {
		return nil, invalidInput(fmt.Errorf("%w: %q", model.ErrUnknownPanel, string(panel)))
	}

	folder := &model.Folder{
		Name:     name,
		ParentID: parentID,
		Panel:    panel,
	}

	err = s.folderRepo.Create(folder)
	if err != nil {
		return nil, err
	}

	return folder, nil
}

func (s *FolderService) ByID(id int64) (*model.Folder, error) {
	return s.folderRepo.ByID(id)
}

// All returns every folder, or the folders of one panel, by name
func (s *FolderService) All(panel *model.Panel) ([]*model.Folder, error) {
	return s.folderRepo.All(panel)
}

// Subfolders returns the root folders when parentID is nil and the direct
// children of parentID otherwise
func (s *FolderService) Subfolders(parentID *int64, panel *model.Panel) ([]*model.Folder, error) {
	return s.folderRepo.Children(parentID, panel)
}

func (s *FolderService) Rename(id int64, name string) error {
	name = normalizeName(name)
	err := validation.ValidateFolderName(name)
	if err != nil {
		return invalidInput(err)
	}

	return s.folderRepo.Rename(id, name)
}

// Delete removes a folder with its whole subtree. Rows go first, in one
// transaction; payloads are then removed best-effort.
func (s *FolderService) Delete(id int64) error {
	_, err := s.folderRepo.ByID(id)
	if err != nil {
		return err
	}

	descendants, err := s.folderRepo.SubtreeIDs(id)
	if err != nil {
		return err
	}
	ids := append([]int64{id}, descendants...)

	files, err := s.fileRepo.InFolders(ids)
	if err != nil {
		return err
	}

	err = s.folderRepo.DeleteTree(ids)
	if err != nil {
		return err
	}

	for _, file := range files {
		delErr := s.storage.Delete(file.Filepath)
		if delErr != nil {
			slog.Warn("failed to delete file from storage", "path", file.Filepath, "file_id", file.ID, "error", delErr)
		}
	}

	slog.Info("folder deleted", "folder_id", id, "folders", len(ids), "files", len(files))
	return nil
}

// Path returns the folders from the root down to id. The walk stops early
// at a broken parent link. An unknown id yields an empty path.
func (s *FolderService) Path(id int64) ([]*model.Folder, error) {
	return s.folderRepo.Path(id)
}

// SubtreeIDs returns every descendant of id, excluding id itself
func (s *FolderService) SubtreeIDs(id int64) ([]int64, error) {
	return s.folderRepo.SubtreeIDs(id)
}

// Tree returns the folder forest with recursive file counts, roots and
// children ordered by name.
func (s *FolderService) Tree(panel *model.Panel) ([]*model.FolderNode, error) {
	folders, err := s.folderRepo.All(panel)
	if err != nil {
		return nil, err
	}

	counts, err := s.fileRepo.CountByFolder()
	if err != nil {
		return nil, err
	}

	nodes := make(map[int64]*model.FolderNode, len(folders))
	for _, folder := range folders {
		nodes[folder.ID] = &model.FolderNode{Folder: folder}
	}

	var roots []*model.FolderNode
	for _, folder := range folders {
		node := nodes[folder.ID]
		if folder.IsRoot() {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*folder.ParentID]
		if !ok {
			slog.Warn("folder has a missing parent", "folder_id", folder.ID, "parent_id", *folder.ParentID)
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	for _, root := range roots {
		_, err := sumCounts(root, counts, 0)
		if err != nil {
			return nil, err
		}
	}

	return roots, nil
}

func sumCounts(node *model.FolderNode, counts map[int64]int, depth int) (int, error) {
	if depth > repository.MaxFolderDepth {
		return 0, fmt.Errorf("%w: folder %d is nested deeper than %d levels", repository.ErrHierarchyCorrupt, node.Folder.ID, repository.MaxFolderDepth)
	}

	total := counts[node.Folder.ID]
	for _, child := range node.Children {
		n, err := sumCounts(child, counts, depth+1)
		if err != nil {
			return 0, err
		}
		total += n
	}
	node.FileCount = total

	return total, nil
}

// IsNotFound reports whether err means a folder, file or admin does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrFolderNotFound) ||
		errors.Is(err, repository.ErrFileNotFound) ||
		errors.Is(err, repository.ErrAdminNotFound)
}
