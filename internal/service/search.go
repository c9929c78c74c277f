package service

import (
	"fmt"

	"github.com/templui/docportal/internal/model"
	"github.com/templui/docportal/internal/repository"
)

type SearchService struct {
	searchRepo repository.SearchRepository
	folderRepo repository.FolderRepository
}

func NewSearchService(searchRepo repository.SearchRepository, folderRepo repository.FolderRepository) *SearchService {
	return &SearchService{
		searchRepo: searchRepo,
		folderRepo: folderRepo,
	}
}

// Search returns the files matching every criterion set in filter, newest
// first. A folder criterion covers the folder and all its descendants.
func (s *SearchService) Search(filter model.SearchFilter) ([]*model.File, error) {
	if filter.Panel != nil && !filter.Panel.Valid() {
		return nil, invalidInput(fmt.Errorf("%w: %q", model.ErrUnknownPanel, string(*filter.Panel)))
	}

	filter.Filename = normalizeName(filter.Filename)
	filter.Extension = normalizeName(filter.Extension)

	var scope []int64
	if filter.FolderID != nil {
		descendants, err := s.folderRepo.SubtreeIDs(*filter.FolderID)
		if err != nil {
			return nil, err
		}
		scope = append([]int64{*filter.FolderID}, descendants...)
	}

	return s.searchRepo.Files(filter, scope)
}
