package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/docportal/internal/config"
	"github.com/templui/docportal/internal/db"
	"github.com/templui/docportal/internal/repository"
	"github.com/templui/docportal/internal/service"
	"github.com/templui/docportal/internal/storage"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	Storage       storage.Storage
	FolderService *service.FolderService
	FileService   *service.FileService
	SearchService *service.SearchService
	AuthService   *service.AuthService
	ImportService *service.ImportService
}

// New opens the store, migrates it and wires the services. The database
// handle is closed again if any step after opening it fails.
func New(cfg *config.Config) (a *App, err error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err != nil {
			_ = database.Close()
		}
	}()

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	folderRepository := repository.NewFolderRepository(database)
	fileRepository := repository.NewFileRepository(database)
	searchRepository := repository.NewSearchRepository(database)
	adminRepository := repository.NewAdminRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	folderService := service.NewFolderService(folderRepository, fileRepository, fileStorage)
	fileService := service.NewFileService(fileRepository, folderRepository, fileStorage)
	searchService := service.NewSearchService(searchRepository, folderRepository)
	authService := service.NewAuthService(adminRepository)
	importService := service.NewImportService(folderService, fileService)

	err = authService.EnsureBootstrapAdmin()
	if err != nil {
		return nil, err
	}

	return &App{
		Cfg:           cfg,
		DB:            database,
		Storage:       fileStorage,
		FolderService: folderService,
		FileService:   fileService,
		SearchService: searchService,
		AuthService:   authService,
		ImportService: importService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
