package services

import (
	"errors"

	"reviewdb-api/models"
	"reviewdb-api/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CatalogService manages categories and genres. The two are the same
// shape with independent slug spaces, so they share one service.
type CatalogService interface {
	CreateCategory(req models.SlugRequest) (*models.Category, error)
	ListCategories(params models.ListParams) ([]models.Category, int64, error)
	DeleteCategory(slug string) (*models.Category, error)

	CreateGenre(req models.SlugRequest) (*models.Genre, error)
	ListGenres(params models.ListParams) ([]models.Genre, int64, error)
	DeleteGenre(slug string) (*models.Genre, error)
}

type catalogService struct {
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
	log          *logrus.Logger
}

func NewCatalogService(categoryRepo repositories.CategoryRepository, genreRepo repositories.GenreRepository, log *logrus.Logger) CatalogService {
	return &catalogService{categoryRepo: categoryRepo, genreRepo: genreRepo, log: log}
}

func (s *catalogService) CreateCategory(req models.SlugRequest) (*models.Category, error) {
	if err := models.ValidateSlug(req.Slug); err != nil {
		return nil, err
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewValidationError("slug", "category with this slug already exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ListCategories(params models.ListParams) ([]models.Category, int64, error) {
	return s.categoryRepo.List(params)
}

func (s *catalogService) DeleteCategory(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "category not found"}
		}
		return nil, err
	}
	if err := s.categoryRepo.Delete(category); err != nil {
		return nil, err
	}
	s.log.WithField("slug", slug).Info("category deleted")
	return category, nil
}

func (s *catalogService) CreateGenre(req models.SlugRequest) (*models.Genre, error) {
	if err := models.ValidateSlug(req.Slug); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.genreRepo.Create(genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewValidationError("slug", "genre with this slug already exists")
		}
		return nil, err
	}
	return genre, nil
}

func (s *catalogService) ListGenres(params models.ListParams) ([]models.Genre, int64, error) {
	return s.genreRepo.List(params)
}

func (s *catalogService) DeleteGenre(slug string) (*models.Genre, error) {
	genre, err := s.genreRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "genre not found"}
		}
		return nil, err
	}
	if err := s.genreRepo.Delete(genre); err != nil {
		return nil, err
	}
	s.log.WithField("slug", slug).Info("genre deleted")
	return genre, nil
}
