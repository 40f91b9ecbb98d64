package services

import (
	"errors"

	"reviewdb-api/models"
	"reviewdb-api/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TitleService interface {
	Create(req models.CreateTitleRequest) (*models.TitleResponse, error)
	Get(id uint) (*models.TitleResponse, error)
	List(params models.TitleListParams) ([]models.TitleResponse, int64, error)
	Update(id uint, req models.UpdateTitleRequest) (*models.TitleResponse, error)
	Delete(id uint) error
}

type titleService struct {
	titleRepo    repositories.TitleRepository
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
	log          *logrus.Logger
}

func NewTitleService(titleRepo repositories.TitleRepository, categoryRepo repositories.CategoryRepository, genreRepo repositories.GenreRepository, log *logrus.Logger) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		log:          log,
	}
}

func (s *titleService) Create(req models.CreateTitleRequest) (*models.TitleResponse, error) {
	if err := models.ValidateYear(req.Year); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Description: req.Description,
		Year:        req.Year,
		Genres:      genres,
	}

	if req.Category != nil {
		category, err := s.resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}

	s.log.WithField("title_id", title.ID).Info("title created")
	return s.buildResponse(title)
}

func (s *titleService) Get(id uint) (*models.TitleResponse, error) {
	title, err := s.getTitle(id)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(title)
}

func (s *titleService) List(params models.TitleListParams) ([]models.TitleResponse, int64, error) {
	titles, total, err := s.titleRepo.List(params)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]models.TitleResponse, 0, len(titles))
	for i := range titles {
		resp, err := s.buildResponse(&titles[i])
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *resp)
	}
	return responses, total, nil
}

func (s *titleService) Update(id uint, req models.UpdateTitleRequest) (*models.TitleResponse, error) {
	title, err := s.getTitle(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Year != nil {
		if err := models.ValidateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Category != nil {
		category, err := s.resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if err := s.titleRepo.Update(title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	return s.buildResponse(title)
}

func (s *titleService) Delete(id uint) error {
	title, err := s.getTitle(id)
	if err != nil {
		return err
	}
	if err := s.titleRepo.Delete(title); err != nil {
		return err
	}
	s.log.WithField("title_id", id).Info("title deleted")
	return nil
}

func (s *titleService) getTitle(id uint) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "title not found"}
		}
		return nil, err
	}
	return title, nil
}

// resolveCategory turns a slug into a record; an unknown slug is a
// validation error, never a server error.
func (s *titleService) resolveCategory(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewValidationError("category", "category with this slug does not exist")
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	seen := make(map[string]bool, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			unique = append(unique, slug)
		}
	}

	genres, err := s.genreRepo.GetBySlugs(unique)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		found := make(map[string]bool, len(genres))
		for _, g := range genres {
			found[g.Slug] = true
		}
		for _, slug := range unique {
			if !found[slug] {
				return nil, models.NewValidationError("genre", "genre with this slug does not exist: "+slug)
			}
		}
	}
	return genres, nil
}

func (s *titleService) buildResponse(title *models.Title) (*models.TitleResponse, error) {
	rating, err := s.titleRepo.Rating(title.ID)
	if err != nil {
		return nil, err
	}

	genres := make([]models.SlugResponse, 0, len(title.Genres))
	for _, g := range title.Genres {
		genres = append(genres, models.SlugResponse{Name: g.Name, Slug: g.Slug})
	}

	resp := &models.TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Description: title.Description,
		Year:        title.Year,
		Genre:       genres,
		Rating:      rating,
	}
	if title.Category != nil {
		resp.Category = &models.SlugResponse{Name: title.Category.Name, Slug: title.Category.Slug}
	}
	return resp, nil
}
