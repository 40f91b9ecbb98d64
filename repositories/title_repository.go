package repositories

import (
	"reviewdb-api/models"

	"gorm.io/gorm"
)

type TitleRepository interface {
	Create(title *models.Title) error
	GetByID(id uint) (*models.Title, error)
	List(params models.TitleListParams) ([]models.Title, int64, error)
	Update(title *models.Title) error
	ReplaceGenres(title *models.Title, genres []models.Genre) error
	Delete(title *models.Title) error
	Rating(titleID uint) (*float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(title *models.Title) error {
	return r.db.Create(title).Error
}

func (r *titleRepository) GetByID(id uint) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Category").Preload("Genres").First(&title, id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) List(params models.TitleListParams) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	// the genre join can fan out rows, so both queries deduplicate;
	// count and find run on separate chains because Count leaves the
	// distinct id select behind in the shared statement
	filtered := func(query *gorm.DB) *gorm.DB {
		if params.Category != "" {
			query = query.Joins("JOIN categories ON categories.id = titles.category_id").
				Where("categories.slug = ?", params.Category)
		}
		if params.Genre != "" {
			query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
				Joins("JOIN genres ON genres.id = title_genres.genre_id").
				Where("genres.slug = ?", params.Genre)
		}
		if params.Name != "" {
			query = query.Where("titles.name ILIKE ?", "%"+params.Name+"%")
		}
		if params.Year != nil {
			query = query.Where("titles.year = ?", *params.Year)
		}
		return query
	}

	if err := filtered(r.db.Model(&models.Title{})).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := filtered(r.db.Model(&models.Title{})).Distinct().Preload("Category").Preload("Genres").
		Order("titles.id").Limit(params.Limit).Offset(params.Offset).Find(&titles).Error
	return titles, total, err
}

func (r *titleRepository) Update(title *models.Title) error {
	// Save skips association sync; genres are replaced explicitly.
	return r.db.Omit("Genres").Save(title).Error
}

func (r *titleRepository) ReplaceGenres(title *models.Title, genres []models.Genre) error {
	return r.db.Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) Delete(title *models.Title) error {
	return r.db.Delete(title).Error
}

// Rating returns the average review score rounded to one decimal, or
// nil when the title has no reviews yet.
func (r *titleRepository) Rating(titleID uint) (*float64, error) {
	var rating *float64
	err := r.db.Model(&models.Review{}).
		Where("title_id = ?", titleID).
		Select("ROUND(AVG(score)::numeric, 1)").
		Scan(&rating).Error
	if err != nil {
		return nil, err
	}
	return rating, nil
}
