package repositories

import (
	"reviewdb-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(titleID, id uint) (*models.Review, error)
	ListByTitle(titleID uint, params models.ListParams) ([]models.Review, int64, error)
	ExistsByAuthorAndTitle(authorID, titleID uint) (bool, error)
	Update(review *models.Review) error
	Delete(review *models.Review) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) GetByID(titleID, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Author").Where("title_id = ?", titleID).First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(titleID uint, params models.ListParams) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	query := r.db.Model(&models.Review{}).Where("title_id = ?", titleID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").Order("pub_date").
		Limit(params.Limit).Offset(params.Offset).Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepository) ExistsByAuthorAndTitle(authorID, titleID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("author_id = ? AND title_id = ?", authorID, titleID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(review *models.Review) error {
	return r.db.Delete(review).Error
}
