package services

import (
	"errors"

	"reviewdb-api/models"
	"reviewdb-api/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(titleID uint, author *models.User, req models.CreateReviewRequest) (*models.Review, error)
	GetReview(titleID, id uint) (*models.Review, error)
	ListReviews(titleID uint, params models.ListParams) ([]models.Review, int64, error)
	UpdateReview(review *models.Review, req models.UpdateReviewRequest) error
	DeleteReview(review *models.Review) error

	CreateComment(titleID, reviewID uint, author *models.User, req models.CreateCommentRequest) (*models.Comment, error)
	GetComment(titleID, reviewID, id uint) (*models.Comment, error)
	ListComments(titleID, reviewID uint, params models.ListParams) ([]models.Comment, int64, error)
	UpdateComment(comment *models.Comment, req models.UpdateCommentRequest) error
	DeleteComment(comment *models.Comment) error
}

type reviewService struct {
	titleRepo   repositories.TitleRepository
	reviewRepo  repositories.ReviewRepository
	commentRepo repositories.CommentRepository
	log         *logrus.Logger
}

func NewReviewService(titleRepo repositories.TitleRepository, reviewRepo repositories.ReviewRepository, commentRepo repositories.CommentRepository, log *logrus.Logger) ReviewService {
	return &reviewService{
		titleRepo:   titleRepo,
		reviewRepo:  reviewRepo,
		commentRepo: commentRepo,
		log:         log,
	}
}

// CreateReview validates the score and the one-review-per-title rule
// against current state, with the composite unique index as the
// backstop when two requests race past the pre-check.
func (s *reviewService) CreateReview(titleID uint, author *models.User, req models.CreateReviewRequest) (*models.Review, error) {
	if err := models.ValidateScore(req.Score); err != nil {
		return nil, err
	}

	if err := s.checkTitle(titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByAuthorAndTitle(author.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicateReviewError()
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: author.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateReviewError()
		}
		return nil, err
	}

	review.Author = author
	s.log.WithFields(logrus.Fields{"title_id": titleID, "author": author.Username}).Info("review created")
	return review, nil
}

func (s *reviewService) GetReview(titleID, id uint) (*models.Review, error) {
	if err := s.checkTitle(titleID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(titleID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "review not found"}
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListReviews(titleID uint, params models.ListParams) ([]models.Review, int64, error) {
	if err := s.checkTitle(titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(titleID, params)
}

func (s *reviewService) UpdateReview(review *models.Review, req models.UpdateReviewRequest) error {
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if err := models.ValidateScore(*req.Score); err != nil {
			return err
		}
		review.Score = *req.Score
	}
	return s.reviewRepo.Update(review)
}

func (s *reviewService) DeleteReview(review *models.Review) error {
	return s.reviewRepo.Delete(review)
}

func (s *reviewService) CreateComment(titleID, reviewID uint, author *models.User, req models.CreateCommentRequest) (*models.Comment, error) {
	if _, err := s.GetReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: author.ID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	comment.Author = author
	return comment, nil
}

func (s *reviewService) GetComment(titleID, reviewID, id uint) (*models.Comment, error) {
	if _, err := s.GetReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(reviewID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "comment not found"}
		}
		return nil, err
	}
	return comment, nil
}

func (s *reviewService) ListComments(titleID, reviewID uint, params models.ListParams) ([]models.Comment, int64, error) {
	if _, err := s.GetReview(titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(reviewID, params)
}

func (s *reviewService) UpdateComment(comment *models.Comment, req models.UpdateCommentRequest) error {
	if req.Text != nil {
		comment.Text = *req.Text
	}
	return s.commentRepo.Update(comment)
}

func (s *reviewService) DeleteComment(comment *models.Comment) error {
	return s.commentRepo.Delete(comment)
}

func (s *reviewService) checkTitle(titleID uint) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "title not found"}
		}
		return err
	}
	return nil
}

func duplicateReviewError() error {
	return models.NewValidationError("title", "you can only leave one review per title")
}
