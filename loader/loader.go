// Package loader implements the CSV bulk-load command. Files are
// imported in dependency order and any bad row aborts the whole run;
// there is no partial success.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"reviewdb-api/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InsertOrder lists the expected files in an order that satisfies
// foreign keys: the join table and reviews come after their parents.
var InsertOrder = []string{
	"category.csv",
	"genre.csv",
	"titles.csv",
	"genre_title.csv",
	"users.csv",
	"review.csv",
	"comments.csv",
}

type Loader struct {
	db  *gorm.DB
	log *logrus.Logger
}

func New(db *gorm.DB, log *logrus.Logger) *Loader {
	return &Loader{db: db, log: log}
}

// LoadAll imports every known file found under dir, in order.
func (l *Loader) LoadAll(dir string) error {
	for _, name := range InsertOrder {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			l.log.WithField("file", name).Warn("file missing, skipping")
			continue
		}
		if err := l.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile imports a single CSV file, dispatching on its base name.
func (l *Loader) LoadFile(path string) error {
	rows, header, err := readCSV(path)
	if err != nil {
		return err
	}

	var loadRow func(row map[string]string) error
	switch filepath.Base(path) {
	case "category.csv":
		loadRow = l.loadCategory
	case "genre.csv":
		loadRow = l.loadGenre
	case "titles.csv":
		loadRow = l.loadTitle
	case "genre_title.csv":
		loadRow = l.loadTitleGenre
	case "users.csv":
		loadRow = l.loadUser
	case "review.csv":
		loadRow = l.loadReview
	case "comments.csv":
		loadRow = l.loadComment
	default:
		return fmt.Errorf("unknown data file %q", filepath.Base(path))
	}

	for i, record := range rows {
		row := make(map[string]string, len(header))
		for j, col := range header {
			if j < len(record) {
				row[col] = record[j]
			}
		}
		if err := loadRow(row); err != nil {
			return fmt.Errorf("%s: row %d: %w", filepath.Base(path), i+2, err)
		}
	}

	l.log.WithFields(logrus.Fields{"file": filepath.Base(path), "rows": len(rows)}).Info("file loaded")
	return nil
}

func (l *Loader) loadCategory(row map[string]string) error {
	id, err := parseID(row, "id")
	if err != nil {
		return err
	}
	return l.db.Create(&models.Category{ID: id, Name: row["name"], Slug: row["slug"]}).Error
}

func (l *Loader) loadGenre(row map[string]string) error {
	id, err := parseID(row, "id")
	if err != nil {
		return err
	}
	return l.db.Create(&models.Genre{ID: id, Name: row["name"], Slug: row["slug"]}).Error
}

func (l *Loader) loadTitle(row map[string]string) error {
	id, err := parseID(row, "id")
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(row["year"])
	if err != nil {
		return fmt.Errorf("bad year %q", row["year"])
	}

	title := &models.Title{ID: id, Name: row["name"], Year: year}
	if raw := row["category"]; raw != "" {
		categoryID, err := parseID(row, "category")
		if err != nil {
			return err
		}
		title.CategoryID = &categoryID
	}
	return l.db.Create(title).Error
}

func (l *Loader) loadTitleGenre(row map[string]string) error {
	id, err := parseID(row, "id")
	if err != nil {
		return err
	}
	titleID, err := parseID(row, "title_id")
	if err != nil {
		return err
	}
	genreID, err := parseID(row, "genre_id")
	if err != nil {
		return err
	}
	return l.db.Create(&models.TitleGenre{ID: id, TitleID: titleID, GenreID: genreID}).Error
}

func (l *Loader) loadUser(row map[string]string) error {
	id, err := parseID(row, "id")
	if err != nil {
		return err
	}

	role := models.UserRole(row["role"])
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return fmt.Errorf("bad role %q", row["role"])
	}

	return l.db.Create(&models.User{
		ID:        id,
		Username:  row["username"],
		Email:     row["email"],
		Role:      role,
		Bio:       row["bio"],
		FirstName: row["first_name"],
		LastName:  row["last_name"],
	}).Error
}

func (l *Loader) loadReview(row map[string]string) error {
	id, err := parseID(row, "id")
	if err != nil {
		return err
	}
	titleID, err := parseID(row, "title_id")
	if err != nil {
		return err
	}
	authorID, err := parseID(row, "author")
	if err != nil {
		return err
	}
	score, err := strconv.Atoi(row["score"])
	if err != nil {
		return fmt.Errorf("bad score %q", row["score"])
	}
	pubDate, err := parsePubDate(row["pub_date"])
	if err != nil {
		return err
	}

	return l.db.Create(&models.Review{
		ID:       id,
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     row["text"],
		Score:    score,
		PubDate:  pubDate,
	}).Error
}

func (l *Loader) loadComment(row map[string]string) error {
	id, err := parseID(row, "id")
	if err != nil {
		return err
	}
	reviewID, err := parseID(row, "review_id")
	if err != nil {
		return err
	}
	authorID, err := parseID(row, "author")
	if err != nil {
		return err
	}
	pubDate, err := parsePubDate(row["pub_date"])
	if err != nil {
		return err
	}

	return l.db.Create(&models.Comment{
		ID:       id,
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     row["text"],
		PubDate:  pubDate,
	}).Error
}

func readCSV(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", filepath.Base(path))
	}
	return records[1:], records[0], nil
}

func parseID(row map[string]string, column string) (uint, error) {
	value, err := strconv.ParseUint(row[column], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", column, row[column])
	}
	return uint(value), nil
}

func parsePubDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad pub_date %q", raw)
	}
	return t, nil
}
