package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader() *Loader {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(nil, log)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileUnknownName(t *testing.T) {
	path := writeFile(t, "mystery.csv", "id,name\n1,x\n")

	err := newTestLoader().LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown data file "mystery.csv"`)
}

func TestLoadFileEmpty(t *testing.T) {
	path := writeFile(t, "category.csv", "")

	err := newTestLoader().LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty file")
}

func TestLoadFileMissing(t *testing.T) {
	err := newTestLoader().LoadFile(filepath.Join(t.TempDir(), "category.csv"))
	assert.Error(t, err)
}

func TestLoadFileReportsRowAndReason(t *testing.T) {
	path := writeFile(t, "titles.csv", "id,name,year,category\n1,Movie,not-a-year,\n")

	err := newTestLoader().LoadFile(path)
	require.Error(t, err)
	assert.EqualError(t, err, `titles.csv: row 2: bad year "not-a-year"`)
}

func TestLoadFileBadID(t *testing.T) {
	path := writeFile(t, "genre.csv", "id,name,slug\nfirst,Drama,drama\n")

	err := newTestLoader().LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `bad id "first"`)
}

func TestLoadFileBadUserRole(t *testing.T) {
	path := writeFile(t, "users.csv", "id,username,email,role,bio,first_name,last_name\n"+
		"2,bob,b@x.com,superuser,,,\n")

	err := newTestLoader().LoadFile(path)
	require.Error(t, err)
	assert.EqualError(t, err, `users.csv: row 2: bad role "superuser"`)
}

func TestLoadFileBadPubDate(t *testing.T) {
	path := writeFile(t, "review.csv", "id,title_id,text,author,score,pub_date\n"+
		"1,1,fine,1,5,yesterday\n")

	err := newTestLoader().LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `bad pub_date "yesterday"`)
}

func TestParsePubDate(t *testing.T) {
	parsed, err := parsePubDate("2019-09-24T21:08:21Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 9, 24, 21, 8, 21, 0, time.UTC), parsed)

	// empty dates default to the load time
	parsed, err = parsePubDate("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestInsertOrderSatisfiesForeignKeys(t *testing.T) {
	index := make(map[string]int, len(InsertOrder))
	for i, name := range InsertOrder {
		index[name] = i
	}

	assert.Less(t, index["category.csv"], index["titles.csv"])
	assert.Less(t, index["genre.csv"], index["genre_title.csv"])
	assert.Less(t, index["titles.csv"], index["genre_title.csv"])
	assert.Less(t, index["users.csv"], index["review.csv"])
	assert.Less(t, index["titles.csv"], index["review.csv"])
	assert.Less(t, index["review.csv"], index["comments.csv"])
}
