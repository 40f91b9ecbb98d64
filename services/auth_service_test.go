package services

import (
	"errors"
	"testing"
	"time"

	"reviewdb-api/auth"
	"reviewdb-api/config"
	"reviewdb-api/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	_ = user.BeforeSave(nil)
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByUsername(username string) (bool, error) {
	_, err := r.GetByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := r.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) List(params models.ListParams) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	_ = user.BeforeSave(nil)
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(user *models.User) error {
	delete(r.users, user.ID)
	return nil
}

// fakeMail records outgoing confirmation codes instead of dialing SMTP.
type fakeMail struct {
	sent map[string]string
	fail bool
}

func newFakeMail() *fakeMail {
	return &fakeMail{sent: map[string]string{}}
}

func (m *fakeMail) SendConfirmationCode(user *models.User, code string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent[user.Username] = code
	return nil
}

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeMail) {
	repo := newFakeUserRepo()
	mail := newFakeMail()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	jwtCfg := config.JWTConfig{
		Secret:     []byte("test-secret"),
		Expiration: time.Hour,
		CodeTTL:    time.Hour,
	}
	codes := auth.NewCodeGenerator(jwtCfg.Secret, jwtCfg.CodeTTL)
	return NewAuthService(repo, mail, codes, jwtCfg, log), repo, mail
}

func TestSignUpCreatesUnconfirmedUser(t *testing.T) {
	svc, repo, mail := newAuthFixture()

	resp, err := svc.SignUp(models.SignUpRequest{Email: "a@x.com", Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "a@x.com", resp.Email)

	user, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Nil(t, user.ConfirmedAt)
	assert.NotEmpty(t, mail.sent["alice"])
}

func TestSignUpExistingUserResendsCode(t *testing.T) {
	svc, repo, mail := newAuthFixture()

	_, err := svc.SignUp(models.SignUpRequest{Email: "a@x.com", Username: "alice"})
	require.NoError(t, err)
	first := mail.sent["alice"]

	_, err = svc.SignUp(models.SignUpRequest{Email: "a@x.com", Username: "alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, mail.sent["alice"])
	_ = first // codes may coincide within the same second; only delivery matters

	assert.Len(t, repo.users, 1, "repeat signup must not create a duplicate")
}

func TestSignUpEmailMismatchRejected(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.SignUp(models.SignUpRequest{Email: "a@x.com", Username: "alice"})
	require.NoError(t, err)

	_, err = svc.SignUp(models.SignUpRequest{Email: "other@x.com", Username: "alice"})
	require.Error(t, err)
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
}

func TestSignUpEmailTakenByAnotherUser(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.SignUp(models.SignUpRequest{Email: "a@x.com", Username: "alice"})
	require.NoError(t, err)

	_, err = svc.SignUp(models.SignUpRequest{Email: "a@x.com", Username: "bob"})
	require.Error(t, err)
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
}

func TestSignUpReservedUsername(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.SignUp(models.SignUpRequest{Email: "me@x.com", Username: "me"})
	require.Error(t, err)
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestSignUpMailFailurePropagates(t *testing.T) {
	svc, _, mail := newAuthFixture()
	mail.fail = true

	_, err := svc.SignUp(models.SignUpRequest{Email: "a@x.com", Username: "alice"})
	assert.Error(t, err)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.IssueToken(models.TokenRequest{Username: "ghost", ConfirmationCode: "whatever"})
	require.Error(t, err)
	assert.IsType(t, models.ErrorNotFound{}, err)
}

func TestIssueTokenBadCode(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.SignUp(models.SignUpRequest{Email: "a@x.com", Username: "alice"})
	require.NoError(t, err)

	_, err = svc.IssueToken(models.TokenRequest{Username: "alice", ConfirmationCode: "bogus-code"})
	require.Error(t, err)
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "confirmation_code")
}

func TestIssueTokenConsumesCode(t *testing.T) {
	svc, repo, mail := newAuthFixture()

	_, err := svc.SignUp(models.SignUpRequest{Email: "a@x.com", Username: "alice"})
	require.NoError(t, err)
	code := mail.sent["alice"]

	resp, err := svc.IssueToken(models.TokenRequest{Username: "alice", ConfirmationCode: code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	user, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, user.ConfirmedAt)

	// the confirmation changed the state snapshot, so the same code
	// is now invalid
	_, err = svc.IssueToken(models.TokenRequest{Username: "alice", ConfirmationCode: code})
	require.Error(t, err)
	assert.IsType(t, models.ErrorValidation{}, err)
}
