package services

import (
	"testing"

	"reviewdb-api/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture() (UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewUserService(repo, log), repo
}

func strptr(s string) *string { return &s }

func roleptr(r models.UserRole) *models.UserRole { return &r }

func TestCreateUserDefaultsRole(t *testing.T) {
	svc, _ := newUserFixture()

	user, err := svc.Create(models.CreateUserRequest{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.Create(models.CreateUserRequest{Username: "alice", Email: "a@x.com", Role: "superuser"})
	require.Error(t, err)
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")
}

func TestCreateAdminBecomesStaff(t *testing.T) {
	svc, repo := newUserFixture()

	user, err := svc.Create(models.CreateUserRequest{Username: "root", Email: "r@x.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	stored, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsStaff)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.Create(models.CreateUserRequest{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.Create(models.CreateUserRequest{Username: "alice", Email: "b@x.com"})
	require.Error(t, err)
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestSelfServiceUpdateIgnoresRole(t *testing.T) {
	svc, repo := newUserFixture()

	user, err := svc.Create(models.CreateUserRequest{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	err = svc.Update(user, models.UpdateUserRequest{
		Bio:  strptr("about me"),
		Role: roleptr(models.RoleAdmin),
	}, models.SelfServicePolicy)
	require.NoError(t, err)

	stored, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role, "self-service must not escalate the role")
	assert.Equal(t, "about me", stored.Bio)
}

func TestAdminUpdateChangesRole(t *testing.T) {
	svc, repo := newUserFixture()

	user, err := svc.Create(models.CreateUserRequest{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	err = svc.Update(user, models.UpdateUserRequest{Role: roleptr(models.RoleModerator)}, models.AdminPolicy)
	require.NoError(t, err)

	stored, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, stored.Role)
}

func TestUpdateUsernameValidation(t *testing.T) {
	svc, _ := newUserFixture()

	user, err := svc.Create(models.CreateUserRequest{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)
	_, err = svc.Create(models.CreateUserRequest{Username: "bob", Email: "b@x.com"})
	require.NoError(t, err)

	err = svc.Update(user, models.UpdateUserRequest{Username: strptr("me")}, models.SelfServicePolicy)
	require.Error(t, err)
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")

	err = svc.Update(user, models.UpdateUserRequest{Username: strptr("bob")}, models.SelfServicePolicy)
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestGetByUsernameNotFound(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.GetByUsername("ghost")
	require.Error(t, err)
	assert.IsType(t, models.ErrorNotFound{}, err)
}
