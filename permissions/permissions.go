// Package permissions holds the per-action authorization policies.
// Handlers call these before validation; object rules run only after
// the object has been fetched.
package permissions

import (
	"reviewdb-api/models"
)

type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

// ReviewCollection is the collection-level review policy: public
// read, authenticated create, mutation verbs deferred to the object
// rule, and anything else (notably a raw PUT replace) rejected
// outright.
func ReviewCollection(action Action, method string, user *models.User) error {
	switch action {
	case ActionList, ActionRetrieve, ActionUpdate, ActionPartialUpdate, ActionDestroy:
		return nil
	case ActionCreate:
		if user == nil {
			return models.ErrorUnauthenticated{Message: "authentication required"}
		}
		return nil
	default:
		return models.ErrorMethodNotAllowed{Method: method}
	}
}

// ReviewObject is the object-level review policy: anyone may read,
// mutation needs the author, a moderator or staff.
func ReviewObject(action Action, user *models.User, authorID uint) error {
	if action == ActionRetrieve {
		return nil
	}
	if user == nil {
		return models.ErrorUnauthenticated{Message: "authentication required"}
	}
	if user.IsStaff || user.IsModerator() || user.ID == authorID {
		return nil
	}
	return models.ErrorPermissionDenied{Message: "you do not have permission to modify this resource"}
}

// CommentCollection mirrors the review policy; the rules are
// identical, applied to the comment's parent review scope.
func CommentCollection(action Action, method string, user *models.User) error {
	return ReviewCollection(action, method, user)
}

func CommentObject(action Action, user *models.User, authorID uint) error {
	return ReviewObject(action, user, authorID)
}

// RequireAdmin gates the privileged write surfaces: user management
// and category/genre/title mutation.
func RequireAdmin(user *models.User) error {
	if user == nil {
		return models.ErrorUnauthenticated{Message: "authentication required"}
	}
	if user.Role != models.RoleAdmin && !user.IsStaff {
		return models.ErrorPermissionDenied{Message: "admin privileges required"}
	}
	return nil
}
