package service

import (
	"errors"

	"communityboard/internal/models"
)

// ErrForbidden is returned when the caller is neither the author of the post
// nor an admin.
var ErrForbidden = errors.New("forbidden")

// CanModify reports whether the caller may edit or delete the post. The
// author always can, and so can an admin. Pinning is not routed through this
// check: it is gated by a role middleware before the handler runs.
func CanModify(post *models.Post, callerID, callerRole string) bool {
	return post.AuthorID == callerID || callerRole == models.RoleAdmin
}
