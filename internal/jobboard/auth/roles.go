package auth

import (
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// RequireRole permits identity iff its role is one of roles. Otherwise it
// returns a Forbidden error carrying msg.
func RequireRole(identity *models.Identity, msg string, roles ...models.Role) error {
	if identity == nil || !identity.Role.In(roles...) {
		return e.New(e.ErrForbidden, msg)
	}
	return nil
}
