package authz

import (
	"net/http"
	"strings"

	"go-elms/internal/shared/apperror"
)

// Role is the closed set of account roles. Anything else must be rejected at
// construction time via ParseRole, never compared as a loose string later.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

var ErrUnknownRole = apperror.New(
	apperror.CodeInvalidInput,
	"role must be one of ADMIN, MANAGER, EMPLOYEE",
	http.StatusBadRequest,
)

func ParseRole(v string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(v))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleEmployee:
		return RoleEmployee, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string {
	return string(r)
}
