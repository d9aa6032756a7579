package pkg

import (
	"errors"
	"net/http"
	"strconv"
)

const UserIDHeader = "X-SWIMSTATS-USER"

var ErrNoUserID = errors.New("user id missing or invalid")

// UserIDFromRequest reads the authenticated user id set by the auth layer.
func UserIDFromRequest(r *http.Request) (int, error) {
	idStr := r.Header.Get(UserIDHeader)
	if idStr == "" {
		return 0, ErrNoUserID
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, ErrNoUserID
	}
	return id, nil
}
