package profilerepo

import "errors"

// ErrNotFound indicates the requested profile does not exist.
var ErrNotFound = errors.New("profile not found")
