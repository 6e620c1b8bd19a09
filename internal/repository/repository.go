package repository

import (
	"errors"
)

var errEmptyKey = errors.New("key is empty")
