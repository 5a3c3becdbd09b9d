package topic

import "errors"

var ErrInvalidCategoryID = errors.New("category id must be positive")
