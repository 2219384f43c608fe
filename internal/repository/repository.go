package repository

import "errors"

// ErrMessageNotFound means the backend holds no message under the key.
var ErrMessageNotFound = errors.New("message not found")
