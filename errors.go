package ge

import "errors"

// ErrAlreadyInitialized is returned by a second call to Helper.Init.
var ErrAlreadyInitialized = errors.New("ge: already initialized")

const errNotInitialized = "ge: Helper used before Init"
