package risor

import "errors"

var ErrEmptyCode = errors.New("evaluation code is empty")
