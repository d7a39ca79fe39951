package hr

import "errors"

var ErrHRNotFound = errors.New("HR not found")
