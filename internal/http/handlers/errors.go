package handlers

import "errors"

var errEmptyRange = errors.New("end must be after start")
