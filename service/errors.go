package service

import "errors"

var ErrLinkNotFound = errors.New("link not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryExists = errors.New("category already exists")
var ErrPostNotFound = errors.New("post not found")
var ErrNoteNotFound = errors.New("note not found")
var ErrWallpaperNotFound = errors.New("wallpaper not found")
var ErrCharacterNotFound = errors.New("character not found")
var ErrSessionNotFound = errors.New("chat session not found")
var ErrValidation = errors.New("validation failed")

type sentinelError struct {
	msg      string
	sentinel error
}

func (e sentinelError) Error() string {
	return e.msg
}

func (e sentinelError) Unwrap() error {
	return e.sentinel
}

func wrapSentinel(msg string, sentinel error) error {
	return sentinelError{msg: msg, sentinel: sentinel}
}
