package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrQuestNotFound       = errors.New("quest not found")
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrAlreadyPlayed       = errors.New("already played")
	ErrQuestAlreadyClaimed = errors.New("quest already claimed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoPhotosLeft        = errors.New("no unplayed photos left")
	ErrInvalidGuess        = errors.New("guess is out of map bounds")
)
