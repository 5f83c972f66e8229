package service

import "errors"

var (
	// ErrEmailTaken — пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already exists")

	// ErrMissingCredentials — не передан email или пароль.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrItemNotFound — объявление с таким id не найдено.
	ErrItemNotFound = errors.New("item not found")
)
