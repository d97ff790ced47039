package domain

import "github.com/pkg/errors"

var (
	// ErrUnauthorized — чат не совпадает с чатом разработчика.
	ErrUnauthorized = errors.New("unauthorized chat")

	// ErrIntentionalFault — намеренный сбой команды /bad_command.
	ErrIntentionalFault = errors.New("intentional fault")
)
