package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/sevahub/internal/store"
)

// storeError maps domain errors onto HTTP statuses. Anything unrecognised
// bubbles up to the fiber error handler as a 500.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateAcceptance),
		errors.Is(err, store.ErrIncompatibleBloodType),
		errors.Is(err, store.ErrReasonRequired),
		errors.Is(err, store.ErrNoAcceptedOffer),
		errors.Is(err, store.ErrRequestClosed):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return err
}
