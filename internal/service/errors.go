package service

import (
	"errors"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// translateStoreError maps store sentinels onto the domain errors callers act
// on. Anything else, including domain validation errors, is returned unchanged.
func translateStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case store.IsNotFoundError(err):
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			return domain.ErrUserNotFound.Wrap(err)
		case errors.Is(err, store.ErrCardNotFound):
			return domain.ErrCardNotFound.Wrap(err)
		default:
			return err
		}
	case store.IsDuplicateError(err):
		return domain.ErrEmailExists.Wrap(err)
	default:
		return err
	}
}
