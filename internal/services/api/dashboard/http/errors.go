package http

import perr "payscope/internal/platform/errors"

func badFormat(err error) error {
	return perr.WithField(perr.Wrapf(err, perr.ErrorCodeValidation, "format must be png or svg"), "format")
}
