package server

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/elliot-ia/elliot/internal/config"
)

// invalidArgument converts a validation failure to CodeInvalidArgument with a
// BadRequest detail listing the field violations.
func invalidArgument(err error) *connect.Error {
	connectErr := connect.NewError(connect.CodeInvalidArgument, err)
	var valErr *config.ValidationError
	if errors.As(err, &valErr) {
		var fieldViolations []*errdetails.BadRequest_FieldViolation
		for _, v := range valErr.Violations {
			fieldViolations = append(fieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       v.Field,
				Description: v.Description,
			})
		}
		if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
			FieldViolations: fieldViolations,
		}); detailErr == nil {
			connectErr.AddDetail(detail)
		} else {
			slog.Warn("failed to attach error detail", slog.Any("error", detailErr))
		}
	}
	return connectErr
}

func validateRequest(validator *config.Validator, msg any) error {
	if err := validator.Struct(msg); err != nil {
		return invalidArgument(err)
	}
	return nil
}
