package harness

import (
	"errors"

	"github.com/roach88/wobos/internal/accessor"
	"github.com/roach88/wobos/internal/bridge"
	"github.com/roach88/wobos/internal/config"
	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/registry"
	"github.com/roach88/wobos/internal/schema"
)

// ErrorCode returns the code of the first coded error in err's chain,
// or "" when none carries one.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var (
		protoErr  *bridge.ProtocolError
		kindErr   *accessor.KindError
		lookupErr *enum.LookupError
		varErr    *registry.Error
		schemaErr *schema.Error
		caseErr   *config.Error
	)
	switch {
	case errors.As(err, &protoErr):
		return protoErr.Code
	case errors.As(err, &kindErr):
		return accessor.CodeKindMismatch
	case errors.As(err, &lookupErr):
		return lookupErr.Code
	case errors.As(err, &varErr):
		return varErr.Code
	case errors.As(err, &schemaErr):
		return schemaErr.Code
	case errors.As(err, &caseErr):
		return caseErr.Code
	}
	return ""
}
