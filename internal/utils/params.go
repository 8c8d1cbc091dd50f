package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID parses a route parameter as an entity id.
func ParamID(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New("missing " + name)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}
