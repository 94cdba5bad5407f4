package cli

import (
	"fmt"
	"io"
	"strconv"

	"timegate/internal/api"
	"timegate/internal/errors"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", raw, "the id must be a positive integer")
	}
	return id, nil
}

func printViolations(out io.Writer, result *api.ResultDTO) {
	if result == nil {
		return
	}
	for _, v := range result.Violations {
		fmt.Fprintf(out, "  %s: %s [%s]\n", v.Field, v.Message, v.Code)
	}
}
