package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

// extractUserID pulls a user ID out of the request according to an
// ownership rule source. Body reads restore the body so binding in the
// handler still works.
func extractUserID(c *gin.Context, source string, paramName string) string {
	switch source {
	case "path":
		return c.Param(paramName)
	case "query":
		return c.Query(paramName)
	case "header":
		return c.GetHeader(paramName)
	case "body":
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return ""
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var bodyJSON map[string]interface{}
		if err := json.Unmarshal(bodyBytes, &bodyJSON); err != nil {
			return ""
		}

		switch id := bodyJSON[paramName].(type) {
		case string:
			return id
		case float64:
			// JSON numbers decode as float64; IDs are integral.
			return strconv.FormatInt(int64(id), 10)
		}
	}
	return ""
}
