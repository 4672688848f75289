package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ergo-proxy/api/internal/apperr"
)

var titles = map[apperr.Kind]string{
	apperr.KindConfiguration:           "API key not configured",
	apperr.KindInvalidInput:            "Invalid data",
	apperr.KindUpstream:                "Gemini API Error",
	apperr.KindInvalidUpstreamResponse: "Invalid Gemini response",
	apperr.KindMalformedAnalysis:       "Parse error",
	apperr.KindIncompleteAnalysis:      "Incomplete analysis",
	apperr.KindInvalidAnalysis:         "Invalid analysis",
	apperr.KindInternal:                "Internal server error",
}

// writeError renders {error, message, ...details}. Unclassified errors
// become 500 Internal server error.
func writeError(c *gin.Context, err error) {
	e, ok := apperr.As(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   titles[apperr.KindInternal],
			"message": err.Error(),
		})
		return
	}

	body := gin.H{}
	for k, v := range e.Details {
		body[k] = v
	}
	title, ok := titles[e.Kind]
	if !ok {
		title = titles[apperr.KindInternal]
	}
	body["error"] = title
	body["message"] = e.Message

	status := e.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, body)
}
