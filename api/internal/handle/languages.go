package handle

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ergo-proxy/api/internal/i18n"
	"ergo-proxy/api/internal/prompt"
)

type LanguageResponse struct {
	Language string       `json:"language"`
	Strings  i18n.Strings `json:"strings"`
}

// Languages negotiates from Accept-Language.
func (h *Handle) Languages(c *gin.Context) {
	lang := i18n.FromAcceptLanguage(c.GetHeader("Accept-Language"))
	c.JSON(http.StatusOK, LanguageResponse{Language: lang, Strings: i18n.Lookup(lang)})
}

func (h *Handle) Language(c *gin.Context) {
	lang := strings.ToLower(strings.TrimSpace(c.Param("lang")))
	if !i18n.Supported(lang) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Unsupported language",
			"language":  lang,
			"supported": prompt.Languages(),
		})
		return
	}
	c.JSON(http.StatusOK, LanguageResponse{Language: lang, Strings: i18n.Lookup(lang)})
}
