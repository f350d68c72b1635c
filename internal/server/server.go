// Package server exposes the cleaner over HTTP for spot-checking rules
// against live samples.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dialogkit/postfilter/internal/cleaner"
	"github.com/dialogkit/postfilter/internal/dialog"
)

type CleanRequest struct {
	// one dialog, in utterance order
	Dialog   []string `json:"dialog" binding:"required"`
	DataType string   `json:"data_type"`
}

type CleanResponse struct {
	Fragments []string `json:"fragments"`
	Kept      int      `json:"kept"`
	Dropped   int      `json:"dropped"`
}

// Options mirrors the batch filter knobs the endpoint honors.
type Options struct {
	MinLength      int
	MaxLength      int
	RequireChinese bool
	NFKC           bool
}

func (o Options) withDefaults() Options {
	if o.MinLength == 0 {
		o.MinLength = 5
	}
	if o.MaxLength == 0 {
		o.MaxLength = 200
	}
	return o
}

// NewRouter builds the gin engine with the clean and health routes.
func NewRouter(opts Options) *gin.Engine {
	opts = opts.withDefaults()
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		api.POST("/clean", cleanHandler(opts))
	}
	return engine
}

func cleanHandler(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request CleanRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dataType := request.DataType
		if dataType == "" {
			dataType = cleaner.TypeNone
		}

		cleaned := make([]string, 0, len(request.Dialog))
		for _, seq := range request.Dialog {
			if opts.NFKC {
				seq = cleaner.FoldNFKC(seq)
			}
			seq = strings.ReplaceAll(seq, " ", "")
			seq = cleaner.Clean(seq, dataType)
			if opts.RequireChinese && !cleaner.ContainsChinese(seq) {
				seq = ""
			}
			cleaned = append(cleaned, seq)
		}

		runs := dialog.Segment(cleaned, opts.MaxLength)
		fragments := dialog.Expand(runs, opts.MinLength)
		kept := 0
		for _, run := range runs {
			kept += len(run)
		}
		c.JSON(http.StatusOK, CleanResponse{
			Fragments: fragments,
			Kept:      kept,
			Dropped:   len(request.Dialog) - kept,
		})
	}
}
