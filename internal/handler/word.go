package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wapi/api/internal/middleware"
	"github.com/wapi/api/internal/model"
	"github.com/wapi/api/internal/random"
	"github.com/wapi/api/internal/store"
	"github.com/wapi/api/internal/validator"
)

// Check responses.
const (
	CheckFound    = "OK"
	CheckNotFound = "not_found"
)

type WordHandler struct {
	store     store.Store
	generator *random.Generator
	now       func() time.Time
}

func NewWordHandler(s store.Store, generator *random.Generator) *WordHandler {
	return &WordHandler{
		store:     s,
		generator: generator,
		now:       time.Now,
	}
}

// Random returns a random word of the requested size (5, 6 or 7; default 5).
// A missing record yields an empty body.
func (h *WordHandler) Random(c *gin.Context) {
	size, err := validator.NormalizeSize(c.Query("size"))
	if err != nil {
		badRequest(c, err)
		return
	}

	index := h.generator.Index(size)
	word, _, err := h.lookup(c, model.TableRandom, size, strconv.Itoa(index))
	if err != nil {
		return
	}

	c.String(http.StatusOK, word)
}

// Daily returns the word assigned to the current UTC date. The word is the
// same for every call within one day.
func (h *WordHandler) Daily(c *gin.Context) {
	size, err := validator.NormalizeSize(c.Query("size"))
	if err != nil {
		badRequest(c, err)
		return
	}

	word, _, err := h.lookup(c, model.TableDaily, size, model.DayKey(h.now()))
	if err != nil {
		return
	}

	c.String(http.StatusOK, word)
}

// Check reports whether the input is a known word: "OK" or "not_found".
func (h *WordHandler) Check(c *gin.Context) {
	word, err := validator.NormalizeWord(c.Query("input"))
	if err != nil {
		badRequest(c, err)
		return
	}

	_, found, err := h.lookup(c, model.TableLookup, len([]rune(word)), word)
	if err != nil {
		return
	}

	if found {
		c.String(http.StatusOK, CheckFound)
		return
	}
	c.String(http.StatusOK, CheckNotFound)
}

// lookup reads one record. Store failures are logged and answered with a 500
// before returning the error.
func (h *WordHandler) lookup(c *gin.Context, table string, size int, row string) (string, bool, error) {
	word, found, err := h.store.Get(c.Request.Context(), table, strconv.Itoa(size), row)
	if err != nil {
		middleware.RecordWordLookup(table, "error")
		log.Printf("Word lookup failed: %v", err)
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return "", false, err
	}

	if !found {
		middleware.RecordWordLookup(table, "not_found")
		return "", false, nil
	}

	middleware.RecordWordLookup(table, "found")
	return word.Text, true, nil
}

func badRequest(c *gin.Context, err error) {
	c.String(http.StatusBadRequest, validator.Code(err))
}
