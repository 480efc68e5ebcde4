package handler

import (
	"net/http"

	"github.com/Dev-Pakorn/CKLab/internal/directory"
	"github.com/Dev-Pakorn/CKLab/internal/util"

	"github.com/gin-gonic/gin"
)

// StudentHandler proxies the registrar directory lookup used to
// prefill check-in data.
type StudentHandler struct {
	Directory *directory.Client
}

func NewStudentHandler(client *directory.Client) *StudentHandler {
	return &StudentHandler{Directory: client}
}

// Get looks up one external id. Unknown ids and upstream failures both
// come back as 404: the caller falls back to manual entry either way.
func (h *StudentHandler) Get(c *gin.Context) {
	info, err := h.Directory.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup failed")
		return
	}
	if info == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "student not found")
		return
	}
	util.Success(c, util.Response{"student": info})
}
