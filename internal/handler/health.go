package handler

import (
	"net/http"

	"github.com/cradoe/profilegate/internal/response"
	"github.com/cradoe/profilegate/internal/version"
)

func (h *RouteHandler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	message := "Up and grateful"

	data := map[string]string{
		"status":  "available",
		"version": version.Get(),
	}

	err := response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
