package handler

import (
	"net/http"

	"github.com/cradoe/profilegate/internal/response"
)

func (h *RouteHandler) HandleWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.API.GetWallet(r.Context(), credentialsFor(r).AccessToken)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, wallet, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
