package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/costopro/httpx"
	"github.com/diewo77/costopro/internal/services"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	identity *services.IdentityService
	log      zerolog.Logger
}

func NewUserHandler(identity *services.IdentityService, log zerolog.Logger) *UserHandler {
	return &UserHandler{identity: identity, log: log}
}

// List returns the directory. Credentials never leave the server.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.identity.ListUsers(r.Context(), services.SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	for i := range users {
		users[i] = users[i].Redacted()
	}
	httpx.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.NewUserInput
	if !decode(w, r, &in) {
		return
	}
	u, err := h.identity.AddUser(r.Context(), services.SessionFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "bad_request", nil)
		return
	}
	if err := h.identity.DeleteUser(r.Context(), services.SessionFromContext(r.Context()), uint(id)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
