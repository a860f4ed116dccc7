package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// ValidatePage verifica se a página pode ser usada nos criativos da conta da organização
func ValidatePage(clients ClientFactory, usecases Usecases) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		client, ok := clientFor(w, r, clients)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, usecases.Validator(client).Validate(r.Context(), pageID))
	})
}
