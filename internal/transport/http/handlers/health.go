package http_handlers

import (
	"net/http"

	"github.com/jobhive/auth-service/internal/transport/http/response"
)

type healthBody struct {
	Status string `json:"status"`
}

func Health(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, healthBody{Status: "ok"})
}
