package handler

import (
	"net/http"
	"time"

	"github.com/authgate/authgate-go/internal/response"
)

// pingTimeFormat renders the server time as YYYY/MM/DD HH:mm:ss.
const pingTimeFormat = "2006/01/02 15:04:05"

// HandlePing handles GET /api/v1/ping requests.
func HandlePing(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusOK, time.Now().Format(pingTimeFormat))
}
