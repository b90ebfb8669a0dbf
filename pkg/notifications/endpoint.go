package notifications

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	httputil "github.com/glimmersocial/glimmer/pkg/http"
)

type Endpoint struct {
	storage *Storage
	targets *Targets
}

func NewEndpoint(storage *Storage, targets *Targets) *Endpoint {
	return &Endpoint{
		storage: storage,
		targets: targets,
	}
}

func (e *Endpoint) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", e.GetNotifications).Methods("GET")
	r.HandleFunc("/settings", e.GetSettings).Methods("GET")
	r.HandleFunc("/settings", e.UpdateSettings).Methods("POST")

	return r
}

func (e *Endpoint) GetNotifications(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusUnauthorized, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	list, err := e.storage.GetNotifications(id)
	if err != nil {
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToGetNotifications, "failed to get notifications")
		return
	}

	e.storage.MarkNotificationsViewed(id)

	err = httputil.JsonEncode(w, list)
	if err != nil {
		log.Printf("failed to write notifications response: %s\n", err.Error())
	}
}

func (e *Endpoint) GetSettings(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusUnauthorized, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	target, err := e.targets.GetTargetFor(id)
	if err != nil {
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToGetNotifications, "failed to get settings")
		return
	}

	err = httputil.JsonEncode(w, target)
	if err != nil {
		log.Printf("failed to write settings response: %s\n", err.Error())
	}
}

func (e *Endpoint) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "")
		return
	}

	id, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusUnauthorized, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	mentions := r.Form.Get("mentions") == "true"
	reactions := r.Form.Get("reactions") == "true"

	err = e.targets.UpdateTargetFor(id, mentions, reactions)
	if err != nil {
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToUpdateSettings, "failed to update settings")
		return
	}

	httputil.JsonSuccess(w)
}
