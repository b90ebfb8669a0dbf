package stories

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glimmersocial/glimmer/pkg/engagements"
	httputil "github.com/glimmersocial/glimmer/pkg/http"
)

type Endpoint struct {
	engine *Engine
}

func NewEndpoint(engine *Engine) *Endpoint {
	return &Endpoint{engine: engine}
}

func (e *Endpoint) Router() *mux.Router {
	r := mux.NewRouter()

	r.Path("/create").Methods("POST").HandlerFunc(e.CreateStory)
	r.Path("/user/{id:[0-9]+}").Methods("GET").HandlerFunc(e.GetStoriesForUser)
	r.Path("/{id:[0-9a-zA-Z]+}").Methods("GET").HandlerFunc(e.GetStory)
	r.Path("/{id:[0-9a-zA-Z]+}").Methods("DELETE").HandlerFunc(e.DeleteStory)
	r.Path("/{id:[0-9a-zA-Z]+}/{kind:view|react|share|report|question}").Methods("POST").HandlerFunc(e.AddEngagement)

	return r
}

func (e *Endpoint) CreateStory(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "")
		return
	}

	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	input := StoryInput{
		Text:        r.Form.Get("text"),
		Picture:     r.Form.Get("picture"),
		Video:       r.Form.Get("video"),
		Link:        r.Form.Get("link"),
		Location:    r.Form.Get("location"),
		Hashtag:     r.Form.Get("hashtag"),
		IsQuestions: r.Form.Get("is_questions") == "true",
		MusicID:     httputil.GetInt(r.Form, "music", 0),
		FeelingID:   httputil.GetInt(r.Form, "feeling", 0),
	}

	for _, str := range r.Form["mentions"] {
		id, err := strconv.Atoi(str)
		if err != nil {
			httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid mention")
			return
		}

		input.Mentions = append(input.Mentions, id)
	}

	story, err := e.engine.CreateStory(userID, input)
	if err != nil {
		errorResponse(w, err, httputil.ErrorCodeFailedToCreateStory)
		return
	}

	err = httputil.JsonEncode(w, story)
	if err != nil {
		log.Printf("failed to write story response: %s\n", err.Error())
	}
}

func (e *Endpoint) GetStory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	view, err := e.engine.GetStoryView(params["id"])
	if err != nil {
		errorResponse(w, err, httputil.ErrorCodeFailedToGetStory)
		return
	}

	err = httputil.JsonEncode(w, view)
	if err != nil {
		log.Printf("failed to write story response: %s\n", err.Error())
	}
}

func (e *Endpoint) GetStoriesForUser(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	id, err := strconv.Atoi(params["id"])
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	result, err := e.engine.GetStoriesForUser(id)
	if err != nil {
		errorResponse(w, err, httputil.ErrorCodeFailedToGetStory)
		return
	}

	err = httputil.JsonEncode(w, result)
	if err != nil {
		log.Printf("failed to write story response: %s\n", err.Error())
	}
}

func (e *Endpoint) DeleteStory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	err := e.engine.RemoveStory(params["id"], userID)
	if err != nil {
		errorResponse(w, err, httputil.ErrorCodeFailedToDeleteStory)
		return
	}

	httputil.JsonSuccess(w)
}

func (e *Endpoint) AddEngagement(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "")
		return
	}

	params := mux.Vars(r)

	kind, ok := engagements.KindFromString(params["kind"])
	if !ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid kind")
		return
	}

	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	input := EngagementInput{
		Emoji:  r.Form.Get("emoji"),
		Reason: r.Form.Get("reason"),
		Text:   r.Form.Get("text"),
	}

	record, err := e.engine.AddEngagement(params["id"], userID, kind, input)
	if err != nil {
		errorResponse(w, err, httputil.ErrorCodeFailedToEngage)
		return
	}

	err = httputil.JsonEncode(w, record)
	if err != nil {
		log.Printf("failed to write engagement response: %s\n", err.Error())
	}
}

func errorResponse(w http.ResponseWriter, err error, code httputil.ErrorCode) {
	switch err {
	case ErrNotFound:
		httputil.JsonError(w, http.StatusNotFound, httputil.ErrorCodeStoryNotFound, "not found")
		return
	case ErrForbidden:
		httputil.JsonError(w, http.StatusForbidden, httputil.ErrorCodeNotAllowed, "not allowed")
		return
	case ErrQuestionsDisabled:
		httputil.JsonError(w, http.StatusPreconditionFailed, httputil.ErrorCodeQuestionsDisabled, err.Error())
		return
	}

	if verr, ok := err.(*ValidationError); ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, verr.Reason)
		return
	}

	if rerr, ok := err.(*ReferenceError); ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeMissingReference, rerr.Error())
		return
	}

	httputil.JsonError(w, http.StatusInternalServerError, code, "")
}
