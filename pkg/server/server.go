package server

import (
	"github.com/ml8/counter-queue/pkg/queue"
	"github.com/ml8/counter-queue/pkg/service"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	_ "embed"
	"encoding/json"
	"net/http"
	"net/url"
)

//go:embed ui/index.html
var indexHTML []byte

const enrolledMessage = "Client enrolled successfully!"

type Options struct {
	// Mount /slash and /actions.
	SlashCommands bool
	// Slack signing secret; requests are not verified when empty.
	SigningSecret string
}

// Server is the HTTP face of one counter. It keeps no queue state of its own.
type Server struct {
	service  *service.QueueService
	commands map[string]service.Command
	actions  map[string]service.Action
	secret   string
	router   *mux.Router
}

func CreateServer(s *service.QueueService, opts Options) (srv *Server) {
	srv = &Server{
		service:  s,
		commands: service.DefaultCommands(),
		actions:  service.DefaultActions(),
		secret:   opts.SigningSecret,
		// Contacts may contain escaped slashes; match on the encoded path.
		router: mux.NewRouter().UseEncodedPath(),
	}

	r := srv.router
	r.Use(requestID, accessLog)
	r.HandleFunc("/enroll", srv.enroll).Methods(http.MethodPost)
	r.HandleFunc("/call", srv.call).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/queue", srv.list).Methods(http.MethodGet)
	r.HandleFunc("/history", srv.history).Methods(http.MethodGet)
	r.HandleFunc("/notify/{contact}", srv.notify).Methods(http.MethodGet)
	if opts.SlashCommands {
		r.HandleFunc("/slash", srv.ForwardCommand).Methods(http.MethodPost)
		r.HandleFunc("/actions", srv.ForwardAction).Methods(http.MethodPost)
	}
	r.HandleFunc("/", srv.index).Methods(http.MethodGet)
	return
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respond(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, code int, err error) {
	respond(w, code, map[string]string{"error": err.Error()})
}

// Snapshots are never encoded as null.
func nonNil(cs []queue.Client) []queue.Client {
	if cs == nil {
		return []queue.Client{}
	}
	return cs
}

type enrollBody struct {
	Message string         `json:"message"`
	Queue   []queue.Client `json:"queue"`
	Version int64          `json:"version"`
}

type callBody struct {
	Served  *queue.Client  `json:"served"`
	Queue   []queue.Client `json:"queue"`
	History []queue.Client `json:"history"`
	Version int64          `json:"version"`
}

type queueBody struct {
	Queue   []queue.Client `json:"queue"`
	Version int64          `json:"version"`
}

type historyBody struct {
	History []queue.Client `json:"history"`
	Version int64          `json:"version"`
}

type notifyBody struct {
	Notification string `json:"notification"`
}

func (s *Server) enroll(w http.ResponseWriter, r *http.Request) {
	req := &service.EnrollRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		glog.Infof("Bad enroll body: %v", err)
		respondError(w, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
		return
	}
	resp := &service.EnrollResponse{}
	if err := s.service.Enroll(req, resp); err != nil {
		if errors.Is(err, queue.ErrInvalidPriority) {
			respondError(w, http.StatusBadRequest, errors.Cause(err))
			return
		}
		glog.Errorf("Error enrolling %v: %v", req.Name, err)
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respond(w, http.StatusOK, enrollBody{Message: enrolledMessage, Queue: nonNil(resp.Waiting), Version: resp.Version})
}

func (s *Server) call(w http.ResponseWriter, r *http.Request) {
	resp := &service.CallResponse{}
	if err := s.service.Call(&service.CallRequest{}, resp); err != nil {
		glog.Errorf("Error calling next client: %v", err)
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respond(w, http.StatusOK, callBody{
		Served:  resp.Served,
		Queue:   nonNil(resp.Waiting),
		History: nonNil(resp.History),
		Version: resp.Version})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	resp := &service.ListResponse{}
	if err := s.service.List(&service.ListRequest{}, resp); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respond(w, http.StatusOK, queueBody{Queue: nonNil(resp.Waiting), Version: resp.Version})
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	resp := &service.HistoryResponse{}
	if err := s.service.History(&service.HistoryRequest{}, resp); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respond(w, http.StatusOK, historyBody{History: nonNil(resp.History), Version: resp.Version})
}

func (s *Server) notify(w http.ResponseWriter, r *http.Request) {
	contact, err := url.PathUnescape(mux.Vars(r)["contact"])
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.Wrap(err, "invalid contact"))
		return
	}
	resp := &service.NotifyResponse{}
	req := &service.NotifyRequest{Contact: contact}
	if err := s.service.Notify(req, resp); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respond(w, http.StatusOK, notifyBody{Notification: resp.Message})
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}
