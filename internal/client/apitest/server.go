// Package apitest runs an in-memory stand-in for the remote movie service so
// client code can be exercised end to end over real HTTP. It is a test
// double: no persistence, no password hashing, one process.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/gorilla/mux"
)

// IncorrectCredentialsMessage is what the service answers for a wrong password.
const IncorrectCredentialsMessage = "Incorrect email or password"

// Route names, usable with Fail and Block.
const (
	RouteLogin       = "login"
	RouteDetails     = "details"
	RouteRegister    = "register"
	RouteGetMovies   = "getMovies"
	RouteGetMovie    = "getMovie"
	RouteGetComments = "getComments"
	RouteAddComment  = "addComment"
	RouteAddMovie    = "addMovie"
	RouteUpdateMovie = "updateMovie"
	RouteDeleteMovie = "deleteMovie"
	RoutePing        = "ping"
)

type User struct {
	ID       string
	Email    string
	Password string
	IsAdmin  bool
}

// Request is one recorded incoming call.
type Request struct {
	Route         string
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
	Body          []byte
}

type failure struct {
	status  int
	message string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	secret   []byte
	users    map[string]*User
	movies   []*models.Movie
	nextID   int
	requests []Request
	failures map[string]failure
	blocks   map[string]chan struct{}
}

// New starts a server and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		secret:   newSecret(),
		users:    make(map[string]*User),
		failures: make(map[string]failure),
		blocks:   make(map[string]chan struct{}),
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record)

	r.HandleFunc("/", s.ping).Methods(http.MethodGet).Name(RoutePing)

	users := r.PathPrefix("/users").Subrouter()
	users.HandleFunc("/login", s.login).Methods(http.MethodPost).Name(RouteLogin)
	users.HandleFunc("/register", s.register).Methods(http.MethodPost).Name(RouteRegister)
	users.Handle("/details", s.authed(s.details)).Methods(http.MethodGet).Name(RouteDetails)

	movies := r.PathPrefix("/movies").Subrouter()
	movies.Handle("/getMovies", s.authed(s.getMovies)).Methods(http.MethodGet).Name(RouteGetMovies)
	movies.Handle("/getMovie/{id}", s.authed(s.getMovie)).Methods(http.MethodGet).Name(RouteGetMovie)
	movies.Handle("/getComments/{id}", s.authed(s.getComments)).Methods(http.MethodGet).Name(RouteGetComments)
	movies.Handle("/addComment/{id}", s.authed(s.addComment)).Methods(http.MethodPatch).Name(RouteAddComment)
	movies.Handle("/addMovie", s.admin(s.addMovie)).Methods(http.MethodPost).Name(RouteAddMovie)
	movies.Handle("/updateMovie/{id}", s.admin(s.updateMovie)).Methods(http.MethodPatch).Name(RouteUpdateMovie)
	movies.Handle("/deleteMovie/{id}", s.admin(s.deleteMovie)).Methods(http.MethodDelete).Name(RouteDeleteMovie)

	return r
}

// ---- fixtures ----

// AddUser registers a user and returns its id.
func (s *Server) AddUser(email, password string, isAdmin bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password, isAdmin).ID
}

func (s *Server) addUserLocked(email, password string, isAdmin bool) *User {
	s.nextID++
	u := &User{ID: fmt.Sprintf("u%04d", s.nextID), Email: email, Password: password, IsAdmin: isAdmin}
	s.users[strings.ToLower(email)] = u
	return u
}

// AddMovie stores a movie and returns its id.
func (s *Server) AddMovie(m models.Movie) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addMovieLocked(m).ID
}

func (s *Server) addMovieLocked(m models.Movie) *models.Movie {
	s.nextID++
	m.ID = fmt.Sprintf("m%04d", s.nextID)
	if m.Comments == nil {
		m.Comments = []models.Comment{}
	}
	s.movies = append(s.movies, &m)
	return &m
}

// Movie returns a copy of a stored movie.
func (s *Server) Movie(id string) (models.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.findLocked(id)
	if m == nil {
		return models.Movie{}, false
	}
	cp := *m
	cp.Comments = append([]models.Comment(nil), m.Comments...)
	return cp, true
}

// Token issues a valid credential for the user with the given email.
func (s *Server) Token(email string) string {
	s.mu.Lock()
	u := s.users[strings.ToLower(email)]
	s.mu.Unlock()
	if u == nil {
		panic("apitest: unknown user " + email)
	}
	tok, err := GenerateToken(*u, s.secret, time.Hour)
	if err != nil {
		panic(err)
	}
	return tok
}

// Fail makes every call to route answer status with message until cleared
// with Fail(route, 0, "").
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, route)
		return
	}
	s.failures[route] = failure{status: status, message: message}
}

// Block holds calls to route until the returned func is called.
func (s *Server) Block(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.blocks[route] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.blocks, route)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many calls hit route; an empty route counts all calls.
func (s *Server) Count(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if route == "" {
		return len(s.requests)
	}
	n := 0
	for _, r := range s.requests {
		if r.Route == route {
			n++
		}
	}
	return n
}

// ---- middleware ----

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		var body []byte
		if r.Body != nil {
			var raw json.RawMessage
			_ = json.NewDecoder(r.Body).Decode(&raw)
			body = raw
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Route:         name,
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          body,
		})
		f, failing := s.failures[name]
		block := s.blocks[name]
		s.mu.Unlock()

		if block != nil {
			select {
			case <-block:
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			writeJSON(w, f.status, map[string]string{"message": f.message})
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authed(h func(http.ResponseWriter, *http.Request, *User)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tok, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tok == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "missing token"})
			return
		}
		claims, err := ParseToken(tok, s.secret)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}

		s.mu.Lock()
		u := s.users[strings.ToLower(claims.Email)]
		s.mu.Unlock()
		if u == nil || u.ID != claims.ID {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unknown user"})
			return
		}
		h(w, r, u)
	})
}

// admin re-checks the role on the server for every mutating call.
func (s *Server) admin(h func(http.ResponseWriter, *http.Request, *User)) http.Handler {
	return s.authed(func(w http.ResponseWriter, r *http.Request, u *User) {
		if !u.IsAdmin {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Action Forbidden"})
			return
		}
		h(w, r, u)
	})
}

// ---- handlers ----

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	u := s.users[strings.ToLower(req.Email)]
	s.mu.Unlock()

	if u == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "No email found"})
		return
	}
	if u.Password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": IncorrectCredentialsMessage})
		return
	}

	tok, err := GenerateToken(*u, s.secret, time.Hour)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": tok})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Email invalid"})
		return
	}
	if len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Password must be atleast 8 characters"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[strings.ToLower(req.Email)]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Email already registered"})
		return
	}
	s.addUserLocked(req.Email, req.Password, false)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registered Successfully"})
}

func (s *Server) details(w http.ResponseWriter, _ *http.Request, u *User) {
	writeJSON(w, http.StatusOK, map[string]any{
		"user": models.User{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin},
	})
}

func (s *Server) getMovies(w http.ResponseWriter, _ *http.Request, _ *User) {
	s.mu.Lock()
	list := make([]models.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		list = append(list, *m)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"movies": list})
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request, _ *User) {
	m, ok := s.Movie(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Movie not found"})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) getComments(w http.ResponseWriter, r *http.Request, _ *User) {
	m, ok := s.Movie(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Movie not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": m.Comments})
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request, _ *User) {
	var req models.CommentDraft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Comment == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "comment is required"})
		return
	}

	s.mu.Lock()
	m := s.findLocked(mux.Vars(r)["id"])
	if m == nil {
		s.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Movie not found"})
		return
	}
	m.Comments = append(m.Comments, models.Comment{UserID: req.UserID, Comment: req.Comment})
	updated := *m
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"message": "comment added successfully", "updatedMovie": updated})
}

func (s *Server) addMovie(w http.ResponseWriter, r *http.Request, _ *User) {
	m, ok := decodeMovie(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	created := *s.addMovieLocked(m)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateMovie(w http.ResponseWriter, r *http.Request, _ *User) {
	in, ok := decodeMovie(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	m := s.findLocked(mux.Vars(r)["id"])
	if m == nil {
		s.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Movie not found"})
		return
	}
	m.Title, m.Director, m.Genre, m.Year, m.Description = in.Title, in.Director, in.Genre, in.Year, in.Description
	updated := *m
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"message": "Movie updated successfully", "updatedMovie": updated})
}

func (s *Server) deleteMovie(w http.ResponseWriter, r *http.Request, _ *User) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.movies {
		if m.ID == id {
			s.movies = append(s.movies[:i], s.movies[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Movie deleted successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Movie not found"})
}

func (s *Server) findLocked(id string) *models.Movie {
	for _, m := range s.movies {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func decodeMovie(w http.ResponseWriter, r *http.Request) (models.Movie, bool) {
	var m models.Movie
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return m, false
	}
	if m.Title == "" || m.Director == "" || m.Genre == "" || m.Year == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "title, director, genre and year are required"})
		return m, false
	}
	return m, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
