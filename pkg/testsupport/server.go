// Package testsupport provides an in-memory portfolio API used as the
// black-box remote in client and store tests. It mirrors the route shapes
// and error payloads of the real backend without any persistence.
package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Server is an http.Handler backed by in-memory maps. Zero values are
// usable; NewServer seeds the admin credentials.
type Server struct {
	mu sync.Mutex

	Email    string
	Password string

	collections map[string][]map[string]any
	messages    []map[string]any
	nextMsgID   int
	sections    []map[string]any
	hero        map[string]any
	views       []string
	tokens      map[string]bool

	// failures maps "METHOD /path" to a status code returned instead of the
	// real handler, consumed per entry count.
	failures map[string]int
}

// NewServer builds an empty server accepting the given admin credentials.
func NewServer(email, password string) *Server {
	return &Server{
		Email:       email,
		Password:    password,
		collections: map[string][]map[string]any{},
		nextMsgID:   1,
		hero:        map[string]any{},
		tokens:      map[string]bool{},
		failures:    map[string]int{},
		sections: []map[string]any{
			{"key": "hero", "label": "Hero", "visible": true},
			{"key": "about", "label": "About", "visible": true},
			{"key": "projects", "label": "Projects", "visible": true},
			{"key": "contact", "label": "Contact", "visible": true},
		},
	}
}

// Seed replaces a collection's contents. Entities without an id get one.
func (s *Server) Seed(collection string, items []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seeded := make([]map[string]any, 0, len(items))
	for _, item := range items {
		clone := cloneEntity(item)
		if _, ok := clone["id"]; !ok {
			clone["id"] = uuid.NewString()
		}
		seeded = append(seeded, clone)
	}
	s.collections[collection] = seeded
}

// Items returns a copy of a collection's current contents.
func (s *Server) Items(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.collections[collection]))
	for _, item := range s.collections[collection] {
		out = append(out, cloneEntity(item))
	}
	return out
}

// SeedMessage adds one contact message and returns its id.
func (s *Server) SeedMessage(name, email, subject, body string, read bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextMsgID
	s.nextMsgID++
	s.messages = append(s.messages, map[string]any{
		"id":         id,
		"name":       name,
		"email":      email,
		"subject":    subject,
		"message":    body,
		"read":       read,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
	return id
}

// FailNext makes the next call to METHOD path answer with the given status
// and a {"message": ...} body.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// Token mints a valid bearer token without going through /login.
func (s *Server) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = true
	return token
}

// Views returns the pages tracked so far.
func (s *Server) Views() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.views...)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if status, ok := s.takeFailure(r.Method, r.URL.Path); ok {
		writeJSON(w, status, map[string]any{"message": "injected failure"})
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api")
	segments := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case path == "/login" && r.Method == http.MethodPost:
		s.handleLogin(w, r)
	case path == "/logout" && r.Method == http.MethodPost:
		s.requireAuth(w, r, s.handleLogout)
	case path == "/user" && r.Method == http.MethodGet:
		s.requireAuth(w, r, s.handleUser)
	case path == "/upload-file" && r.Method == http.MethodPost:
		s.requireAuth(w, r, s.handleUpload("file"))
	case path == "/page-views" && r.Method == http.MethodPost:
		s.handleTrackView(w, r)
	case path == "/page-views/stats" && r.Method == http.MethodGet:
		s.requireAuth(w, r, s.handleViewStats)
	case strings.HasPrefix(path, "/contact-messages"):
		s.handleMessages(w, r, segments)
	case strings.HasPrefix(path, "/settings/"):
		s.handleSettings(w, r, path)
	case len(segments) >= 1 && segments[0] != "":
		s.handleCollection(w, r, segments)
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
	}
}

func (s *Server) takeFailure(method, path string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + strings.TrimPrefix(path, "/api")
	status, ok := s.failures[key]
	if ok {
		delete(s.failures, key)
	}
	return status, ok
}

func (s *Server) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[token]
}

func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
		return
	}
	next(w, r)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}
	if creds.Email != s.Email || creds.Password != s.Password {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The provided credentials are incorrect.",
			"errors":  map[string]any{"email": []string{"The provided credentials are incorrect."}},
		})
		return
	}
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = true
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out"})
}

func (s *Server) handleUser(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    1,
		"name":  "Admin",
		"email": s.Email,
	})
}

func (s *Server) handleUpload(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed upload"})
			return
		}
		file, header, err := r.FormFile(field)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "no file provided",
				"errors":  map[string]any{field: []string{"required"}},
			})
			return
		}
		file.Close()
		writeJSON(w, http.StatusOK, map[string]any{
			"url":  "/uploads/" + uuid.NewString() + "-" + header.Filename,
			"name": header.Filename,
		})
	}
}

func (s *Server) handleTrackView(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Page string `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Page == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "page is required"})
		return
	}
	s.mu.Lock()
	s.views = append(s.views, body.Page)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"message": "ok"})
}

func (s *Server) handleViewStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	total := len(s.views)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"total_views":     total,
		"unique_visitors": total,
		"devices":         map[string]any{"mobile": 0, "desktop": total},
		"peak_hours":      []any{},
		"weekly_comparison": map[string]any{
			"this_week_views": total,
			"last_week_views": 0,
			"views_change":    100,
		},
		"recent_views": []any{},
	})
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request, segments []string) {
	switch {
	case len(segments) == 1 && r.Method == http.MethodPost:
		s.handleSubmitMessage(w, r)
	case len(segments) == 1 && r.Method == http.MethodGet:
		s.requireAuth(w, r, s.handleListMessages)
	case len(segments) == 2 && segments[1] == "unread-count" && r.Method == http.MethodGet:
		s.requireAuth(w, r, s.handleUnreadCount)
	case len(segments) == 3 && segments[2] == "read" && r.Method == http.MethodPut:
		s.requireAuth(w, r, func(w http.ResponseWriter, _ *http.Request) {
			s.handleMarkRead(w, segments[1])
		})
	case len(segments) == 2 && r.Method == http.MethodDelete:
		s.requireAuth(w, r, func(w http.ResponseWriter, _ *http.Request) {
			s.handleDeleteMessage(w, segments[1])
		})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
	}
}

func (s *Server) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}
	if body.Name == "" || body.Email == "" || body.Message == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "validation failed",
			"errors":  map[string]any{"name": []string{"required"}},
		})
		return
	}
	s.SeedMessage(body.Name, body.Email, body.Subject, body.Message, false)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "sent"})
}

func (s *Server) handleListMessages(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]map[string]any, len(s.messages))
	for i, m := range s.messages {
		out[len(s.messages)-1-i] = cloneEntity(m)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	count := 0
	for _, m := range s.messages {
		if read, _ := m["read"].(bool); !read {
			count++
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"count": count})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m["id"] == id {
			m["read"] = true
			writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.messages {
		if m["id"] == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"message": "deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request, path string) {
	switch {
	case path == "/settings/visible-sections" && r.Method == http.MethodGet:
		s.mu.Lock()
		keys := []string{}
		for _, sec := range s.sections {
			if visible, _ := sec["visible"].(bool); visible {
				keys = append(keys, fmt.Sprint(sec["key"]))
			}
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, keys)
	case path == "/settings/sections" && r.Method == http.MethodGet:
		s.requireAuth(w, r, func(w http.ResponseWriter, _ *http.Request) {
			s.mu.Lock()
			out := make([]map[string]any, len(s.sections))
			for i, sec := range s.sections {
				out[i] = cloneEntity(sec)
			}
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, out)
		})
	case path == "/settings/sections" && r.Method == http.MethodPut:
		s.requireAuth(w, r, s.handleUpdateSections)
	case path == "/settings/hero" && r.Method == http.MethodGet:
		s.requireAuth(w, r, func(w http.ResponseWriter, _ *http.Request) {
			s.mu.Lock()
			hero := cloneEntity(s.hero)
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, hero)
		})
	case path == "/settings/hero" && r.Method == http.MethodPut:
		s.requireAuth(w, r, s.handleUpdateHero)
	case path == "/settings/hero/upload-image" && r.Method == http.MethodPost:
		s.requireAuth(w, r, s.handleUpload("image"))
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
	}
}

func (s *Server) handleUpdateSections(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VisibleSections []string `json:"visible_sections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}
	visible := make(map[string]bool, len(body.VisibleSections))
	for _, key := range body.VisibleSections {
		visible[key] = true
	}
	s.mu.Lock()
	for _, sec := range s.sections {
		sec["visible"] = visible[fmt.Sprint(sec["key"])]
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
}

func (s *Server) handleUpdateHero(w http.ResponseWriter, r *http.Request) {
	var hero map[string]any
	if err := json.NewDecoder(r.Body).Decode(&hero); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}
	s.mu.Lock()
	s.hero = hero
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, hero)
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request, segments []string) {
	name := segments[0]
	switch {
	case len(segments) == 1 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.Items(name))
	case len(segments) == 1 && r.Method == http.MethodPost:
		s.requireAuth(w, r, func(w http.ResponseWriter, r *http.Request) {
			s.handleCreate(w, r, name)
		})
	case len(segments) == 2 && segments[1] == "reorder" && r.Method == http.MethodPost:
		s.requireAuth(w, r, func(w http.ResponseWriter, r *http.Request) {
			s.handleReorder(w, r, name)
		})
	case len(segments) == 2 && r.Method == http.MethodPut:
		s.requireAuth(w, r, func(w http.ResponseWriter, r *http.Request) {
			s.handleUpdate(w, r, name, segments[1])
		})
	case len(segments) == 2 && r.Method == http.MethodDelete:
		s.requireAuth(w, r, func(w http.ResponseWriter, _ *http.Request) {
			s.handleDelete(w, name, segments[1])
		})
	case len(segments) == 2 && r.Method == http.MethodGet:
		s.handleGet(w, name, segments[1])
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, name string) {
	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}
	entity := cloneEntity(values)
	entity["id"] = uuid.NewString()
	s.mu.Lock()
	s.collections[name] = append(s.collections[name], entity)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, entity)
}

func (s *Server) handleGet(w http.ResponseWriter, name, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.collections[name] {
		if fmt.Sprint(item["id"]) == id {
			writeJSON(w, http.StatusOK, cloneEntity(item))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, name, id string) {
	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.collections[name] {
		if fmt.Sprint(item["id"]) == id {
			entity := cloneEntity(values)
			entity["id"] = item["id"]
			s.collections[name][i] = entity
			writeJSON(w, http.StatusOK, cloneEntity(entity))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
}

func (s *Server) handleDelete(w http.ResponseWriter, name, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.collections[name]
	for i, item := range items {
		if fmt.Sprint(item["id"]) == id {
			s.collections[name] = append(items[:i], items[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"message": "deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request, name string) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	byID := make(map[string]map[string]any, len(s.collections[name]))
	for _, item := range s.collections[name] {
		byID[fmt.Sprint(item["id"])] = item
	}
	if len(body.IDs) != len(byID) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "id list does not match collection"})
		return
	}
	reordered := make([]map[string]any, 0, len(body.IDs))
	for _, id := range body.IDs {
		item, ok := byID[id]
		if !ok {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "unknown id " + id})
			return
		}
		reordered = append(reordered, item)
	}
	s.collections[name] = reordered
	writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
}

func cloneEntity(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
