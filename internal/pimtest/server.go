// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

/*
Package pimtest provides an in-memory fake of the PIM backend for tests.

It speaks the real backend's dialect — camelCase DTOs inside the
{"data": ...} / {"error": {...}} envelopes — so SDK and wizard tests exercise
the full decode path. Every request is recorded in order, which is how the
submission-ordering tests observe the item-before-associations contract.
*/
package pimtest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/buihoanglan/pivora/internal/api"
	"github.com/buihoanglan/pivora/internal/platform/config"
)

// Server is the fake backend. All exported methods are safe for concurrent
// use; the wizard's parallel lookup load hits it from six goroutines.
type Server struct {
	mu            sync.Mutex
	fixtures      Fixtures
	associations  []Association
	columnConfigs map[string][]string
	calls         []string
	nextID        int

	// failAssociationsAfter makes association creates fail once the given
	// count has succeeded. Negative means never fail.
	failAssociationsAfter int

	router chi.Router
}

// NewServer builds a fake backend seeded with fixtures.
func NewServer(fixtures Fixtures) *Server {
	server := &Server{
		fixtures:              fixtures,
		columnConfigs:         map[string][]string{},
		failAssociationsAfter: -1,
	}

	router := chi.NewRouter()
	router.Use(server.recordCalls)

	router.Get("/item-types", listHandler(&server.mu, func() []ItemType { return server.fixtures.ItemTypes }))
	router.Get("/categories", listHandler(&server.mu, func() []Category { return server.fixtures.Categories }))
	router.Get("/families", listHandler(&server.mu, func() []Family { return server.fixtures.Families }))
	router.Get("/attribute-groups", listHandler(&server.mu, func() []Group { return server.fixtures.Groups }))
	router.Get("/association-types", listHandler(&server.mu, func() []AssociationType { return server.fixtures.AssociationTypes }))
	router.Get("/association-rules", listHandler(&server.mu, func() []Rule { return server.fixtures.Rules }))

	router.Get("/items", server.listItems)
	router.Post("/items", server.createItem)
	router.Get("/items/{id}", server.getItem)
	router.Put("/items/{id}", server.updateItem)
	router.Delete("/items/{id}", server.deleteItem)

	router.Get("/associations", server.listAssociations)
	router.Post("/associations", server.createAssociation)
	router.Get("/associations/{id}", server.getAssociation)
	router.Put("/association-types/{id}/column-config", server.setColumnConfig)

	router.Get("/users", listHandler(&server.mu, func() []User { return server.fixtures.Users }))
	router.Get("/users/{id}", server.getUser)
	router.Put("/users/{id}", server.updateUser)
	router.Put("/users/{id}/role", server.setUserRole)

	router.Get("/reports", listHandler(&server.mu, func() []Report { return server.fixtures.Reports }))
	router.Post("/reports", server.createReport)
	router.Post("/reports/{id}/run", server.runReport)

	router.Get("/workflows", listHandler(&server.mu, func() []Workflow { return server.fixtures.Workflows }))
	router.Post("/workflows", server.createWorkflow)
	router.Get("/workflows/{id}", server.getWorkflow)

	server.router = router
	return server
}

// Client starts an httptest server around the fake backend and returns an SDK
// client pointed at it. Cleanup is registered on t.
func (server *Server) Client(t *testing.T) *api.Client {
	t.Helper()

	httpServer := httptest.NewServer(server.router)
	t.Cleanup(httpServer.Close)

	cfg := &config.Config{
		APIBaseURL:     httpServer.URL,
		RequestTimeout: 5 * time.Second,
		RateLimit:      1000,
		RateBurst:      1000,
	}
	return api.NewClient(cfg, slog.Default())
}

// Calls returns the recorded "METHOD /path" log in arrival order.
func (server *Server) Calls() []string {
	server.mu.Lock()
	defer server.mu.Unlock()
	return append([]string(nil), server.calls...)
}

// Associations returns every association created so far, in creation order.
func (server *Server) Associations() []Association {
	server.mu.Lock()
	defer server.mu.Unlock()
	return append([]Association(nil), server.associations...)
}

// Items returns the current item fixtures, including created ones.
func (server *Server) Items() []Item {
	server.mu.Lock()
	defer server.mu.Unlock()
	return append([]Item(nil), server.fixtures.Items...)
}

// FailAssociationsAfter makes the next association creates succeed n times
// and fail afterwards with a 500.
func (server *Server) FailAssociationsAfter(n int) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.failAssociationsAfter = n
}

func (server *Server) recordCalls(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		server.mu.Lock()
		server.calls = append(server.calls, request.Method+" "+request.URL.Path)
		server.mu.Unlock()
		next.ServeHTTP(writer, request)
	})
}

// # Envelope Helpers

func writeData(writer http.ResponseWriter, status int, data any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]any{"data": data})
}

func writeList[T any](writer http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeData(writer, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func writeError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}

func listHandler[T any](mu *sync.Mutex, fetch func() []T) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		mu.Lock()
		items := append([]T(nil), fetch()...)
		mu.Unlock()
		writeList(writer, items)
	}
}

// # Items

func (server *Server) listItems(writer http.ResponseWriter, request *http.Request) {
	itemTypeID := request.URL.Query().Get("itemTypeId")
	status := request.URL.Query().Get("status")

	server.mu.Lock()
	var items []Item
	for _, candidate := range server.fixtures.Items {
		if itemTypeID != "" && candidate.ItemTypeID != itemTypeID {
			continue
		}
		if status != "" && candidate.Status != status {
			continue
		}
		items = append(items, candidate)
	}
	server.mu.Unlock()

	writeList(writer, items)
}

func (server *Server) createItem(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		ItemTypeID string         `json:"itemTypeId"`
		CategoryID string         `json:"categoryId"`
		FamilyID   string         `json:"familyId"`
		Attributes map[string]any `json:"attributes"`
	}
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		writeError(writer, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON payload")
		return
	}
	if input.ItemTypeID == "" {
		writeError(writer, http.StatusBadRequest, "VALIDATION_ERROR", "itemTypeId is required")
		return
	}

	server.mu.Lock()
	server.nextID++
	created := Item{
		ID:         fmt.Sprintf("item-%d", server.nextID),
		ItemTypeID: input.ItemTypeID,
		CategoryID: input.CategoryID,
		FamilyID:   input.FamilyID,
		Status:     "draft",
		Version:    1,
		Attributes: input.Attributes,
	}
	server.fixtures.Items = append(server.fixtures.Items, created)
	server.mu.Unlock()

	writeData(writer, http.StatusCreated, created)
}

func (server *Server) getItem(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	server.mu.Lock()
	defer server.mu.Unlock()
	for _, candidate := range server.fixtures.Items {
		if candidate.ID == id {
			writeData(writer, http.StatusOK, candidate)
			return
		}
	}
	writeError(writer, http.StatusNotFound, "NOT_FOUND", "Item not found")
}

func (server *Server) updateItem(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	var input struct {
		CategoryID string         `json:"categoryId"`
		FamilyID   string         `json:"familyId"`
		Status     string         `json:"status"`
		Attributes map[string]any `json:"attributes"`
	}
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		writeError(writer, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON payload")
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	for index, candidate := range server.fixtures.Items {
		if candidate.ID != id {
			continue
		}
		if input.CategoryID != "" {
			candidate.CategoryID = input.CategoryID
		}
		if input.FamilyID != "" {
			candidate.FamilyID = input.FamilyID
		}
		if input.Status != "" {
			candidate.Status = input.Status
		}
		if input.Attributes != nil {
			candidate.Attributes = input.Attributes
		}
		candidate.Version++
		server.fixtures.Items[index] = candidate
		writeData(writer, http.StatusOK, candidate)
		return
	}
	writeError(writer, http.StatusNotFound, "NOT_FOUND", "Item not found")
}

func (server *Server) deleteItem(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	server.mu.Lock()
	defer server.mu.Unlock()
	for index, candidate := range server.fixtures.Items {
		if candidate.ID == id {
			server.fixtures.Items = append(server.fixtures.Items[:index], server.fixtures.Items[index+1:]...)
			writer.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(writer, http.StatusNotFound, "NOT_FOUND", "Item not found")
}

// # Associations

func (server *Server) listAssociations(writer http.ResponseWriter, request *http.Request) {
	sourceItemID := request.URL.Query().Get("sourceItemId")

	server.mu.Lock()
	var associations []Association
	for _, candidate := range server.associations {
		if sourceItemID != "" && candidate.SourceItemID != sourceItemID {
			continue
		}
		associations = append(associations, candidate)
	}
	server.mu.Unlock()

	writeList(writer, associations)
}

func (server *Server) createAssociation(writer http.ResponseWriter, request *http.Request) {
	var input Association
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		writeError(writer, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON payload")
		return
	}

	server.mu.Lock()
	if server.failAssociationsAfter >= 0 && len(server.associations) >= server.failAssociationsAfter {
		server.mu.Unlock()
		writeError(writer, http.StatusInternalServerError, "INTERNAL_ERROR", "association storage failure")
		return
	}
	server.nextID++
	input.ID = fmt.Sprintf("assoc-%d", server.nextID)
	server.associations = append(server.associations, input)
	server.mu.Unlock()

	writeData(writer, http.StatusCreated, input)
}

func (server *Server) getAssociation(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	server.mu.Lock()
	defer server.mu.Unlock()
	for _, candidate := range server.associations {
		if candidate.ID == id {
			writeData(writer, http.StatusOK, candidate)
			return
		}
	}
	writeError(writer, http.StatusNotFound, "NOT_FOUND", "Association not found")
}

func (server *Server) setColumnConfig(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	role := request.URL.Query().Get("role")
	if role == "" {
		writeError(writer, http.StatusBadRequest, "VALIDATION_ERROR", "role is required")
		return
	}

	var input struct {
		Columns []string `json:"columns"`
	}
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		writeError(writer, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON payload")
		return
	}

	server.mu.Lock()
	server.columnConfigs[id+"/"+role] = input.Columns
	server.mu.Unlock()

	writeData(writer, http.StatusOK, map[string]any{"columns": input.Columns})
}

// # Users

func (server *Server) getUser(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	server.mu.Lock()
	defer server.mu.Unlock()
	for _, candidate := range server.fixtures.Users {
		if candidate.ID == id {
			writeData(writer, http.StatusOK, candidate)
			return
		}
	}
	writeError(writer, http.StatusNotFound, "NOT_FOUND", "User not found")
}

func (server *Server) updateUser(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	var input struct {
		DisplayName string `json:"displayName"`
		Active      *bool  `json:"active"`
	}
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		writeError(writer, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON payload")
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	for index, candidate := range server.fixtures.Users {
		if candidate.ID != id {
			continue
		}
		if input.DisplayName != "" {
			candidate.DisplayName = input.DisplayName
		}
		if input.Active != nil {
			candidate.Active = *input.Active
		}
		server.fixtures.Users[index] = candidate
		writeData(writer, http.StatusOK, candidate)
		return
	}
	writeError(writer, http.StatusNotFound, "NOT_FOUND", "User not found")
}

func (server *Server) setUserRole(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		writeError(writer, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON payload")
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	for index, candidate := range server.fixtures.Users {
		if candidate.ID != id {
			continue
		}
		candidate.Role = input.Role
		server.fixtures.Users[index] = candidate
		writeData(writer, http.StatusOK, candidate)
		return
	}
	writeError(writer, http.StatusNotFound, "NOT_FOUND", "User not found")
}

// # Reports

func (server *Server) createReport(writer http.ResponseWriter, request *http.Request) {
	var input Report
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		writeError(writer, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON payload")
		return
	}

	server.mu.Lock()
	server.nextID++
	input.ID = fmt.Sprintf("report-%d", server.nextID)
	server.fixtures.Reports = append(server.fixtures.Reports, input)
	server.mu.Unlock()

	writeData(writer, http.StatusCreated, input)
}

func (server *Server) runReport(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	server.mu.Lock()
	defer server.mu.Unlock()
	for _, candidate := range server.fixtures.Reports {
		if candidate.ID == id {
			writeData(writer, http.StatusOK, map[string]any{
				"reportId": id,
				"rowCount": 0,
				"rows":     []map[string]any{},
			})
			return
		}
	}
	writeError(writer, http.StatusNotFound, "NOT_FOUND", "Report not found")
}

// # Workflows

func (server *Server) createWorkflow(writer http.ResponseWriter, request *http.Request) {
	var input Workflow
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		writeError(writer, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON payload")
		return
	}

	server.mu.Lock()
	server.nextID++
	input.ID = fmt.Sprintf("workflow-%d", server.nextID)
	server.fixtures.Workflows = append(server.fixtures.Workflows, input)
	server.mu.Unlock()

	writeData(writer, http.StatusCreated, input)
}

func (server *Server) getWorkflow(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	server.mu.Lock()
	defer server.mu.Unlock()
	for _, candidate := range server.fixtures.Workflows {
		if candidate.ID == id {
			writeData(writer, http.StatusOK, candidate)
			return
		}
	}
	writeError(writer, http.StatusNotFound, "NOT_FOUND", "Workflow not found")
}
