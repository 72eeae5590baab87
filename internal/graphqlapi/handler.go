package graphqlapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/graphql-go/graphql"

	"musicstream/internal/logging"
)

type requestBody struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Handler serves GraphQL requests against a schema.
type Handler struct {
	schema graphql.Schema
}

// NewHandler wraps schema in an HTTP handler.
func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// Register mounts the endpoint at /graphql for GET and POST.
func (h *Handler) Register(router *mux.Router) {
	router.Handle("/graphql", h).Methods(http.MethodGet, http.MethodPost)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body requestBody
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		body.Query = q.Get("query")
		body.OperationName = q.Get("operationName")
		if raw := q.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &body.Variables); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid variables"})
				return
			}
		}
	} else if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}

	if body.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  body.Query,
		VariableValues: body.Variables,
		OperationName:  body.OperationName,
		Context:        r.Context(),
	})
	if result.HasErrors() {
		logging.WithContext(r.Context()).Debug().
			Interface("errors", result.Errors).
			Msg("graphql request returned errors")
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
