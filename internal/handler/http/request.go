package http

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// maxBodyBytes bounds request bodies; every /ui payload is a handful of fields
const maxBodyBytes = 1 << 20

// FieldUpdate is the body of the PATCH form endpoints
type FieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type FilterUpdate struct {
	EmployeeID string `json:"employee_id"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	boolVal, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return boolVal
}
