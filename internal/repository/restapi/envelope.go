package restapi

// listResponse is the {success, data, count} envelope of collection reads
type listResponse[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
	Count   int  `json:"count"`
}

type singleResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// items never returns nil so an empty collection renders as []
func (r listResponse[T]) items() []T {
	if r.Data == nil {
		return []T{}
	}
	return r.Data
}
