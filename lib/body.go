package lib

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DecodeBody decodes a JSON body leniently: unknown fields are ignored and no struct
// validation runs. Used for storefront payloads whose shape has drifted over time.
func DecodeBody[T any](r *http.Request) (*T, error) {
	defer r.Body.Close()

	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON body: %v", ErrInvalidInput, err)
	}
	return &body, nil
}
