package lib

import (
	"net/http/httptest"
	"strings"
	"svd_ambalaj_server/structs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAndValidateBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"username":"admin","password":"pw"}`))
	body, err := ExtractAndValidateBody[structs.LoginRequest](req)
	require.NoError(t, err)
	assert.Equal(t, "admin", body.Username)

	req = httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"username":"admin"}`))
	_, err = ExtractAndValidateBody[structs.LoginRequest](req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, IsInvalidInput(err))
	assert.Equal(t, []FieldError{{Field: "password", Message: "is required"}}, ve.Errors)

	req = httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"username":"admin","password":"pw","role":"root"}`))
	_, err = ExtractAndValidateBody[structs.LoginRequest](req)
	assert.True(t, IsInvalidInput(err))
}

func TestDecodeBodyIgnoresUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/samples", strings.NewReader(`{"name":"Ali","quantity":3,"utm":"x"}`))
	body, err := DecodeBody[structs.SamplePayload](req)
	require.NoError(t, err)
	assert.Equal(t, "Ali", body.Name)
	assert.Equal(t, float64(3), body.Quantity)

	req = httptest.NewRequest("POST", "/samples", strings.NewReader(`{`))
	_, err = DecodeBody[structs.SamplePayload](req)
	assert.True(t, IsInvalidInput(err))
}
