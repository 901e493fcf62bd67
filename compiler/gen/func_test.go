package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Username", "username"},
		{"FullName", "full_name"},
		{"HTTPCode", "http_code"},
		{"UserID", "user_id"},
		{"XMLParser", "xml_parser"},
		{"getHTTPResponse", "get_http_response"},
		{"already_snake", "already_snake"},
		{"A", "a"},
		{"", ""},
		{"userInfo", "user_info"},
		{"userWire", "user_wire"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, snake(tt.input))
		})
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "UserInfo"},
		{"full_name", "FullName"},
		{"user_id", "UserID"},
		{"http_code", "HTTPCode"},
		{"full-admin", "FullAdmin"},
		{"already", "Already"},
		{"a_b", "AB"},
		{"xml_parser", "XMLParser"},
		{"api_url", "APIURL"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, pascal(tt.input))
		})
	}
}

func TestCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "userInfo"},
		{"user_id", "userID"},
		{"http_code", "httpCode"},
		{"name", "name"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, camel(tt.input))
		})
	}
}

func TestReceiver(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", "u"},
		{"UserID", "ui"},
		{"UserCreate", "uc"},
		{"userWire", "uw"},
		{"If", "_if"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, receiver(tt.input))
		})
	}
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "pet", singular("pets"))
	assert.Equal(t, "patient", singular("patients"))
	assert.Equal(t, "ownerItem", singular("owner"))
}

func TestAddAcronym(t *testing.T) {
	assert.Equal(t, "GqlSchema", pascal("gql_schema"))
	AddAcronym("gql")
	t.Cleanup(func() { delete(acronyms, "GQL") })
	assert.Equal(t, "GQLSchema", pascal("gql_schema"))
	assert.Equal(t, "gqlSchema", camel("gql_schema"))
}

func TestKeyword(t *testing.T) {
	assert.True(t, isKeyword("type"))
	assert.True(t, isKeyword("range"))
	assert.False(t, isKeyword("store"))
}

func TestPredeclared(t *testing.T) {
	for _, s := range []string{"make", "len", "nil", "true", "false", "string", "error", "new"} {
		assert.True(t, isPredeclared(s), s)
	}
	assert.False(t, isPredeclared("owner"))
	assert.False(t, isPredeclared("Make"))
}
