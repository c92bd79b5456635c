package lead

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{0.0, false},
		{1.0, true},
		{"", false},
		{"x", true},
		{map[string]any{}, true},
		{[]any{}, true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, truthy(tc.v), "value %#v", tc.v)
	}
}

func TestDecode_JSONHoneypotNonString(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"name":"Bot","_website":true,"age":3}`))
	r.Header.Set("Content-Type", "application/json")

	f, err := Decode(r)
	require.NoError(t, err)
	require.Equal(t, "Bot", f["name"])
	require.NotEmpty(t, f[HoneypotField])
	require.NotContains(t, f, "age")

	r = httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"name":"Jane","_website":false}`))
	r.Header.Set("Content-Type", "application/json")
	f, err = Decode(r)
	require.NoError(t, err)
	require.Empty(t, f[HoneypotField])
}
