package uri

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func port(p uint16) *uint16 {
	return &p
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "http default port",
			params: Params{Scheme: HTTP, Host: "localhost", Path: "/"},
			want:   "http://localhost:80/",
		},
		{
			name:   "https default port",
			params: Params{Scheme: HTTPS, Host: "localhost", Path: "/"},
			want:   "https://localhost:443/",
		},
		{
			name:   "explicit port overrides http default",
			params: Params{Scheme: HTTP, Host: "monitor.example.com", Port: port(8080), Path: "/check"},
			want:   "http://monitor.example.com:8080/check",
		},
		{
			name:   "explicit port overrides https default",
			params: Params{Scheme: HTTPS, Host: "monitor.example.com", Port: port(80), Path: "/check"},
			want:   "https://monitor.example.com:80/check",
		},
		{
			name:   "path is not normalized",
			params: Params{Scheme: HTTP, Host: "h", Path: "/a/../b//c/"},
			want:   "http://h:80/a/../b//c/",
		},
		{
			name:   "empty path",
			params: Params{Scheme: HTTP, Host: "h", Path: ""},
			want:   "http://h:80",
		},
		{
			name:   "ipv6 literal",
			params: Params{Scheme: HTTP, Host: "[::1]", Port: port(5666), Path: "/"},
			want:   "http://[::1]:5666/",
		},
		{
			name:   "single query pair",
			params: Params{Scheme: HTTP, Host: "h", Path: "/run", Query: []string{"cmd=check_load"}},
			want:   "http://h:80/run?cmd=check%5Fload",
		},
		{
			name: "values are encoded, keys and tokens are not",
			params: Params{
				Scheme: HTTP,
				Host:   "h",
				Path:   "/run",
				Query:  []string{"filter=a&b c", "verbose", "w=80%", "x_y=1"},
			},
			want: "http://h:80/run?filter=a%26b%20c&verbose&w=80%25&x_y=1",
		},
		{
			name:   "only the first equals sign splits",
			params: Params{Scheme: HTTP, Host: "h", Path: "/", Query: []string{"expr=a=b"}},
			want:   "http://h:80/?expr=a%3Db",
		},
		{
			name:   "empty value",
			params: Params{Scheme: HTTP, Host: "h", Path: "/", Query: []string{"flag="}},
			want:   "http://h:80/?flag=",
		},
		{
			name:   "bare operator token passes through",
			params: Params{Scheme: HTTP, Host: "h", Path: "/", Query: []string{"a=1", "!!", "b=2"}},
			want:   "http://h:80/?a=1&!!&b=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Build(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestBuild_NoQueryHasNoQuestionMark(t *testing.T) {
	for _, path := range []string{"/", "/status", "/a/b/c", ""} {
		u, err := Build(Params{Scheme: HTTPS, Host: "example.com", Path: path})
		require.NoError(t, err)
		assert.NotContains(t, u.String(), "?")
		assert.Empty(t, u.RawQuery)
	}
}

func TestBuild_QueryValuesRoundTrip(t *testing.T) {
	values := []string{
		"plain",
		"a&b",
		"with space",
		"50%",
		"a=b=c",
		"ünïcödé",
		"slash/and?question#hash",
		"+plus+",
		"",
	}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			u, err := Build(Params{Scheme: HTTP, Host: "h", Path: "/", Query: []string{"key=" + v}})
			require.NoError(t, err)

			parsed, err := url.ParseQuery(u.RawQuery)
			require.NoError(t, err)
			assert.Equal(t, []string{v}, parsed["key"])
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"empty host", Params{Scheme: HTTP, Host: "", Path: "/"}},
		{"space in host", Params{Scheme: HTTP, Host: "bad host", Path: "/"}},
		{"slash in host", Params{Scheme: HTTP, Host: "a/b", Path: "/"}},
		{"userinfo in host", Params{Scheme: HTTP, Host: "user@h", Path: "/"}},
		{"port in host", Params{Scheme: HTTP, Host: "h:99", Path: "/"}},
		{"space in path", Params{Scheme: HTTP, Host: "h", Path: "/a b"}},
		{"fragment in path", Params{Scheme: HTTP, Host: "h", Path: "/a#b"}},
		{"path without leading slash", Params{Scheme: HTTP, Host: "h", Path: "status"}},
		{"bad escape in path", Params{Scheme: HTTP, Host: "h", Path: "/%zz"}},
		{"truncated escape in path", Params{Scheme: HTTP, Host: "h", Path: "/%4"}},
		{"space in bare token", Params{Scheme: HTTP, Host: "h", Path: "/", Query: []string{"a b"}}},
		{"angle bracket in bare token", Params{Scheme: HTTP, Host: "h", Path: "/", Query: []string{"a<b"}}},
		{"hash in bare token", Params{Scheme: HTTP, Host: "h", Path: "/", Query: []string{"a#b"}}},
		{"control byte in key", Params{Scheme: HTTP, Host: "h", Path: "/", Query: []string{"k\x01=v"}}},
		{"non-ascii in bare token", Params{Scheme: HTTP, Host: "h", Path: "/", Query: []string{"ä"}}},
		{"pipe in path", Params{Scheme: HTTP, Host: "h", Path: "/a|b"}},
		{"non-ascii in path", Params{Scheme: HTTP, Host: "h", Path: "/ü"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Build(tt.params)
			require.Error(t, err)
			assert.Nil(t, u)
			assert.True(t, IsBuildError(err), "expected BuildError, got %T", err)
		})
	}
}

func TestBuild_OperatorTokensPassThrough(t *testing.T) {
	tokens := []string{"a|b", "||", "x^y", "50%", `{"k":1}`, "a`b", `back\slash`, "%zz", "{k}=v"}

	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			u, err := Build(Params{Scheme: HTTP, Host: "h", Path: "/", Query: []string{token}})
			require.NoError(t, err)

			want := EncodeQueryPair(token)
			assert.Equal(t, want, u.RawQuery)
			assert.Equal(t, "http://h:80/?"+want, u.String())
		})
	}
}

func TestBuild_QueryOffsetInError(t *testing.T) {
	_, err := Build(Params{Scheme: HTTP, Host: "h", Path: "/run", Query: []string{"ok", "a<b"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character '<' at offset 9")
}

func TestBuildError_Message(t *testing.T) {
	_, err := Build(Params{Scheme: HTTP, Host: "h", Path: "/a b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid URI "http://h:80/a b"`)
	assert.ErrorIs(t, err, errInvalidChar)

	_, err = Build(Params{Scheme: HTTP})
	require.Error(t, err)
	assert.Equal(t, "invalid URI: hostname cannot be empty", err.Error())
}

func TestParams_ResolvedPort(t *testing.T) {
	assert.Equal(t, uint16(80), Params{Scheme: HTTP}.ResolvedPort())
	assert.Equal(t, uint16(443), Params{Scheme: HTTPS}.ResolvedPort())
	assert.Equal(t, uint16(8443), Params{Scheme: HTTP, Port: port(8443)}.ResolvedPort())
	assert.Equal(t, uint16(0), Params{Scheme: HTTPS, Port: port(0)}.ResolvedPort())
}
