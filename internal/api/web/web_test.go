package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_SignInListsProviders(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "signin.html", Page{Title: "Sign in", Providers: []string{"google", "facebook"}}, nil))

	out := buf.String()
	assert.Contains(t, out, `href="/auth/oauth/google"`)
	assert.Contains(t, out, "Continue with Facebook")
	assert.Contains(t, out, `fetch("/auth/signin"`)
}

func TestRenderer_SignUpWithoutProviders(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "signup.html", Page{Title: "Sign up"}, nil))

	out := buf.String()
	assert.Contains(t, out, `fetch("/auth/signup"`)
	assert.NotContains(t, out, "/auth/oauth/")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "missing.html", Page{}, nil))
}
