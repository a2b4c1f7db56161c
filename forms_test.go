package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestDecodeForm_Valid(t *testing.T) {
	req := formRequest(url.Values{
		"title":    {"  Hello  "},
		"subtitle": {"World"},
		"img_url":  {"https://example.com/a.jpg"},
		"body":     {"<p>Text</p>"},
	})

	var form postForm
	errs, err := decodeForm(req, &form)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, "Hello", form.Title)
	assert.Equal(t, "https://example.com/a.jpg", form.ImgURL)
}

func TestDecodeForm_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		dst    any
		values url.Values
		want   map[string]string
	}{
		{
			name:   "register missing everything",
			dst:    &registerForm{},
			values: url.Values{},
			want: map[string]string{
				"email":    "This field is required.",
				"password": "This field is required.",
				"name":     "This field is required.",
			},
		},
		{
			name: "register password over bcrypt limit",
			dst:  &registerForm{},
			values: url.Values{
				"email":    {"a@example.com"},
				"password": {strings.Repeat("é", 37)},
				"name":     {"A"},
			},
			want: map[string]string{"password": "Must be at most 72 bytes."},
		},
		{
			name:   "login bad email",
			dst:    &loginForm{},
			values: url.Values{"email": {"not-an-email"}, "password": {"x"}},
			want:   map[string]string{"email": "Enter a valid email address."},
		},
		{
			name: "post bad url",
			dst:  &postForm{},
			values: url.Values{
				"title": {"T"}, "subtitle": {"S"}, "body": {"B"}, "img_url": {"not a url"},
			},
			want: map[string]string{"img_url": "Enter a valid URL."},
		},
		{
			name:   "comment whitespace only",
			dst:    &commentForm{},
			values: url.Values{"comment": {"   "}},
			want:   map[string]string{"comment": "This field is required."},
		},
		{
			name:   "comment too long",
			dst:    &commentForm{},
			values: url.Values{"comment": {strings.Repeat("a", 251)}},
			want:   map[string]string{"comment": "Must be at most 250 characters."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := decodeForm(formRequest(tt.values), tt.dst)
			require.NoError(t, err)
			assert.Equal(t, fieldErrors(tt.want), errs)
		})
	}
}

func TestDecodeForm_ContactPhoneOptional(t *testing.T) {
	var form contactForm
	errs, err := decodeForm(formRequest(url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"message": {"Hi"},
	}), &form)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Empty(t, form.Phone)
}

func TestDecodeForm_PasswordNotTrimmed(t *testing.T) {
	var form loginForm
	_, err := decodeForm(formRequest(url.Values{
		"email":    {"a@example.com"},
		"password": {" padded "},
	}), &form)
	require.NoError(t, err)
	assert.Equal(t, " padded ", form.Password)
}

func TestDecodeForm_PasswordAtBcryptLimit(t *testing.T) {
	var form registerForm
	errs, err := decodeForm(formRequest(url.Values{
		"email":    {"a@example.com"},
		"password": {strings.Repeat("p", maxPasswordBytes)},
		"name":     {"A"},
	}), &form)
	require.NoError(t, err)
	assert.Nil(t, errs)

	_, err = hashPassword(form.Password)
	assert.NoError(t, err)
}
