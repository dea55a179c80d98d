package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/sourcejump/logging"
	"github.com/viant/sourcejump/plugin"
)

func TestServer_Transform(t *testing.T) {
	gin.SetMode(gin.TestMode)
	aPlugin, err := plugin.New(nil, nil)
	require.NoError(t, err)
	handler := New(aPlugin, nil).Handler()

	var testCases = []struct {
		description   string
		body          string
		expectStatus  int
		expectChanged bool
		expectCode    string
	}{
		{
			description:   "annotated",
			body:          `{"id":"A.tsx","code":"const a = <i/>;"}`,
			expectStatus:  http.StatusOK,
			expectChanged: true,
		},
		{
			description:  "passthrough",
			body:         `{"id":"a.css","code":"i { }"}`,
			expectStatus: http.StatusOK,
			expectCode:   "i { }",
		},
		{
			description:  "unparsable",
			body:         `{"id":"A.tsx","code":"const a = <i>;"}`,
			expectStatus: http.StatusUnprocessableEntity,
		},
		{
			description:  "missing id",
			body:         `{"code":"x"}`,
			expectStatus: http.StatusBadRequest,
		},
	}
	for _, testCase := range testCases {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/v1/transform", bytes.NewBufferString(testCase.body))
		request.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(recorder, request)
		require.Equal(t, testCase.expectStatus, recorder.Code, testCase.description)
		if recorder.Code != http.StatusOK {
			continue
		}
		response := TransformResponse{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response), testCase.description)
		assert.Equal(t, testCase.expectChanged, response.Changed, testCase.description)
		if testCase.expectChanged {
			assert.Contains(t, response.Code, "data-sj-display-name", testCase.description)
		} else {
			assert.Equal(t, testCase.expectCode, response.Code, testCase.description)
		}
	}
}

func TestServer_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	aPlugin, err := plugin.New(nil, nil)
	require.NoError(t, err)
	handler := New(aPlugin, nil).Handler()

	for _, path := range []string{"/healthz", "/metrics"} {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}

func TestServer_TransformFailureLoggedOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	output := &bytes.Buffer{}
	logger := logging.Setup(output, slog.LevelDebug, "json")
	aPlugin, err := plugin.New(nil, logger)
	require.NoError(t, err)
	handler := New(aPlugin, logger).Handler()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/transform", bytes.NewBufferString(`{"id":"A.tsx","code":"const a = <i>;"}`))
	request.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"transform rejected"`)
	assert.Contains(t, lines[0], `"id":"A.tsx"`)
}
