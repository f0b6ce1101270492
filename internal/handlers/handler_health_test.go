package handlers

import (
	"google-auth-service/internal/testutil"
	"net/http"
	"testing"
)

func TestGetHealthHandler(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/")
	defer tc.Finish()

	tc.CallHandler(GETHealthHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "application/json")
	tc.AssertJSONField(t, "success", "ok")

	response := tc.GetJSONResponse(t)
	if len(response) != 1 {
		t.Errorf("Expected 1 field in response, got %d", len(response))
	}
}

func TestGetHealthHandler_IgnoresQueryString(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/?verbose=true")
	defer tc.Finish()

	tc.CallHandler(GETHealthHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONField(t, "success", "ok")
}
