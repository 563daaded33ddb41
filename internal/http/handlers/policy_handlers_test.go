package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david-solomon-henshaw/app/internal/mocks"
)

func policyRouter(policySvc *mocks.MockPolicyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPolicyHandlers(policySvc)

	r := gin.New()
	r.GET("/admin/policies", h.List)
	r.POST("/admin/policies", h.Add)
	r.DELETE("/admin/policies", h.Remove)
	return r
}

func TestPolicyHandlers_List(t *testing.T) {
	router := policyRouter(mocks.NewMockPolicyService())

	w := performJSON(t, router, http.MethodGet, "/admin/policies", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var policies [][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &policies))
	assert.NotEmpty(t, policies)
}

func TestPolicyHandlers_Add(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		setupMocks func(*mocks.MockPolicyService)
		wantStatus int
	}{
		{
			name:       "valid policy",
			body:       map[string]string{"sub": "role_owner", "obj": "/patients/*", "act": "GET"},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "missing fields",
			body:       map[string]string{"sub": "role_owner"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "enforcer failure",
			body: map[string]string{"sub": "role_owner", "obj": "/patients/*", "act": "GET"},
			setupMocks: func(m *mocks.MockPolicyService) {
				m.AddPolicyFunc = func(role, resource, action string) error {
					return errors.New("adapter unavailable")
				}
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policySvc := mocks.NewMockPolicyService()
			if tt.setupMocks != nil {
				tt.setupMocks(policySvc)
			}
			router := policyRouter(policySvc)

			w := performJSON(t, router, http.MethodPost, "/admin/policies", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestPolicyHandlers_Remove(t *testing.T) {
	var gotRole, gotResource, gotAction string
	policySvc := mocks.NewMockPolicyService()
	policySvc.RemovePolicyFunc = func(role, resource, action string) error {
		gotRole, gotResource, gotAction = role, resource, action
		return nil
	}
	router := policyRouter(policySvc)

	w := performJSON(t, router, http.MethodDelete, "/admin/policies", map[string]string{
		"sub": "role_caregiver", "obj": "/caregivers/*", "act": "PUT",
	})
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "role_caregiver", gotRole)
	assert.Equal(t, "/caregivers/*", gotResource)
	assert.Equal(t, "PUT", gotAction)
}
