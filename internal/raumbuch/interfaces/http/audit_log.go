package http

import (
	"encoding/json"
	"net/http"

	"elektro-raumbuch/internal/audit"
	"elektro-raumbuch/internal/auth"
)

// logAudit records one mutation. A nil logger disables auditing.
func logAudit(logger audit.Logger, r *http.Request, action, resourceType, resourceID, projectID string, meta map[string]any) {
	if logger == nil {
		return
	}
	var payload []byte
	if meta != nil {
		payload, _ = json.Marshal(meta)
	}
	_ = logger.Log(r.Context(), audit.Entry{
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ProjectID:    projectID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}
