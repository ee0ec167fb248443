package audit

type AuditLogResponse struct {
	ID        string  `json:"id"`
	ActorID   *string `json:"actor_id,omitempty"`
	Action    string  `json:"action"`
	Metadata  *string `json:"metadata,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func mapToResponse(e AuditLogEntry) AuditLogResponse {
	resp := AuditLogResponse{
		ID:        e.ID.String(),
		Action:    e.Action,
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.ActorID != nil {
		v := e.ActorID.String()
		resp.ActorID = &v
	}
	return resp
}
