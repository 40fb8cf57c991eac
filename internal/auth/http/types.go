package http

import "github.com/clientdesk/clientdesk-backend/internal/auth/domain"

type Handler struct {
	revoker domain.TokenRevoker
}

// New builds the auth handler. revoker is nil for backends whose tokens
// cannot be revoked server-side.
func New(revoker domain.TokenRevoker) *Handler {
	return &Handler{
		revoker: revoker,
	}
}
