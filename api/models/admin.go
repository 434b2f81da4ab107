package models

import (
	"time"

	"github.com/alex-pricope/nomination-board/reconcile"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ReconcileResponse struct {
	Repaired int               `json:"repaired"`
	Drifts   []reconcile.Drift `json:"drifts"`
}
