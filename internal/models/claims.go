package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims carried by access and refresh tokens. The
// RegisteredClaims ID (JTI) is the uuid this token pair is tracked under in
// the token store.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenDetails is an issued access/refresh token pair. The UUIDs index the
// pair in the token store and are not exposed to clients.
type TokenDetails struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	AccessUUID   string `json:"-"`
	RefreshUUID  string `json:"-"`
	AtExpires    int64  `json:"-"`
	RtExpires    int64  `json:"-"`
}
