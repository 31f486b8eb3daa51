// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

package tautulli

// TautulliUser represents the API response from the get_user endpoint
type TautulliUser struct {
	Response TautulliUserResponse `json:"response"`
}

type TautulliUserResponse struct {
	Result  string           `json:"result"`
	Message *string          `json:"message,omitempty"`
	Data    TautulliUserData `json:"data"`
}

type TautulliUserData struct {
	UserID       int    `json:"user_id"`
	Username     string `json:"username"`
	FriendlyName string `json:"friendly_name"`
	UserThumb    string `json:"user_thumb"` // Profile picture URL
	Email        string `json:"email"`
	IsActive     int    `json:"is_active"`
}
