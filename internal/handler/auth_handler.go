package handler

import (
	"net/http"

	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// signedIn sets the refresh token cookie and answers with the login payload
func (h *AuthHandler) signedIn(c *gin.Context, resp *service.LoginResponse) {
	// Set refresh token as HttpOnly cookie
	c.SetCookie(
		refreshCookie,
		resp.RefreshToken,
		int(utils.GetRefreshTokenExpiry().Seconds()),
		"/",
		"",
		h.secureCookie,
		true,
	)
	utils.SuccessResponse(c, resp)
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetCookie(refreshCookie, "", -1, "/", "", h.secureCookie, true)
}

// refreshToken reads the token from the cookie, falling back to the JSON body
// for clients that cannot keep cookies.
func refreshToken(c *gin.Context) string {
	if token, err := c.Cookie(refreshCookie); err == nil && token != "" {
		return token
	}
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// HospitalSignin authenticates a hospital account
func (h *AuthHandler) HospitalSignin(c *gin.Context) {
	var in service.SigninInput
	if !bindJSON(c, &in) {
		return
	}

	resp, err := h.authService.HospitalSignin(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}
	h.signedIn(c, resp)
}

// WorkerSignin authenticates a worker against the hospital named by hospital_id
func (h *AuthHandler) WorkerSignin(c *gin.Context) {
	hospitalID, ok := queryID(c, "hospital_id")
	if !ok {
		return
	}
	var in service.SigninInput
	if !bindJSON(c, &in) {
		return
	}

	resp, err := h.authService.WorkerSignin(c.Request.Context(), hospitalID, in)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}
	h.signedIn(c, resp)
}

// Refresh generates a new access token from refresh token
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := refreshToken(c)
	if token == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	// Generate new access token
	accessToken, err := h.authService.RefreshAccessToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, "Failed to refresh token")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"access_token": accessToken,
	})
}

// Logout revokes the refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	token := refreshToken(c)
	if token == "" {
		// Nothing to revoke, just clear the cookie
		h.clearCookie(c)
		utils.MessageResponse(c, "Logged out successfully")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err, "Failed to logout")
		return
	}

	h.clearCookie(c)
	utils.MessageResponse(c, "Logged out successfully")
}
