package handler

import "storyweaver-server/internal/models"

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// authResponse is returned by register and login: the token pair plus the
// account it belongs to.
type authResponse struct {
	AccessToken  string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

type updateProfileRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type followResponse struct {
	Following []string `json:"following"`
}

type createStoryRequest struct {
	TitlePage models.TitlePage `json:"titlePage"`
	Slides    []models.Slide   `json:"slides"`
	Tags      []string         `json:"tags"`
}

type updateStoryRequest struct {
	TitlePage models.TitlePage `json:"titlePage"`
	Slides    []models.Slide   `json:"slides"`
	Tags      []string         `json:"tags"`
	IsPublic  bool             `json:"isPublic"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

type createGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"isPrivate"`
}

type generateImageRequest struct {
	Prompt string   `json:"prompt" binding:"required"`
	Tags   []string `json:"tags"`
}

type generateImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type generateRenditionsRequest struct {
	Prompt string   `json:"prompt" binding:"required"`
	Count  int      `json:"count"`
	Tags   []string `json:"tags"`
}

type generateStoryRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type generateStoryResponse struct {
	Text string `json:"text"`
}
