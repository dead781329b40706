package http

import (
	"github.com/devlink/devlink/internal/domain/profile"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SocialLinksRequest struct {
	Youtube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

func (r SocialLinksRequest) ToDomain() profile.SocialLinks {
	return profile.SocialLinks(r)
}

// CreateProfileRequest carries the profile form. Required fields are checked
// by the validation layer, not by binding tags, so failures come back as a
// field -> message mapping.
type CreateProfileRequest struct {
	Handle         string             `json:"handle"`
	Company        string             `json:"company"`
	Website        string             `json:"website"`
	Location       string             `json:"location"`
	Status         string             `json:"status"`
	Skills         string             `json:"skills"`
	Bio            string             `json:"bio"`
	GithubUsername string             `json:"githubusername"`
	Social         SocialLinksRequest `json:"social"`
}

type AddExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     *bool  `json:"current"`
	Description string `json:"description"`
}

type AddEducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      *bool  `json:"current"`
	Description  string `json:"description"`
}

// CurrentUserResponse is the identity echoed back on GET /api/auth, built
// from verified token claims.
type CurrentUserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
