package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/devlink/devlink/internal/application/usecase/profile"
	"github.com/devlink/devlink/internal/validation"
	"github.com/devlink/devlink/pkg/apperror"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
}

func NewProfileHandler(uc *profileUC.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: uc}
}

// respondProfileError keeps the original not-found body shape for profile
// reads; everything else goes through the error middleware.
func respondProfileError(c *gin.Context, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"noprofile": "There is no profile for this user"})
		return
	}
	c.Error(err)
}

func (h *ProfileHandler) GetOwn(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}

	p, err := h.profileUseCase.GetOwn(c.Request.Context(), userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) GetByHandle(c *gin.Context) {
	p, err := h.profileUseCase.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	p, err := h.profileUseCase.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) ListAll(c *gin.Context) {
	profiles, err := h.profileUseCase.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *ProfileHandler) CreateOrUpdate(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile", err))
		return
	}

	if errs, ok := validation.ValidateProfileInput(validation.ProfileInput{
		Status: req.Status,
		Skills: req.Skills,
	}); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	p, err := h.profileUseCase.CreateOrUpdate(c.Request.Context(), profileUC.CreateOrUpdateProfileInput{
		UserID:         userID,
		Handle:         req.Handle,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social:         req.Social.ToDomain(),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for experience", err))
		return
	}

	if errs, ok := validation.ValidateExperienceInput(validation.ExperienceInput{
		Title:   req.Title,
		Company: req.Company,
		From:    req.From,
	}); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	p, err := h.profileUseCase.AddExperience(c.Request.Context(), profileUC.AddExperienceInput{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for education", err))
		return
	}

	if errs, ok := validation.ValidateEducationInput(validation.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
	}); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	p, err := h.profileUseCase.AddEducation(c.Request.Context(), profileUC.AddEducationInput{
		UserID:       userID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}
	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid experience ID"})
		return
	}

	p, err := h.profileUseCase.RemoveExperience(c.Request.Context(), userID, entryID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}
	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid education ID"})
		return
	}

	p, err := h.profileUseCase.RemoveEducation(c.Request.Context(), userID, entryID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}

	if err := h.profileUseCase.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
