package server

import (
	"time"

	"devlink/internal/github"
	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// profileRequest carries the upsert payload. Social links arrive as flat
// fields to keep the client payload simple and are folded into the social map.
type profileRequest struct {
	Status         string  `json:"status"`
	Skills         string  `json:"skills"`
	Company        *string `json:"company"`
	Location       *string `json:"location"`
	Website        *string `json:"website"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (r *profileRequest) socialMap() map[string]string {
	social := make(map[string]string)
	set := func(key string, v *string) {
		if v != nil {
			social[key] = *v
		}
	}
	set("youtube", r.Youtube)
	set("twitter", r.Twitter)
	set("facebook", r.Facebook)
	set("linkedin", r.Linkedin)
	set("instagram", r.Instagram)
	return social
}

// UpsertProfile handles POST /api/profile
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpsertProfile(c.Context(), service.UpsertProfileInput{
		UserID:         userID,
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Location:       req.Location,
		Website:        req.Website,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social:         req.socialMap(),
	})
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(profile)
}

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.GetMyProfile(c.Context(), userID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(profile)
}

// GetProfiles handles GET /api/profile
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	profiles, err := s.profileService.ListProfiles(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(profiles)
}

// GetProfileByUser handles GET /api/profile/user/:id
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, svcErr := s.profileService.GetByUser(c.Context(), userID)
	if svcErr != nil {
		return respondWithAppError(c, svcErr)
	}

	return c.JSON(profile)
}

// experienceRequest accepts dates as strings so clients can send either
// plain dates ("2020-01-31") or full RFC 3339 timestamps.
type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func parseDateRange(from, to string) (time.Time, *time.Time, error) {
	var fromDate time.Time
	if from != "" {
		parsed, err := parseDate(from)
		if err != nil {
			return time.Time{}, nil, models.NewValidationError("Invalid from date")
		}
		fromDate = parsed
	}

	var toDate *time.Time
	if to != "" {
		parsed, err := parseDate(to)
		if err != nil {
			return time.Time{}, nil, models.NewValidationError("Invalid to date")
		}
		toDate = &parsed
	}

	return fromDate, toDate, nil
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return respondWithAppError(c, err)
	}

	profile, svcErr := s.profileService.AddExperience(c.Context(), service.ExperienceInput{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if svcErr != nil {
		return respondWithAppError(c, svcErr)
	}

	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:id
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	entryID := c.Params("id")

	profile, err := s.profileService.RemoveExperience(c.Context(), userID, entryID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return respondWithAppError(c, err)
	}

	profile, svcErr := s.profileService.AddEducation(c.Context(), service.EducationInput{
		UserID:       userID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if svcErr != nil {
		return respondWithAppError(c, svcErr)
	}

	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:id
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	entryID := c.Params("id")

	profile, err := s.profileService.RemoveEducation(c.Context(), userID, entryID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile and removes the user together
// with their profile, posts and likes.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.profileService.DeleteAccount(c.Context(), userID); err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// GetGithubRepos handles GET /api/profile/github/:username. Upstream
// failures degrade to an empty list so a GitHub outage or an unknown
// username never breaks the profile page.
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}

	repos, err := s.github.RecentRepos(c.Context(), username)
	if err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "github repo lookup failed",
			"username", username, "error", err.Error())
		return c.JSON([]github.Repo{})
	}
	if repos == nil {
		repos = []github.Repo{}
	}

	return c.JSON(repos)
}
