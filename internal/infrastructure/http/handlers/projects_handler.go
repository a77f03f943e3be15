package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	appproject "github.com/sidequesthq/sidequest/internal/application/project"
	"github.com/sidequesthq/sidequest/internal/application/repometa"
	"github.com/sidequesthq/sidequest/internal/domain"
	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
	"github.com/sidequesthq/sidequest/internal/infrastructure/http/middleware"
)

// ProjectsHandler serves /api/projects. Every operation is scoped to the
// identity the auth middleware resolved; the client can neither set nor see
// another user's rows, and wrong-owner ids read as not-found.
type ProjectsHandler struct {
	create   *appproject.CreateProject
	list     *appproject.ListProjects
	get      *appproject.GetProject
	update   *appproject.UpdateProject
	delete   *appproject.DeleteProject
	repoMeta *repometa.FetchRepoMetadata
	validate *validator.Validate
	log      zerolog.Logger
}

func NewProjectsHandler(
	create *appproject.CreateProject,
	list *appproject.ListProjects,
	get *appproject.GetProject,
	update *appproject.UpdateProject,
	del *appproject.DeleteProject,
	repoMeta *repometa.FetchRepoMetadata,
	log zerolog.Logger,
) *ProjectsHandler {
	return &ProjectsHandler{
		create:   create,
		list:     list,
		get:      get,
		update:   update,
		delete:   del,
		repoMeta: repoMeta,
		validate: validator.New(),
		log:      log,
	}
}

type projectResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	Reason    string     `json:"reason,omitempty"`
	RepoURL   string     `json:"repo_url,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Status:    string(p.Status),
		Reason:    p.Reason,
		RepoURL:   p.RepoURL,
		StartedAt: p.StartedAt,
		EndedAt:   p.EndedAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// owner resolves the authenticated user id, or writes a 401.
func owner(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return domain.UserID{}, false
	}
	id, err := domain.ParseUserID(identity.ID)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return domain.UserID{}, false
	}
	return id, true
}

// projectID parses the {id} route param, or writes a 404. An unparseable id
// gets the same signal as a missing project.
func projectID(w http.ResponseWriter, r *http.Request) (domain.ProjectID, bool) {
	id, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusNotFound, domerrors.ErrProjectNotFound.Error())
		return domain.ProjectID{}, false
	}
	return id, true
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	var body struct {
		Title     string     `json:"title" validate:"required,min=1,max=200"`
		Status    string     `json:"status" validate:"omitempty,oneof=active paused abandoned shipped"`
		Reason    string     `json:"reason" validate:"omitempty,max=2000"`
		RepoURL   string     `json:"repo_url" validate:"omitempty,url,max=500"`
		StartedAt *time.Time `json:"started_at"`
		// A user_id in the body is ignored: ownership always comes from
		// the token.
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	// Trim before validating so a whitespace-only title cannot pass min=1.
	body.Title = strings.TrimSpace(body.Title)
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, fieldErrors(err))
		return
	}
	p, err := h.create.Execute(r.Context(), appproject.CreateProjectInput{
		Owner:     ownerID,
		Title:     body.Title,
		Status:    domain.ProjectStatus(body.Status),
		Reason:    body.Reason,
		RepoURL:   body.RepoURL,
		StartedAt: body.StartedAt,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create project failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toProjectResponse(p))
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	var status *domain.ProjectStatus
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, valid := domain.ParseProjectStatus(s)
		if !valid {
			writeValidationErr(w, map[string]string{"status": "must be one of: active paused abandoned shipped"})
			return
		}
		status = &parsed
	}
	projects, err := h.list.Execute(r.Context(), ownerID, status)
	if err != nil {
		h.log.Error().Err(err).Msg("list projects failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": items})
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	p, err := h.get.Execute(r.Context(), ownerID, id)
	if err != nil {
		h.writeProjectErr(w, err, "get project failed")
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	var body struct {
		Title   *string    `json:"title" validate:"omitempty,min=1,max=200"`
		Status  *string    `json:"status" validate:"omitempty,oneof=active paused abandoned shipped"`
		Reason  *string    `json:"reason" validate:"omitempty,max=2000"`
		RepoURL *string    `json:"repo_url" validate:"omitempty,url,max=500"`
		EndedAt *time.Time `json:"ended_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Title != nil {
		trimmed := strings.TrimSpace(*body.Title)
		// omitempty treats "" as absent, so the empty case needs an
		// explicit check here.
		if trimmed == "" {
			writeValidationErr(w, map[string]string{"title": "must be at least 1 characters"})
			return
		}
		body.Title = &trimmed
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, fieldErrors(err))
		return
	}
	input := appproject.UpdateProjectInput{
		Owner:   ownerID,
		ID:      id,
		Title:   body.Title,
		Reason:  body.Reason,
		RepoURL: body.RepoURL,
		EndedAt: body.EndedAt,
	}
	if body.Status != nil {
		s := domain.ProjectStatus(*body.Status)
		input.Status = &s
	}
	p, err := h.update.Execute(r.Context(), input)
	if err != nil {
		h.writeProjectErr(w, err, "update project failed")
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	if err := h.delete.Execute(r.Context(), ownerID, id); err != nil {
		h.writeProjectErr(w, err, "delete project failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
}

// RepoMetadata serves GET /api/projects/{id}/repo: hosting-API metadata for
// the project's linked repository, cache first.
func (h *ProjectsHandler) RepoMetadata(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	p, err := h.get.Execute(r.Context(), ownerID, id)
	if err != nil {
		h.writeProjectErr(w, err, "get project failed")
		return
	}
	md, err := h.repoMeta.Execute(r.Context(), p.RepoURL)
	if err != nil {
		switch {
		case errors.Is(err, domerrors.ErrNoRepoLinked):
			middleware.RecordRepoFetch("no_repo")
			writeErr(w, http.StatusNotFound, domerrors.ErrNoRepoLinked.Error())
		case errors.Is(err, domerrors.ErrBadRepoURL):
			middleware.RecordRepoFetch("bad_url")
			writeErr(w, http.StatusBadGateway, domerrors.ErrBadRepoURL.Error())
		case errors.Is(err, domerrors.ErrRepoUnavailable):
			middleware.RecordRepoFetch("error")
			writeErr(w, http.StatusBadGateway, domerrors.ErrRepoUnavailable.Error())
		default:
			middleware.RecordRepoFetch("error")
			h.log.Error().Err(err).Msg("repo metadata fetch failed")
			writeErr(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	middleware.RecordRepoFetch("ok")
	writeJSON(w, http.StatusOK, md)
}

func (h *ProjectsHandler) writeProjectErr(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, domerrors.ErrProjectNotFound) {
		writeErr(w, http.StatusNotFound, domerrors.ErrProjectNotFound.Error())
		return
	}
	h.log.Error().Err(err).Msg(logMsg)
	writeErr(w, http.StatusInternalServerError, "internal error")
}
