package http

import (
	"net/http"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/skill"
	"github.com/cmlabs-hris/bench-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/bench-backend-go/internal/service/master"
)

type MasterHandler interface {
	GetJobRoles(w http.ResponseWriter, r *http.Request)
	GetSkills(w http.ResponseWriter, r *http.Request)
	GetTrainings(w http.ResponseWriter, r *http.Request)
	GetInternalProjects(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
	skillService  skill.SkillService
}

func NewMasterHandler(masterService master.MasterService, skillService skill.SkillService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
		skillService:  skillService,
	}
}

func (h *masterHandlerImpl) GetJobRoles(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListJobRoles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) GetSkills(w http.ResponseWriter, r *http.Request) {
	result, err := h.skillService.ListCatalog(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) GetTrainings(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListTrainings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) GetInternalProjects(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListInternalProjects(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
