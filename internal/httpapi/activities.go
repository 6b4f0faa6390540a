package httpapi

import (
	"net/http"

	"github.com/dmitrymomot/accessgate/core/mediator"
	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/internal/activities"
	"github.com/dmitrymomot/accessgate/internal/domain"
)

func (a *API) listActivities(w http.ResponseWriter, r *http.Request) {
	res, err := mediator.Ask[activities.ListActivities, result.Of[[]domain.Activity]](r.Context(), a.queries, activities.ListActivities{})
	writeValue(a, w, r, res, err, http.StatusOK)
}

func (a *API) createActivity(w http.ResponseWriter, r *http.Request) {
	cmd, ok := readJSON[activities.CreateActivity](a, w, r)
	if !ok {
		return
	}
	res, err := mediator.Send[activities.CreateActivity, result.Of[domain.Activity]](r.Context(), a.commands, cmd)
	writeValue(a, w, r, res, err, http.StatusCreated)
}

func (a *API) getActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := mediator.Ask[activities.GetActivity, result.Of[domain.Activity]](r.Context(), a.queries, activities.GetActivity{ID: id})
	writeValue(a, w, r, res, err, http.StatusOK)
}

func (a *API) updateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cmd, ok := readJSON[activities.UpdateActivity](a, w, r)
	if !ok {
		return
	}
	cmd.ID = id
	res, err := mediator.Send[activities.UpdateActivity, result.Of[domain.Activity]](r.Context(), a.commands, cmd)
	writeValue(a, w, r, res, err, http.StatusOK)
}

func (a *API) deleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := mediator.Send[activities.DeleteActivity, result.Result](r.Context(), a.commands, activities.DeleteActivity{ID: id})
	writeEmpty(a, w, r, res, err)
}
