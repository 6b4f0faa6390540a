package httpapi

import (
	"net/http"

	"github.com/dmitrymomot/accessgate/core/mediator"
	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/internal/accessrequests"
	"github.com/dmitrymomot/accessgate/internal/domain"
	"github.com/dmitrymomot/accessgate/internal/users"
)

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	res, err := mediator.Ask[users.ListUsers, result.Of[[]domain.User]](r.Context(), a.queries, users.ListUsers{})
	writeValue(a, w, r, res, err, http.StatusOK)
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	cmd, ok := readJSON[users.CreateUser](a, w, r)
	if !ok {
		return
	}
	res, err := mediator.Send[users.CreateUser, result.Of[domain.User]](r.Context(), a.commands, cmd)
	writeValue(a, w, r, res, err, http.StatusCreated)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := mediator.Ask[users.GetUser, result.Of[domain.User]](r.Context(), a.queries, users.GetUser{ID: id})
	writeValue(a, w, r, res, err, http.StatusOK)
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cmd, ok := readJSON[users.UpdateUser](a, w, r)
	if !ok {
		return
	}
	cmd.ID = id
	res, err := mediator.Send[users.UpdateUser, result.Of[domain.User]](r.Context(), a.commands, cmd)
	writeValue(a, w, r, res, err, http.StatusOK)
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := mediator.Send[users.DeleteUser, result.Result](r.Context(), a.commands, users.DeleteUser{ID: id})
	writeEmpty(a, w, r, res, err)
}

func (a *API) verifyAccess(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityID")
	if !ok {
		return
	}
	res, err := mediator.Ask[accessrequests.VerifyAccess, result.Of[domain.AccessDecision]](r.Context(), a.queries,
		accessrequests.VerifyAccess{UserID: userID, ActivityID: activityID})
	writeValue(a, w, r, res, err, http.StatusOK)
}
