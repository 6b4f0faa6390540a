package httpapi

import (
	"net/http"

	"github.com/dmitrymomot/accessgate/core/mediator"
	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/internal/accessrequests"
	"github.com/dmitrymomot/accessgate/internal/domain"
)

// listAccessRequests accepts the optional userId, activityId and status query parameters.
func (a *API) listAccessRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryID(w, r, "userId")
	if !ok {
		return
	}
	activityID, ok := queryID(w, r, "activityId")
	if !ok {
		return
	}
	q := accessrequests.ListAccessRequests{
		UserID:     userID,
		ActivityID: activityID,
		Status:     domain.Status(r.URL.Query().Get("status")),
	}
	res, err := mediator.Ask[accessrequests.ListAccessRequests, result.Of[[]domain.AccessRequest]](r.Context(), a.queries, q)
	writeValue(a, w, r, res, err, http.StatusOK)
}

func (a *API) createAccessRequest(w http.ResponseWriter, r *http.Request) {
	cmd, ok := readJSON[accessrequests.CreateAccessRequest](a, w, r)
	if !ok {
		return
	}
	res, err := mediator.Send[accessrequests.CreateAccessRequest, result.Of[domain.AccessRequest]](r.Context(), a.commands, cmd)
	writeValue(a, w, r, res, err, http.StatusCreated)
}

func (a *API) getAccessRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := mediator.Ask[accessrequests.GetAccessRequest, result.Of[domain.AccessRequest]](r.Context(), a.queries,
		accessrequests.GetAccessRequest{ID: id})
	writeValue(a, w, r, res, err, http.StatusOK)
}

func (a *API) deleteAccessRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := mediator.Send[accessrequests.DeleteAccessRequest, result.Result](r.Context(), a.commands,
		accessrequests.DeleteAccessRequest{ID: id})
	writeEmpty(a, w, r, res, err)
}

func (a *API) decideAccessRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cmd, ok := readJSON[accessrequests.DecideAccessRequest](a, w, r)
	if !ok {
		return
	}
	cmd.ID = id
	res, err := mediator.Send[accessrequests.DecideAccessRequest, result.Of[domain.AccessRequest]](r.Context(), a.commands, cmd)
	writeValue(a, w, r, res, err, http.StatusOK)
}

func (a *API) revokeAccessRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cmd, ok := readJSON[accessrequests.RevokeAccessRequest](a, w, r)
	if !ok {
		return
	}
	cmd.ID = id
	res, err := mediator.Send[accessrequests.RevokeAccessRequest, result.Of[domain.AccessRequest]](r.Context(), a.commands, cmd)
	writeValue(a, w, r, res, err, http.StatusOK)
}
