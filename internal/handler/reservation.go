package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campsite-reservation/internal/model"
	"github.com/iliyamo/campsite-reservation/internal/queue"
	"github.com/iliyamo/campsite-reservation/internal/service"
)

// dateLayout is the wire format for dates in request bodies and query
// parameters.  Time of day is owned by the service (everything runs at
// noon UTC), so callers only ever send calendar days.
const dateLayout = "2006-01-02"

// ReservationHandler exposes the booking engine over HTTP.  It owns the
// request/response shapes only; every booking decision is delegated to
// the reservation service.
type ReservationHandler struct {
	Service *service.ReservationService
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Service: svc}
}

// reservationBody is the JSON body accepted by create and update.
type reservationBody struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
}

// Create handles POST /reservation.  On success it returns 201 with the
// persisted reservation and publishes a created event.
func (h *ReservationHandler) Create(c echo.Context) error {
	req, err := bindRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	res, err := h.Service.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	go publishEvent(queue.ActionCreated, res)
	return respond(c, http.StatusCreated, res)
}

// FindByID handles GET /reservation/:id.
func (h *ReservationHandler) FindByID(c echo.Context) error {
	res, err := h.Service.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, res)
}

// Update handles PUT /reservation/:id.  All mutable fields are replaced
// from the body and re-validated as if newly created.
func (h *ReservationHandler) Update(c echo.Context) error {
	req, err := bindRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	res, err := h.Service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	go publishEvent(queue.ActionUpdated, res)
	return respond(c, http.StatusOK, res)
}

// Delete handles DELETE /reservation/:id?email=...  The email query
// parameter is the ownership token; a mismatch is answered exactly like a
// missing id.
func (h *ReservationHandler) Delete(c echo.Context) error {
	res, err := h.Service.Delete(c.Request().Context(), c.Param("id"), c.QueryParam("email"))
	if err != nil {
		return respondError(c, err)
	}
	go publishEvent(queue.ActionCancelled, res)
	return c.NoContent(http.StatusNoContent)
}

// Availability handles GET /reservation/availability?startDate&endDate.
// Both parameters are optional: the window defaults to one month starting
// today, and both ends are shifted one day forward so the first bookable
// day (tomorrow) leads the listing.
func (h *ReservationHandler) Availability(c echo.Context) error {
	start := model.Noon(time.Now().UTC())
	if s := c.QueryParam("startDate"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return badRequest(c, "invalid startDate, expected YYYY-MM-DD")
		}
		start = model.Noon(t)
	}
	end := start.AddDate(0, 1, 0)
	if s := c.QueryParam("endDate"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return badRequest(c, "invalid endDate, expected YYYY-MM-DD")
		}
		end = model.Noon(t)
	}
	days, err := h.Service.FindAvailability(c.Request().Context(),
		start.AddDate(0, 0, 1), end.AddDate(0, 0, 1))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.Format(dateLayout))
	}
	return respond(c, http.StatusOK, out)
}

// bindRequest parses and prevalidates the reservation body shared by
// create and update.  The returned error carries the message the caller
// answers 400 with; nothing is written here, and the request is only
// meaningful when the error is nil.
func bindRequest(c echo.Context) (model.ReservationRequest, error) {
	var body reservationBody
	if err := c.Bind(&body); err != nil {
		return model.ReservationRequest{}, errors.New("invalid request body")
	}
	if body.StartDate == "" || body.EndDate == "" || body.Email == "" || body.FullName == "" {
		return model.ReservationRequest{}, errors.New("All fields are mandatory")
	}
	start, err := time.Parse(dateLayout, body.StartDate)
	if err != nil {
		return model.ReservationRequest{}, errors.New("invalid startDate, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, body.EndDate)
	if err != nil {
		return model.ReservationRequest{}, errors.New("invalid endDate, expected YYYY-MM-DD")
	}
	return model.ReservationRequest{
		StartDate: start,
		EndDate:   end,
		Email:     body.Email,
		FullName:  body.FullName,
	}, nil
}

// respond wraps a successful payload in the {response, message, error}
// envelope.
func respond(c echo.Context, status int, payload interface{}) error {
	return c.JSON(status, echo.Map{
		"response": payload,
		"message":  nil,
		"error":    false,
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"response": nil,
		"message":  msg,
		"error":    true,
	})
}

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindInvalidModel, service.KindAlreadyBooked:
		status = http.StatusBadRequest
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindStorageUnavailable:
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, echo.Map{
		"response": nil,
		"message":  err.Error(),
		"error":    true,
	})
}

// publishEvent delivers a lifecycle event for the reservation.  It runs
// detached from the request with its own timeout; failures are logged by
// the publisher and otherwise ignored.
func publishEvent(action string, res *model.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue.PublishReservationEvent(ctx, queue.ReservationEvent{
		Action:     action,
		UID:        res.UID,
		Email:      res.Email,
		FullName:   res.FullName,
		StartDate:  res.StartDate.Format(dateLayout),
		EndDate:    res.EndDate.Format(dateLayout),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
