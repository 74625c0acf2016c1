package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/ussd"
)

type ussdApi struct {
	svc      *ussd.Service
	logger   core.Logger
	validate *validator.Validate
}

func registerUSSDAPI(e *echo.Echo, svc *ussd.Service, logger core.Logger, validate *validator.Validate) {
	api := ussdApi{
		svc:      svc,
		logger:   logger,
		validate: validate,
	}

	// gateway-registered callbacks; authenticated by source at the edge
	e.POST("/ussd", api.callback)
	e.POST("/sms/delivery-report", api.deliveryReport)
}

// CallbackRequest is the gateway's per-keystroke round-trip payload.
// `text` carries the whole accumulated input; it is the only state there is.
type CallbackRequest struct {
	SessionID   string `form:"sessionId" json:"sessionId"`
	ServiceCode string `form:"serviceCode" json:"serviceCode"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber" validate:"required,msisdn"`
	Text        string `form:"text" json:"text"`
}

func (r *CallbackRequest) Validate(validate *validator.Validate) error {
	r.PhoneNumber = core.CleanString(r.PhoneNumber)
	return validate.Struct(r)
}

// DeliveryReport is the gateway's asynchronous per-message delivery status.
type DeliveryReport struct {
	ID          string `form:"id" json:"id"`
	Status      string `form:"status" json:"status"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
	NetworkCode string `form:"networkCode" json:"networkCode"`
}

// Handlers

func (api *ussdApi) callback(ctx echo.Context) error {
	var data CallbackRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CallbackRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res := api.svc.Handle(ctx.Request().Context(), ussd.Request{
		SessionID: data.SessionID,
		Phone:     data.PhoneNumber,
		Text:      data.Text,
	})

	return ctx.String(http.StatusOK, res.Wire())
}

func (api *ussdApi) deliveryReport(ctx echo.Context) error {
	var data DeliveryReport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DeliveryReport")
	}

	// nothing to act on; failed sends were already best-effort
	api.logger.Info(fmt.Sprintf("SMS %s to %s: %s", data.ID, data.PhoneNumber, data.Status))
	return ctx.NoContent(http.StatusOK)
}
