package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-requests-backend/controllers"
	subscriptionhandler "hr-requests-backend/lib/subscription"
	"hr-requests-backend/middleware"
	apimodels "hr-requests-backend/models/api"
	subscriptionapimodels "hr-requests-backend/models/api/subscription"
)

type subscriptionApiController struct {
	controllers.BaseAPIController
}

func InitSubscriptionApiRouters(app *fiber.App) {
	controller := subscriptionApiController{}
	app.Route("subscription", func(router fiber.Router) {
		router.Post("", controller.subscribe)
		router.Delete("", controller.unsubscribe)
		router.Get("list", controller.list)
	})
}

// @Summary Подписка на пользователя
// @Tags Подписки
// @Description Подписка на уведомления о заявках пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 subscriptionapimodels.SubscriptionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/subscription [post]
func (c *subscriptionApiController) subscribe(ctx *fiber.Ctx) error {
	var payload subscriptionapimodels.SubscriptionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err := subscriptionhandler.Instance.Subscribe(userID, payload.WatchedID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка оформления подписки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отмена подписки
// @Tags Подписки
// @Description Отмена подписки на пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 subscriptionapimodels.SubscriptionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/subscription [delete]
func (c *subscriptionApiController) unsubscribe(ctx *fiber.Ctx) error {
	var payload subscriptionapimodels.SubscriptionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err := subscriptionhandler.Instance.Unsubscribe(userID, payload.WatchedID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены подписки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список подписок
// @Tags Подписки
// @Description Список подписок текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]subscriptionapimodels.SubscriptionView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/subscription/list [get]
func (c *subscriptionApiController) list(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := subscriptionhandler.Instance.List(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка подписок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
