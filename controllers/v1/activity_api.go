package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-requests-backend/controllers"
	activityloghandler "hr-requests-backend/lib/activity-log"
	"hr-requests-backend/middleware"
	apimodels "hr-requests-backend/models/api"
)

type activityApiController struct {
	controllers.BaseAPIController
}

func InitActivityApiRouters(app *fiber.App) {
	controller := activityApiController{}
	app.Route("activity", func(router fiber.Router) {
		router.Get("my", controller.my)
		router.Get("user/:id", middleware.ManagerRequired(), controller.byUser)
		router.Get("request/:id", middleware.ManagerRequired(), controller.byRequest)
	})
}

// @Summary Моя активность
// @Tags Журнал активности
// @Description Последние действия текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   limit       		query   int     false        "limit"
// @Success 200 {object} apimodels.Response{data=[]activityapimodels.ActivityView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/activity/my [get]
func (c *activityApiController) my(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	limit := ctx.QueryInt("limit", 50)
	list, err := activityloghandler.Instance.ListForUser(userID, limit)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала активности")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Активность сотрудника
// @Tags Журнал активности
// @Description Последние действия указанного сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "user ID"
// @Param   limit       		query   int     false        "limit"
// @Success 200 {object} apimodels.Response{data=[]activityapimodels.ActivityView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/activity/user/{id} [get]
func (c *activityApiController) byUser(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	limit := ctx.QueryInt("limit", 50)
	list, err := activityloghandler.Instance.ListForUser(id, limit)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала активности")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Активность по заявке
// @Tags Журнал активности
// @Description Все действия по заявке, включая удаленные заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]activityapimodels.ActivityView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/activity/request/{id} [get]
func (c *activityApiController) byRequest(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := activityloghandler.Instance.ListForRequest(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала активности")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
