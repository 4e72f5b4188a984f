package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-requests-backend/controllers"
	requesthandler "hr-requests-backend/lib/request"
	"hr-requests-backend/middleware"
	"hr-requests-backend/models"
	apimodels "hr-requests-backend/models/api"
	requestapimodels "hr-requests-backend/models/api/request"
)

// Контроллер отсутствий: упрощенный интерфейс поверх заявок
// для форм отпусков и больничных.
type absenceApiController struct {
	controllers.BaseAPIController
}

func InitAbsenceApiRouters(app *fiber.App) {
	controller := absenceApiController{}
	app.Route("absence", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("validate", controller.validate)
		router.Get("my", controller.my)
		router.Get("list", middleware.ManagerRequired(), controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("confirm", controller.confirm)
			idRoute.Put("reject", controller.reject)
		})
	})
}

// @Summary Создание отсутствия
// @Tags Отсутствия
// @Description Создание заявки на отсутствие
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.AbsenceCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/absence [post]
func (c *absenceApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.AbsenceCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := requesthandler.Instance.CreateAbsence(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания отсутствия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Проверка сроков подачи
// @Tags Отсутствия
// @Description Предварительная проверка дат отсутствия без создания заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.AbsenceValidateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/absence/validate [post]
func (c *absenceApiController) validate(ctx *fiber.Ctx) error {
	var payload requestapimodels.AbsenceValidateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := requesthandler.Instance.ValidateAbsence(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки отсутствия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Мои отсутствия
// @Tags Отсутствия
// @Description Список отсутствий текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.AbsenceView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/absence/my [get]
func (c *absenceApiController) my(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	filter := requestapimodels.UserListFilter{Kind: models.RequestKindAbsence}
	filter.Limit = 100
	list, _, err := requesthandler.Instance.ListForUser(userID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка отсутствий")
	}
	views := make([]requestapimodels.AbsenceView, 0, len(list))
	for _, item := range list {
		views = append(views, absenceFromView(item))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(views))
}

// @Summary Все отсутствия
// @Tags Отсутствия
// @Description Список всех отсутствий для руководителя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.AbsenceView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/absence/list [get]
func (c *absenceApiController) list(ctx *fiber.Ctx) error {
	list, err := requesthandler.Instance.ListAbsences()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка отсутствий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение отсутствия
// @Tags Отсутствия
// @Description Получение отсутствия
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.AbsenceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/absence/{id} [get]
func (c *absenceApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	view, err := requesthandler.Instance.GetByID(id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения отсутствия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(absenceFromView(view)))
}

// @Summary Изменение отсутствия
// @Tags Отсутствия
// @Description Уточнение периода и параметров отсутствия
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.AbsenceEditData	true	"request body"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/absence/{id} [put]
func (c *absenceApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload requestapimodels.AbsenceEditData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = requesthandler.Instance.Update(id, userID, payload.ToEdit())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения отсутствия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отмена отсутствия
// @Tags Отсутствия
// @Description Удаление заявки на отсутствие
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/absence/{id} [delete]
func (c *absenceApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = requesthandler.Instance.Delete(id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления отсутствия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Подтверждение отсутствия
// @Tags Отсутствия
// @Description Подтверждение отсутствия руководителем
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.AbsenceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/absence/{id}/confirm [put]
func (c *absenceApiController) confirm(ctx *fiber.Ctx) error {
	return c.decide(ctx, models.DecisionActionApproved)
}

// @Summary Отклонение отсутствия
// @Tags Отсутствия
// @Description Отклонение отсутствия руководителем
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.AbsenceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/absence/{id}/reject [put]
func (c *absenceApiController) reject(ctx *fiber.Ctx) error {
	return c.decide(ctx, models.DecisionActionDeclined)
}

func (c *absenceApiController) decide(ctx *fiber.Ctx, action models.DecisionAction) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload requestapimodels.DecideData
	if len(ctx.Body()) > 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	userID := middleware.GetUserID(ctx)
	view, err := requesthandler.Instance.Decide(id, userID, action, payload.Comment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка принятия решения по отсутствию")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(absenceFromView(view)))
}

func absenceFromView(view requestapimodels.RequestView) requestapimodels.AbsenceView {
	result := requestapimodels.AbsenceView{
		ID:         view.ID,
		Type:       view.Type,
		DateFrom:   view.DateFrom,
		DateTo:     view.DateTo,
		Paid:       view.Paid,
		Comment:    view.Comment,
		Employee:   view.Employee,
		Manager:    view.Manager,
		Substitute: view.Substitute,
		CreatedAt:  view.CreatedAt,
	}
	switch view.Status {
	case models.RequestStatusApproved:
		confirmed := true
		result.Confirmed = &confirmed
	case models.RequestStatusDeclined:
		confirmed := false
		result.Confirmed = &confirmed
	}
	return result
}
