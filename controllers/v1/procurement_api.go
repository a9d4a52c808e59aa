package apiv1

import (
	"io"
	"path/filepath"
	"procurement-tools-backend/controllers"
	filestorage "procurement-tools-backend/lib/file-storage"
	procurementhandler "procurement-tools-backend/lib/procurement"
	"procurement-tools-backend/middleware"
	apimodels "procurement-tools-backend/models/api"
	filesapimodels "procurement-tools-backend/models/api/files"
	procurementapimodels "procurement-tools-backend/models/api/procurement"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type procurementApiController struct {
	controllers.BaseAPIController
}

func InitProcurementApiRouters(app *fiber.App) {
	controller := procurementApiController{}
	app.Route("/api/v1/procurement", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Post("", controller.create)
		router.Get("file/:id", controller.getFile)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("history", controller.history)
			idRoute.Get("files", controller.listFiles)
			idRoute.Put("items", controller.updateItems)
			idRoute.Put("approve", controller.approve)   // согласовать
			idRoute.Put("reject", controller.reject)     // отклонить
			idRoute.Put("complete", controller.complete) // завершить
			idRoute.Post("items-file", controller.uploadItemsFile)
			idRoute.Post("completion-file", controller.uploadCompletionFile)
			idRoute.Route("item/:itemId", func(itemRoute fiber.Router) {
				itemRoute.Put("review", controller.reviewItem) // отработать позицию
				itemRoute.Post("file", controller.uploadItemEvidence)
			})
		})
	})
}

// @Summary Список заявок на закупку
// @Tags Закупки
// @Description Список заявок на закупку
// @Param   Authorization		header	string										true	"Authorization token"
// @Param	body 				body	procurementapimodels.ProcurementFilter		true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]procurementapimodels.ProcurementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/list [post]
func (c *procurementApiController) list(ctx *fiber.Ctx) error {
	var payload procurementapimodels.ProcurementFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	list, rowCount, err := procurementhandler.Instance.List(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Создание заявки на закупку
// @Tags Закупки
// @Description Создание заявки на закупку
// @Param   Authorization		header	string											true	"Authorization token"
// @Param	body 				body	procurementapimodels.ProcurementCreateData		true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement [post]
func (c *procurementApiController) create(ctx *fiber.Ctx) error {
	var payload procurementapimodels.ProcurementCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	id, err := procurementhandler.Instance.Create(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Заявка на закупку
// @Tags Закупки
// @Description Заявка на закупку
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=procurementapimodels.ProcurementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id} [get]
func (c *procurementApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	result, err := procurementhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary История по заявке
// @Tags Закупки
// @Description История действий по заявке
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]procurementapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id}/history [get]
func (c *procurementApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	result, err := procurementhandler.Instance.History(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории по заявке")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Обновление списка позиций
// @Tags Закупки
// @Description Обновление списка позиций до начала их отработки
// @Param   Authorization		header	string												true	"Authorization token"
// @Param	body 				body	procurementapimodels.ProcurementItemsUpdateData		true	"request body"
// @Param   id          		path    string												true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id}/items [put]
func (c *procurementApiController) updateItems(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload procurementapimodels.ProcurementItemsUpdateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	err = procurementhandler.Instance.UpdateItems(actor, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления списка позиций")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласовать заявку
// @Tags Закупки
// @Description Перевод заявки на следующий этап согласования
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id}/approve [put]
func (c *procurementApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	err = procurementhandler.Instance.Approve(ctx.UserContext(), actor, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить заявку
// @Tags Закупки
// @Description Отклонение заявки с обязательной причиной
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	procurementapimodels.RejectData		true	"request body"
// @Param   id          		path    string								true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id}/reject [put]
func (c *procurementApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload procurementapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	err = procurementhandler.Instance.Reject(actor, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Завершить заявку
// @Tags Закупки
// @Description Завершение заявки с обязательным комментарием
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	procurementapimodels.CompleteData	true	"request body"
// @Param   id          		path    string								true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id}/complete [put]
func (c *procurementApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload procurementapimodels.CompleteData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	err = procurementhandler.Instance.Complete(ctx.UserContext(), actor, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка завершения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отработать позицию
// @Tags Закупки
// @Description Отметка об отработке позиции заявки
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	procurementapimodels.ItemReviewData		true	"request body"
// @Param   id          		path    string									true    "rec ID"
// @Param   itemId          	path    string									true    "item rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id}/item/{itemId}/review [put]
func (c *procurementApiController) reviewItem(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	itemID, err := c.GetIDByKey(ctx, "itemId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload procurementapimodels.ItemReviewData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	err = procurementhandler.Instance.ReviewItem(actor, id, itemID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отработки позиции")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Загрузить файл со списком позиций
// @Tags Закупки
// @Description Загрузить файл со списком позиций вместо их перечисления
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path		string	true    "rec ID"
// @Param   file				formData	file 	true 	"file to upload"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id}/items-file [post]
func (c *procurementApiController) uploadItemsFile(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	fileName, contentType, fileBody, err := c.readFormFile(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	fileID, err := procurementhandler.Instance.UploadItemsFile(ctx.UserContext(), actor, id, fileName, contentType, fileBody)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла со списком позиций")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fileID))
}

// @Summary Загрузить файл к завершению заявки
// @Tags Закупки
// @Description Загрузить файл, прилагаемый к заявке при завершении
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path		string	true    "rec ID"
// @Param   file				formData	file 	true 	"file to upload"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id}/completion-file [post]
func (c *procurementApiController) uploadCompletionFile(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	fileName, contentType, fileBody, err := c.readFormFile(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	fileID, err := procurementhandler.Instance.UploadCompletionFile(ctx.UserContext(), actor, id, fileName, contentType, fileBody)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла к завершению заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fileID))
}

// @Summary Загрузить подтверждающий документ по позиции
// @Tags Закупки
// @Description Загрузить подтверждающий документ по позиции заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path		string	true    "rec ID"
// @Param   itemId          	path		string	true    "item rec ID"
// @Param   file				formData	file 	true 	"file to upload"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id}/item/{itemId}/file [post]
func (c *procurementApiController) uploadItemEvidence(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	itemID, err := c.GetIDByKey(ctx, "itemId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	fileName, contentType, fileBody, err := c.readFormFile(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	fileID, err := procurementhandler.Instance.UploadItemEvidence(ctx.UserContext(), actor, id, itemID, fileName, contentType, fileBody)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки подтверждающего документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fileID))
}

// @Summary Файлы по заявке
// @Tags Закупки
// @Description Список файлов по заявке
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]filesapimodels.FileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/{id}/files [get]
func (c *procurementApiController) listFiles(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := filestorage.Instance.ListByRequest(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка файлов")
	}
	result := make([]filesapimodels.FileView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Скачать файл
// @Tags Закупки
// @Description Скачать файл по заявке
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "ID файла"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/file/{id} [get]
func (c *procurementApiController) getFile(ctx *fiber.Ctx) error {
	fileID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	rec, body, err := filestorage.Instance.Get(ctx.UserContext(), fileID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения файла")
	}
	if rec == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("файл не найден"))
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rec.Name+`"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Выгрузка заявок в Excel
// @Tags Закупки
// @Description Выгрузка списка заявок в Excel
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	procurementapimodels.ProcurementFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/procurement/export [post]
func (c *procurementApiController) export(ctx *fiber.Ctx) error {
	var payload procurementapimodels.ProcurementFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	data, err := procurementhandler.Instance.Export(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки заявок")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="Заявки на закупку.xlsx"`)
	return ctx.SendStream(data)
}

var allowedFileExt = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true,
	".xls": true, ".xlsx": true, ".csv": true,
	".png": true, ".jpg": true, ".jpeg": true,
}

func (c *procurementApiController) readFormFile(ctx *fiber.Ctx) (fileName, contentType string, body []byte, err error) {
	file, err := ctx.FormFile("file")
	if err != nil {
		return "", "", nil, err
	}
	if !allowedFileExt[strings.ToLower(filepath.Ext(file.Filename))] {
		return "", "", nil, errors.New("недопустимый формат файла")
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("Ошибка при получении файла")
		return "", "", nil, err
	}
	defer buffer.Close()
	body, err = io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("Ошибка при чтении файла")
		return "", "", nil, err
	}
	return file.Filename, file.Header.Get("Content-Type"), body, nil
}
