package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medcenter/internal/domain"
	"medcenter/internal/repository"
)

// @Summary Список больниц
// @Description Возвращает больницы с поиском и пагинацией
// @Tags Больницы
// @Produce json
// @Param query query string false "Поиск по названию, адресу и описанию"
// @Param is_active query bool false "Фильтр по активности"
// @Param open_now query bool false "Только открытые сейчас"
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} paginatedResponse "Список больниц"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /hospitals [get]
func (h *Handler) getHospitals(c *gin.Context) {
	page, pageSize := pageParams(c)

	filter := domain.HospitalFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	if query := c.Query("query"); query != "" {
		filter.Query = &query
	}
	if isActiveStr := c.Query("is_active"); isActiveStr != "" {
		isActive := isActiveStr == "true"
		filter.IsActive = &isActive
	}
	if c.Query("open_now") == "true" {
		filter.OpenNow = true
	}

	hospitals, total, err := h.services.Hospital.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения списка больниц", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, hospitals, total, page, pageSize)
}

// @Summary Больница по ID
// @Tags Больницы
// @Produce json
// @Param id path int true "ID больницы"
// @Success 200 {object} domain.Hospital "Данные больницы"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Больница не найдена"
// @Router /hospitals/{id} [get]
func (h *Handler) getHospitalByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	hospital, err := h.services.Hospital.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "больница не найдена")
		return
	}

	successResponse(c, http.StatusOK, hospital)
}

// @Summary Больница по слагу
// @Tags Больницы
// @Produce json
// @Param slug path string true "Слаг больницы"
// @Success 200 {object} domain.Hospital "Данные больницы"
// @Failure 404 {object} errorResponseBody "Больница не найдена"
// @Router /hospitals/slug/{slug} [get]
func (h *Handler) getHospitalBySlug(c *gin.Context) {
	hospital, err := h.services.Hospital.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		notFoundResponse(c, "больница не найдена")
		return
	}

	successResponse(c, http.StatusOK, hospital)
}

// @Summary Создать больницу
// @Tags Больницы
// @Accept json
// @Produce json
// @Param input body domain.CreateHospitalDTO true "Данные больницы"
// @Success 201 {object} map[string]interface{} "ID созданной больницы"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Больница с таким названием или email уже существует"
// @Security ApiKeyAuth
// @Router /hospitals [post]
func (h *Handler) createHospital(c *gin.Context) {
	var req domain.CreateHospitalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Hospital.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrHospitalExists) {
			conflictResponse(c, err.Error())
			return
		}
		h.logger.Error("ошибка создания больницы", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить больницу
// @Tags Больницы
// @Accept json
// @Produce json
// @Param id path int true "ID больницы"
// @Param input body domain.UpdateHospitalDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /hospitals/{id} [put]
func (h *Handler) updateHospital(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateHospitalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Hospital.Update(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, repository.ErrHospitalExists) {
			conflictResponse(c, err.Error())
			return
		}
		h.logger.Error("ошибка обновления больницы", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "больница обновлена")
}

// @Summary Удалить больницу
// @Tags Больницы
// @Produce json
// @Param id path int true "ID больницы"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /hospitals/{id} [delete]
func (h *Handler) deleteHospital(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Hospital.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления больницы", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "больница удалена")
}

// @Summary Загрузить фото больницы
// @Tags Больницы
// @Accept mpfd
// @Produce json
// @Param id path int true "ID больницы"
// @Param photo formData file true "Файл изображения"
// @Success 200 {object} messageResponseType "Сообщение об успешной загрузке"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /hospitals/{id}/photo [post]
func (h *Handler) uploadHospitalPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	data, filename, err := readUploadedFile(c, "photo")
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	if err := h.services.Hospital.UploadPhoto(c.Request.Context(), id, data, filename); err != nil {
		h.logger.Error("ошибка загрузки фото больницы", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "фото загружено")
}

// @Summary Удалить фото больницы
// @Tags Больницы
// @Produce json
// @Param id path int true "ID больницы"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /hospitals/{id}/photo [delete]
func (h *Handler) deleteHospitalPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Hospital.DeletePhoto(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления фото больницы", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "фото удалено")
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return page, pageSize
}

func readUploadedFile(c *gin.Context, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	return data, fileHeader.Filename, nil
}
