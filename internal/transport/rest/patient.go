package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medcenter/internal/domain"
	"medcenter/internal/repository"
)

// @Summary Создать пациента
// @Description Заводит карту пациента. Доступно регистратору и администратору
// @Tags Пациенты
// @Accept json
// @Produce json
// @Param input body domain.CreatePatientDTO true "Данные пациента"
// @Success 201 {object} map[string]interface{} "ID созданного пациента"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Пациент с таким email уже существует"
// @Security ApiKeyAuth
// @Router /patients [post]
func (h *Handler) createPatient(c *gin.Context) {
	var req domain.CreatePatientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Patient.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrPatientExists) {
			conflictResponse(c, err.Error())
			return
		}
		h.logger.Error("ошибка создания пациента", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Список пациентов
// @Tags Пациенты
// @Produce json
// @Param query query string false "Поиск по ФИО, email и телефону"
// @Param is_active query bool false "Фильтр по активности"
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} paginatedResponse "Список пациентов"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /patients [get]
func (h *Handler) getPatients(c *gin.Context) {
	page, pageSize := pageParams(c)

	filter := domain.PatientFilter{
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

	patients, total, err := h.services.Patient.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения списка пациентов", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, patients, total, page, pageSize)
}

// @Summary Пациент по ID
// @Tags Пациенты
// @Produce json
// @Param id path int true "ID пациента"
// @Success 200 {object} domain.Patient "Данные пациента"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Пациент не найден"
// @Security ApiKeyAuth
// @Router /patients/{id} [get]
func (h *Handler) getPatientByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	patient, err := h.services.Patient.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "пациент не найден")
		return
	}

	successResponse(c, http.StatusOK, patient)
}

// @Summary Пациент по слагу
// @Tags Пациенты
// @Produce json
// @Param slug path string true "Слаг пациента"
// @Success 200 {object} domain.Patient "Данные пациента"
// @Failure 404 {object} errorResponseBody "Пациент не найден"
// @Security ApiKeyAuth
// @Router /patients/slug/{slug} [get]
func (h *Handler) getPatientBySlug(c *gin.Context) {
	patient, err := h.services.Patient.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		notFoundResponse(c, "пациент не найден")
		return
	}

	successResponse(c, http.StatusOK, patient)
}

// @Summary Обновить пациента
// @Tags Пациенты
// @Accept json
// @Produce json
// @Param id path int true "ID пациента"
// @Param input body domain.UpdatePatientDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /patients/{id} [put]
func (h *Handler) updatePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdatePatientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Patient.Update(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, repository.ErrPatientExists) {
			conflictResponse(c, err.Error())
			return
		}
		h.logger.Error("ошибка обновления пациента", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "пациент обновлен")
}

// @Summary Удалить пациента
// @Tags Пациенты
// @Produce json
// @Param id path int true "ID пациента"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /patients/{id} [delete]
func (h *Handler) deletePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Patient.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления пациента", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "пациент удален")
}
