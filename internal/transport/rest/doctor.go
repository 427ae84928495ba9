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

// @Summary Список врачей
// @Description Возвращает врачей с поиском по имени, специализации и описанию
// @Tags Врачи
// @Produce json
// @Param query query string false "Поиск по имени, специализации и описанию"
// @Param specialization query string false "Фильтр по специализации"
// @Param hospital_id query int false "Фильтр по больнице"
// @Param is_active query bool false "Фильтр по активности"
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} paginatedResponse "Список врачей"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /doctors [get]
func (h *Handler) getDoctors(c *gin.Context) {
	page, pageSize := pageParams(c)

	filter := domain.DoctorFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	if query := c.Query("query"); query != "" {
		filter.Query = &query
	}
	if specialization := c.Query("specialization"); specialization != "" {
		filter.Specialization = &specialization
	}
	if hospitalIDStr := c.Query("hospital_id"); hospitalIDStr != "" {
		hospitalID, err := strconv.ParseInt(hospitalIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат hospital_id")
			return
		}
		filter.HospitalID = &hospitalID
	}
	if isActiveStr := c.Query("is_active"); isActiveStr != "" {
		isActive := isActiveStr == "true"
		filter.IsActive = &isActive
	}

	doctors, total, err := h.services.Doctor.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения списка врачей", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, doctors, total, page, pageSize)
}

// @Summary Врач по ID
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} domain.Doctor "Данные врача"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id} [get]
func (h *Handler) getDoctorByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "врач не найден")
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Свободные слоты врача
// @Description Возвращает свободные времена начала приема врача на дату
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Param date query string true "Дата в формате ГГГГ-ММ-ДД"
// @Success 200 {array} string "Список свободных времен"
// @Failure 400 {object} errorResponseBody "Неверный формат ID или даты"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id}/slots [get]
func (h *Handler) getDoctorFreeSlots(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "параметр date обязателен")
		return
	}

	slots, err := h.services.Appointment.GetFreeSlots(c.Request.Context(), id, date)
	if err != nil {
		h.logger.Warn("ошибка получения свободных слотов", zap.Int64("doctorID", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Недельное расписание врача
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {array} domain.Schedule "Расписание по дням недели"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id}/schedule [get]
func (h *Handler) getDoctorSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	schedules, err := h.services.Schedule.GetWeek(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, schedules)
}

// @Summary Создать врача
// @Tags Врачи
// @Accept json
// @Produce json
// @Param input body domain.CreateDoctorDTO true "Данные врача"
// @Success 201 {object} map[string]interface{} "ID созданного врача"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Врач с таким именем или email уже существует"
// @Security ApiKeyAuth
// @Router /doctors [post]
func (h *Handler) createDoctor(c *gin.Context) {
	var req domain.CreateDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Doctor.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorExists) {
			conflictResponse(c, err.Error())
			return
		}
		h.logger.Error("ошибка создания врача", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить врача
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param input body domain.UpdateDoctorDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /doctors/{id} [put]
func (h *Handler) updateDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Doctor.Update(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, repository.ErrDoctorExists) {
			conflictResponse(c, err.Error())
			return
		}
		h.logger.Error("ошибка обновления врача", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "врач обновлен")
}

// @Summary Удалить врача
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /doctors/{id} [delete]
func (h *Handler) deleteDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Doctor.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления врача", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "врач удален")
}

// @Summary Загрузить фото врача
// @Tags Врачи
// @Accept mpfd
// @Produce json
// @Param id path int true "ID врача"
// @Param photo formData file true "Файл изображения"
// @Success 200 {object} messageResponseType "Сообщение об успешной загрузке"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /doctors/{id}/photo [post]
func (h *Handler) uploadDoctorPhoto(c *gin.Context) {
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

	if err := h.services.Doctor.UploadPhoto(c.Request.Context(), id, data, filename); err != nil {
		h.logger.Error("ошибка загрузки фото врача", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "фото загружено")
}

// @Summary Удалить фото врача
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /doctors/{id}/photo [delete]
func (h *Handler) deleteDoctorPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Doctor.DeletePhoto(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления фото врача", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "фото удалено")
}
