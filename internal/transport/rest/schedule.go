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

// @Summary Список расписаний
// @Tags Расписания
// @Produce json
// @Param doctor_id query int false "Фильтр по врачу"
// @Param day_of_week query int false "Фильтр по дню недели (0 — понедельник)"
// @Param is_working query bool false "Фильтр по рабочим дням"
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} paginatedResponse "Список расписаний"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /schedules [get]
func (h *Handler) getSchedules(c *gin.Context) {
	page, pageSize := pageParams(c)

	filter := domain.ScheduleFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	if doctorIDStr := c.Query("doctor_id"); doctorIDStr != "" {
		doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат doctor_id")
			return
		}
		filter.DoctorID = &doctorID
	}
	if dayStr := c.Query("day_of_week"); dayStr != "" {
		day, err := strconv.Atoi(dayStr)
		if err != nil || day < 0 || day > 6 {
			badRequestResponse(c, "неверный формат day_of_week")
			return
		}
		weekday := domain.Weekday(day)
		filter.DayOfWeek = &weekday
	}
	if isWorkingStr := c.Query("is_working"); isWorkingStr != "" {
		isWorking := isWorkingStr == "true"
		filter.IsWorking = &isWorking
	}

	schedules, total, err := h.services.Schedule.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения списка расписаний", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, schedules, total, page, pageSize)
}

// @Summary Расписание по ID
// @Tags Расписания
// @Produce json
// @Param id path int true "ID расписания"
// @Success 200 {object} domain.Schedule "Данные расписания"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Router /schedules/{id} [get]
func (h *Handler) getScheduleByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	schedule, err := h.services.Schedule.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "расписание не найдено")
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Создать расписание
// @Description Заводит расписание врача на день недели. На пару (врач, день) допускается одна строка
// @Tags Расписания
// @Accept json
// @Produce json
// @Param input body domain.CreateScheduleDTO true "Данные расписания"
// @Success 201 {object} map[string]interface{} "ID созданного расписания"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Расписание на этот день уже существует"
// @Security ApiKeyAuth
// @Router /schedules [post]
func (h *Handler) createSchedule(c *gin.Context) {
	var req domain.CreateScheduleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Schedule.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleExists) {
			conflictResponse(c, err.Error())
			return
		}
		h.logger.Error("ошибка создания расписания", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить расписание
// @Tags Расписания
// @Accept json
// @Produce json
// @Param id path int true "ID расписания"
// @Param input body domain.UpdateScheduleDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /schedules/{id} [put]
func (h *Handler) updateSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateScheduleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Schedule.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка обновления расписания", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "расписание обновлено")
}

// @Summary Удалить расписание
// @Tags Расписания
// @Produce json
// @Param id path int true "ID расписания"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /schedules/{id} [delete]
func (h *Handler) deleteSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Schedule.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления расписания", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "расписание удалено")
}
