package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medcenter/internal/domain"
)

// @Summary Создать медицинскую запись
// @Description Добавляет запись в историю болезни пациента
// @Tags Медицинские записи
// @Accept json
// @Produce json
// @Param input body domain.CreateMedicalRecordDTO true "Данные медицинской записи"
// @Success 201 {object} map[string]interface{} "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /medical-records [post]
func (h *Handler) createMedicalRecord(c *gin.Context) {
	var req domain.CreateMedicalRecordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.MedicalRecord.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка создания медицинской записи", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Список медицинских записей
// @Tags Медицинские записи
// @Produce json
// @Param patient_id query int false "Фильтр по пациенту"
// @Param doctor_id query int false "Фильтр по врачу"
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} paginatedResponse "Список медицинских записей"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /medical-records [get]
func (h *Handler) getMedicalRecords(c *gin.Context) {
	page, pageSize := pageParams(c)

	filter := domain.MedicalRecordFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	if patientIDStr := c.Query("patient_id"); patientIDStr != "" {
		patientID, err := strconv.ParseInt(patientIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат patient_id")
			return
		}
		filter.PatientID = &patientID
	}
	if doctorIDStr := c.Query("doctor_id"); doctorIDStr != "" {
		doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат doctor_id")
			return
		}
		filter.DoctorID = &doctorID
	}

	records, total, err := h.services.MedicalRecord.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения списка медицинских записей", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, records, total, page, pageSize)
}

// @Summary Медицинская запись по ID
// @Tags Медицинские записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.MedicalRecord "Данные медицинской записи"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /medical-records/{id} [get]
func (h *Handler) getMedicalRecordByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	record, err := h.services.MedicalRecord.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "медицинская запись не найдена")
		return
	}

	successResponse(c, http.StatusOK, record)
}

// @Summary Обновить медицинскую запись
// @Tags Медицинские записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateMedicalRecordDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /medical-records/{id} [put]
func (h *Handler) updateMedicalRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateMedicalRecordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.MedicalRecord.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка обновления медицинской записи", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "медицинская запись обновлена")
}

// @Summary Удалить медицинскую запись
// @Tags Медицинские записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /medical-records/{id} [delete]
func (h *Handler) deleteMedicalRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.MedicalRecord.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления медицинской записи", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "медицинская запись удалена")
}
