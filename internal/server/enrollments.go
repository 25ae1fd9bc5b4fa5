package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	enrollmentdomain "github.com/turmapay/turmapay/internal/enrollment/domain"
)

func (s *Server) CreateEnrollment(c *gin.Context) {
	var req enrollmentdomain.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.enrollmentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) GetEnrollmentByID(c *gin.Context) {
	item, err := s.enrollmentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
