package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	schoolclassdomain "github.com/turmapay/turmapay/internal/schoolclass/domain"
)

func (s *Server) ListClasses(c *gin.Context) {
	resp, err := s.classSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateClass(c *gin.Context) {
	var req schoolclassdomain.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.classSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) GetClassByID(c *gin.Context) {
	item, err := s.classSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
