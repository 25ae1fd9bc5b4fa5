package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	studentdomain "github.com/turmapay/turmapay/internal/student/domain"
)

func (s *Server) ListStudents(c *gin.Context) {
	resp, err := s.studentSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateStudent(c *gin.Context) {
	var req studentdomain.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.studentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) GetStudentByID(c *gin.Context) {
	item, err := s.studentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// EnsureBillingCustomer resolves (creating if needed) the provider
// customer for a student.
func (s *Server) EnsureBillingCustomer(c *gin.Context) {
	customerID, err := s.billingSvc.EnsureCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asaas_customer_id": customerID})
}
