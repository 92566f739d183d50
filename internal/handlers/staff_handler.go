package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/services"
)

func ListStaff(s *services.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		staff, err := s.ListStaff(c.Request.Context(), c.Query("role"))
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, staff)
	}
}

func CreateStaff(s *services.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateStaffRequest
		if !bindJSON(c, &req) {
			return
		}
		member, err := s.CreateStaff(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		created(c, "staff_id", member.ID, "Staff member created successfully")
	}
}

func UpdateStaff(s *services.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "staff id")
		if !valid {
			return
		}
		var req models.UpdateStaffRequest
		if !bindJSON(c, &req) {
			return
		}
		member, err := s.UpdateStaff(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, member)
	}
}

func ChangeStaffStatus(s *services.StaffService) gin.HandlerFunc {
	return statusHandler("staff id", s.ChangeStatus)
}

func StaffOnShift(s *services.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		staff, err := s.OnShift(c.Request.Context(), c.Query("at"))
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, staff)
	}
}
