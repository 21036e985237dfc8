package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/events"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/identity"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/model"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/policy"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/repository"
	pkgerrors "github.com/kiiD-511/gv-security-shift-mgmt-v2/pkg/errors"
)

// ── Mock SiteRepository ──

type mockSiteRepo struct {
	sites     map[string]*model.Site
	idCounter int
}

func newMockSiteRepo() *mockSiteRepo {
	return &mockSiteRepo{sites: make(map[string]*model.Site)}
}

func (m *mockSiteRepo) Create(_ context.Context, site *model.Site) error {
	if site.SiteID == "" {
		m.idCounter++
		site.SiteID = fmt.Sprintf("site-%d", m.idCounter)
	}
	m.sites[site.SiteID] = site
	return nil
}

func (m *mockSiteRepo) GetByID(_ context.Context, id string) (*model.Site, error) {
	if s, ok := m.sites[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSiteRepo) GetByName(_ context.Context, name string) (*model.Site, error) {
	for _, s := range m.sites {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSiteRepo) List(_ context.Context, offset, limit int) ([]model.Site, int64, error) {
	var result []model.Site
	for _, s := range m.sites {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockSiteRepo) Update(_ context.Context, site *model.Site) error {
	m.sites[site.SiteID] = site
	return nil
}

func (m *mockSiteRepo) Delete(_ context.Context, id string) error {
	delete(m.sites, id)
	return nil
}

func (m *mockSiteRepo) SetSupervisors(_ context.Context, site *model.Site, supervisorIDs []string) error {
	supervisors := make([]model.UserProfile, 0, len(supervisorIDs))
	for _, id := range supervisorIDs {
		supervisors = append(supervisors, model.UserProfile{UserID: id})
	}
	site.Supervisors = supervisors
	m.sites[site.SiteID] = site
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users          map[string]*model.UserProfile
	idCounter      int
	createErr      error
	updateErr      error
	createdCnt     int
	getByUIDMisses int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.UserProfile)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.UserProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.UserID == "" {
		m.idCounter++
		user.UserID = fmt.Sprintf("user-%d", m.idCounter)
	}
	m.users[user.UserID] = user
	m.createdCnt++
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.UserProfile, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUID(_ context.Context, uid string) (*model.UserProfile, error) {
	if m.getByUIDMisses > 0 {
		m.getByUIDMisses--
		return nil, gorm.ErrRecordNotFound
	}
	for _, u := range m.users {
		if u.UID == uid {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.UserProfile, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.UserProfile, int64, error) {
	var result []model.UserProfile
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.UserProfile) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) SetSupervisedSites(_ context.Context, user *model.UserProfile, siteIDs []string) error {
	sites := make([]model.Site, 0, len(siteIDs))
	for _, id := range siteIDs {
		sites = append(sites, model.Site{SiteID: id})
	}
	user.SupervisedSites = sites
	m.users[user.UserID] = user
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts    map[string]*model.WorkShift
	idCounter int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.WorkShift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.WorkShift) error {
	if shift.ShiftID == "" {
		m.idCounter++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.idCounter)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.WorkShift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(_ context.Context, scope policy.Scope, offset, limit int) ([]model.WorkShift, int64, error) {
	var result []model.WorkShift
	for _, s := range m.shifts {
		assignedTo := ""
		if s.AssignedUserID != nil {
			assignedTo = *s.AssignedUserID
		}
		if !scope.CoversRecord(assignedTo, s.SiteID) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.After(result[j].StartTime) })
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.WorkShift) error {
	if _, ok := m.shifts[shift.ShiftID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string) error {
	delete(m.shifts, id)
	return nil
}

// ── Mock AttendanceRepository ──

// 持有班次 mock 用于解析记录经班次关联的站点（对应实现中的 JOIN）
type mockAttendanceRepo struct {
	records   map[string]*model.AttendanceRecord
	shifts    *mockShiftRepo
	idCounter int
	createErr error
}

func newMockAttendanceRepo(shifts *mockShiftRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records: make(map[string]*model.AttendanceRecord),
		shifts:  shifts,
	}
}

func (m *mockAttendanceRepo) siteOf(rec *model.AttendanceRecord) *string {
	if s, ok := m.shifts.shifts[rec.ShiftID]; ok {
		return s.SiteID
	}
	return nil
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if record.RecordID == "" {
		m.idCounter++
		record.RecordID = fmt.Sprintf("rec-%d", m.idCounter)
	}
	m.records[record.RecordID] = record
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.AttendanceRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	if s, ok := m.shifts.shifts[rec.ShiftID]; ok {
		cp.Shift = s
	}
	return &cp, nil
}

func (m *mockAttendanceRepo) List(_ context.Context, scope policy.Scope, offset, limit int) ([]model.AttendanceRecord, int64, error) {
	var result []model.AttendanceRecord
	for _, rec := range m.records {
		if !scope.CoversRecord(rec.UserID, m.siteOf(rec)) {
			continue
		}
		result = append(result, *rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CheckInTime.After(result[j].CheckInTime) })
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockAttendanceRepo) FindOpen(_ context.Context, shiftID, userID string) (*model.AttendanceRecord, error) {
	var latest *model.AttendanceRecord
	for _, rec := range m.records {
		if rec.ShiftID != shiftID || rec.UserID != userID || rec.CheckOutTime != nil {
			continue
		}
		if latest == nil || rec.CheckInTime.After(latest.CheckInTime) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockAttendanceRepo) HasOpen(_ context.Context, shiftID, userID string) (bool, error) {
	for _, rec := range m.records {
		if rec.ShiftID == shiftID && rec.UserID == userID && rec.CheckOutTime == nil {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAttendanceRepo) UpdateStatus(_ context.Context, id, status string) error {
	rec, ok := m.records[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.Status = status
	return nil
}

func (m *mockAttendanceRepo) CloseOpen(_ context.Context, recordID string, t time.Time, lat, lng *float64) error {
	rec, ok := m.records[recordID]
	if !ok || rec.CheckOutTime != nil {
		return pkgerrors.ErrOptimisticLock
	}
	rec.CheckOutTime = &t
	rec.CheckOutLat = lat
	rec.CheckOutLng = lng
	return nil
}

// ── Mock IncidentRepository ──

type mockIncidentRepo struct {
	incidents map[string]*model.IncidentReport
	shifts    *mockShiftRepo
	idCounter int
}

func newMockIncidentRepo(shifts *mockShiftRepo) *mockIncidentRepo {
	return &mockIncidentRepo{
		incidents: make(map[string]*model.IncidentReport),
		shifts:    shifts,
	}
}

func (m *mockIncidentRepo) siteOf(inc *model.IncidentReport) *string {
	if s, ok := m.shifts.shifts[inc.ShiftID]; ok {
		return s.SiteID
	}
	return nil
}

func (m *mockIncidentRepo) Create(_ context.Context, incident *model.IncidentReport) error {
	if incident.IncidentID == "" {
		m.idCounter++
		incident.IncidentID = fmt.Sprintf("inc-%d", m.idCounter)
	}
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = time.Now()
	}
	m.incidents[incident.IncidentID] = incident
	return nil
}

func (m *mockIncidentRepo) GetByID(_ context.Context, id string) (*model.IncidentReport, error) {
	inc, ok := m.incidents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inc
	if s, ok := m.shifts.shifts[inc.ShiftID]; ok {
		cp.Shift = s
	}
	return &cp, nil
}

func (m *mockIncidentRepo) List(_ context.Context, scope policy.Scope, offset, limit int) ([]model.IncidentReport, int64, error) {
	var result []model.IncidentReport
	for _, inc := range m.incidents {
		if !scope.CoversRecord(inc.UserID, m.siteOf(inc)) {
			continue
		}
		result = append(result, *inc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockIncidentRepo) UpdateStatus(_ context.Context, id, status string) error {
	inc, ok := m.incidents[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inc.Status = status
	return nil
}

func (m *mockIncidentRepo) Delete(_ context.Context, id string) error {
	delete(m.incidents, id)
	return nil
}

// ── Mock identity.Provider ──

type mockProvider struct {
	createUID    string
	createErr    error
	setRoleErr   error
	deleteErr    error
	verifyErr    error
	roleClaims   map[string]string
	deletedUIDs  []string
	createdMails []string
}

func newMockProvider() *mockProvider {
	return &mockProvider{createUID: "fb-uid-001", roleClaims: make(map[string]string)}
}

func (m *mockProvider) VerifyToken(_ context.Context, _ string) (*identity.Token, error) {
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return nil, identity.ErrInvalidToken
}

func (m *mockProvider) CreateUser(_ context.Context, email, _, _ string) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.createdMails = append(m.createdMails, email)
	return m.createUID, nil
}

func (m *mockProvider) SetRoleClaim(_ context.Context, uid, role string) error {
	if m.setRoleErr != nil {
		return m.setRoleErr
	}
	m.roleClaims[uid] = role
	return nil
}

func (m *mockProvider) DeleteUser(_ context.Context, uid string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedUIDs = append(m.deletedUIDs, uid)
	return nil
}

// ── 记录型 events.Publisher ──

type recordingPublisher struct {
	audiences []string
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, audience string, ev events.Event) {
	p.audiences = append(p.audiences, audience)
	p.published = append(p.published, ev)
}

// ── 公共辅助 ──

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func newTestRepository() (*repository.Repository, *mockSiteRepo, *mockUserRepo, *mockShiftRepo, *mockAttendanceRepo, *mockIncidentRepo) {
	siteRepo := newMockSiteRepo()
	userRepo := newMockUserRepo()
	shiftRepo := newMockShiftRepo()
	attRepo := newMockAttendanceRepo(shiftRepo)
	incRepo := newMockIncidentRepo(shiftRepo)
	repo := &repository.Repository{
		Site:       siteRepo,
		User:       userRepo,
		Shift:      shiftRepo,
		Attendance: attRepo,
		Incident:   incRepo,
	}
	return repo, siteRepo, userRepo, shiftRepo, attRepo, incRepo
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }
