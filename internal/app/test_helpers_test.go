package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	coremember "github.com/Elsie-Muhumuza/kambari/internal/core/member"
	coreseries "github.com/Elsie-Muhumuza/kambari/internal/core/series"
	coresession "github.com/Elsie-Muhumuza/kambari/internal/core/session"
	"github.com/Elsie-Muhumuza/kambari/internal/core/studyguide"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockMemberRepository implements secondary.MemberRepository for testing.
type mockMemberRepository struct {
	members     map[string]*secondary.MemberRecord
	unavailable map[string]map[string]bool // member ID -> date -> marked unavailable
	createErr   error
	getErr      error
	listErr     error
	replaceErr  error
}

func newMockMemberRepository() *mockMemberRepository {
	return &mockMemberRepository{
		members:     make(map[string]*secondary.MemberRecord),
		unavailable: make(map[string]map[string]bool),
	}
}

func (m *mockMemberRepository) Create(ctx context.Context, member *secondary.MemberRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.members[member.ID] = member
	return nil
}

func (m *mockMemberRepository) GetByID(ctx context.Context, id string) (*secondary.MemberRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, errors.New("member not found")
}

func (m *mockMemberRepository) List(ctx context.Context, filters secondary.MemberFilters) ([]*secondary.MemberRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.MemberRecord
	for _, member := range m.members {
		if filters.ActiveOnly && !member.Active {
			continue
		}
		if filters.Role != "" && !hasRole(member.Roles, filters.Role) {
			continue
		}
		result = append(result, member)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockMemberRepository) SetActive(ctx context.Context, id string, active bool) error {
	member, ok := m.members[id]
	if !ok {
		return errors.New("member not found")
	}
	member.Active = active
	return nil
}

func (m *mockMemberRepository) ReplaceRoles(ctx context.Context, id string, roles []string) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	member, ok := m.members[id]
	if !ok {
		return errors.New("member not found")
	}
	member.Roles = roles
	return nil
}

func (m *mockMemberRepository) ListEligible(ctx context.Context, role string, date string) ([]*secondary.MemberRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.MemberRecord
	for _, member := range m.members {
		if !member.Active || !hasRole(member.Roles, role) {
			continue
		}
		if m.unavailable[member.ID][date] {
			continue
		}
		result = append(result, member)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockMemberRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	for _, member := range m.members {
		if member.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMemberRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, member := range m.members {
		if member.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMemberRepository) GetNextID(ctx context.Context) (string, error) {
	return coremember.GenerateMemberID(len(m.members)), nil
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// markUnavailable flags a member as unavailable on a date for
// ListEligible.
func (m *mockMemberRepository) markUnavailable(memberID, date string) {
	if m.unavailable[memberID] == nil {
		m.unavailable[memberID] = make(map[string]bool)
	}
	m.unavailable[memberID][date] = true
}

// mockAvailabilityRepository implements secondary.AvailabilityRepository for testing.
type mockAvailabilityRepository struct {
	records map[string]*secondary.AvailabilityRecord // member ID + "|" + date
	setErr  error
}

func newMockAvailabilityRepository() *mockAvailabilityRepository {
	return &mockAvailabilityRepository{
		records: make(map[string]*secondary.AvailabilityRecord),
	}
}

func (m *mockAvailabilityRepository) Set(ctx context.Context, record *secondary.AvailabilityRecord) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.records[record.MemberID+"|"+record.Date] = record
	return nil
}

func (m *mockAvailabilityRepository) ListForMember(ctx context.Context, memberID string, from string) ([]*secondary.AvailabilityRecord, error) {
	var result []*secondary.AvailabilityRecord
	for _, record := range m.records {
		if record.MemberID == memberID && record.Date >= from {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (m *mockAvailabilityRepository) ListForDate(ctx context.Context, date string) ([]*secondary.AvailabilityRecord, error) {
	var result []*secondary.AvailabilityRecord
	for _, record := range m.records {
		if record.Date == date {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MemberID < result[j].MemberID })
	return result, nil
}

// mockSessionRepository implements secondary.SessionRepository for testing.
type mockSessionRepository struct {
	sessions  map[string]*secondary.SessionRecord
	createErr error
	getErr    error
	updateErr error
	listErr   error
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{
		sessions: make(map[string]*secondary.SessionRecord),
	}
}

func (m *mockSessionRepository) Create(ctx context.Context, session *secondary.SessionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*secondary.SessionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if session, ok := m.sessions[id]; ok {
		return session, nil
	}
	return nil, fmt.Errorf("session not found: %s", id)
}

func (m *mockSessionRepository) GetByDate(ctx context.Context, date string) (*secondary.SessionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, session := range m.sessions {
		if session.Date == date {
			return session, nil
		}
	}
	return nil, fmt.Errorf("no session on %s", date)
}

func (m *mockSessionRepository) ExistsOnDate(ctx context.Context, date string) (bool, error) {
	for _, session := range m.sessions {
		if session.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSessionRepository) List(ctx context.Context, filters secondary.SessionFilters) ([]*secondary.SessionRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.SessionRecord
	for _, session := range m.sessions {
		if filters.Status != "" && session.Status != filters.Status {
			continue
		}
		if filters.From != "" && session.Date < filters.From {
			continue
		}
		if filters.To != "" && session.Date > filters.To {
			continue
		}
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockSessionRepository) Update(ctx context.Context, session *secondary.SessionRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.sessions[session.ID]; !ok {
		return errors.New("session not found")
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepository) GetNextID(ctx context.Context) (string, error) {
	return coresession.GenerateSessionID(len(m.sessions)), nil
}

// mockAssignmentRepository implements secondary.AssignmentRepository for testing.
type mockAssignmentRepository struct {
	assignments map[string][]*secondary.AssignmentRecord
	history     []*secondary.SessionHoldersRecord
	saveErr     error
	listErr     error
}

func newMockAssignmentRepository() *mockAssignmentRepository {
	return &mockAssignmentRepository{
		assignments: make(map[string][]*secondary.AssignmentRecord),
	}
}

func (m *mockAssignmentRepository) SaveSession(ctx context.Context, sessionID string, assignments []*secondary.AssignmentRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.assignments[sessionID] = assignments
	return nil
}

func (m *mockAssignmentRepository) ListBySession(ctx context.Context, sessionID string) ([]*secondary.AssignmentRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := append([]*secondary.AssignmentRecord{}, m.assignments[sessionID]...)
	sort.Slice(result, func(i, j int) bool { return result[i].Role < result[j].Role })
	return result, nil
}

func (m *mockAssignmentRepository) ListByMember(ctx context.Context, memberID string, limit int) ([]*secondary.AssignmentRecord, error) {
	var result []*secondary.AssignmentRecord
	for _, assignments := range m.assignments {
		for _, a := range assignments {
			if a.MemberID == memberID {
				result = append(result, a)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SessionDate > result[j].SessionDate })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockAssignmentRepository) ListForDateRange(ctx context.Context, from, to string) ([]*secondary.AssignmentRecord, error) {
	var result []*secondary.AssignmentRecord
	for _, assignments := range m.assignments {
		for _, a := range assignments {
			if a.SessionDate >= from && a.SessionDate <= to {
				result = append(result, a)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SessionDate != result[j].SessionDate {
			return result[i].SessionDate < result[j].SessionDate
		}
		return result[i].Role < result[j].Role
	})
	return result, nil
}

func (m *mockAssignmentRepository) History(ctx context.Context, before string, limit int) ([]*secondary.SessionHoldersRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.SessionHoldersRecord
	for _, record := range m.history {
		if record.Date < before {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result, nil
}

// mockAttendanceRepository implements secondary.AttendanceRepository for testing.
type mockAttendanceRepository struct {
	records   map[string][]*secondary.AttendanceRecord
	sessions  *mockSessionRepository // completion target for RecordAndComplete
	recordErr error
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{
		records: make(map[string][]*secondary.AttendanceRecord),
	}
}

func (m *mockAttendanceRepository) RecordAndComplete(ctx context.Context, sessionID string, records []*secondary.AttendanceRecord, completedAt string) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records[sessionID] = records
	if m.sessions != nil {
		if session, ok := m.sessions.sessions[sessionID]; ok {
			session.Status = "completed"
			session.CompletedAt = completedAt
		}
	}
	return nil
}

func (m *mockAttendanceRepository) ListBySession(ctx context.Context, sessionID string) ([]*secondary.AttendanceRecord, error) {
	result := append([]*secondary.AttendanceRecord{}, m.records[sessionID]...)
	sort.Slice(result, func(i, j int) bool { return result[i].MemberID < result[j].MemberID })
	return result, nil
}

func (m *mockAttendanceRepository) ListForDateRange(ctx context.Context, from, to string) ([]*secondary.AttendanceRecord, error) {
	var result []*secondary.AttendanceRecord
	for _, records := range m.records {
		for _, r := range records {
			if r.SessionDate >= from && r.SessionDate <= to {
				result = append(result, r)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SessionDate != result[j].SessionDate {
			return result[i].SessionDate < result[j].SessionDate
		}
		return result[i].MemberID < result[j].MemberID
	})
	return result, nil
}

func (m *mockAttendanceRepository) CountForMember(ctx context.Context, memberID string) (int, error) {
	count := 0
	for _, records := range m.records {
		for _, r := range records {
			if r.MemberID == memberID && r.Present {
				count++
			}
		}
	}
	return count, nil
}

// mockSeriesRepository implements secondary.SeriesRepository for testing.
type mockSeriesRepository struct {
	series    map[string]*secondary.SeriesRecord
	passages  *mockPassageRepository // layout targets for CreateLayout
	sessions  *mockSessionRepository
	createErr error
}

func newMockSeriesRepository() *mockSeriesRepository {
	return &mockSeriesRepository{
		series: make(map[string]*secondary.SeriesRecord),
	}
}

func (m *mockSeriesRepository) Create(ctx context.Context, series *secondary.SeriesRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.series[series.ID] = series
	return nil
}

func (m *mockSeriesRepository) CreateLayout(ctx context.Context, series *secondary.SeriesRecord, passages []*secondary.PassageRecord) (*secondary.SeriesLayoutResult, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.series[series.ID] = series
	result := &secondary.SeriesLayoutResult{}
	for _, passage := range passages {
		passage.ID = coreseries.GeneratePassageID(len(m.passages.passages))
		m.passages.passages[passage.ID] = passage

		var existing *secondary.SessionRecord
		for _, session := range m.sessions.sessions {
			if session.Date == passage.Date {
				existing = session
				break
			}
		}
		switch {
		case existing == nil:
			id := coresession.GenerateSessionID(len(m.sessions.sessions))
			m.sessions.sessions[id] = &secondary.SessionRecord{
				ID: id, Date: passage.Date, PassageID: passage.ID, Status: "planned",
			}
			result.SessionsCreated++
		case existing.PassageID == "":
			existing.PassageID = passage.ID
			result.LinkedDates = append(result.LinkedDates, passage.Date)
		default:
			result.SkippedDates = append(result.SkippedDates, passage.Date)
		}
	}
	return result, nil
}

func (m *mockSeriesRepository) GetByID(ctx context.Context, id string) (*secondary.SeriesRecord, error) {
	if series, ok := m.series[id]; ok {
		return series, nil
	}
	return nil, fmt.Errorf("series not found: %s", id)
}

func (m *mockSeriesRepository) List(ctx context.Context, filters secondary.SeriesFilters) ([]*secondary.SeriesRecord, error) {
	var result []*secondary.SeriesRecord
	for _, series := range m.series {
		if filters.Status != "" && series.Status != filters.Status {
			continue
		}
		result = append(result, series)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate < result[j].StartDate })
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockSeriesRepository) GetNextID(ctx context.Context) (string, error) {
	return coreseries.GenerateSeriesID(len(m.series)), nil
}

// mockPassageRepository implements secondary.PassageRepository for testing.
type mockPassageRepository struct {
	passages  map[string]*secondary.PassageRecord
	createErr error
}

func newMockPassageRepository() *mockPassageRepository {
	return &mockPassageRepository{
		passages: make(map[string]*secondary.PassageRecord),
	}
}

func (m *mockPassageRepository) Create(ctx context.Context, passage *secondary.PassageRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.passages[passage.ID] = passage
	return nil
}

func (m *mockPassageRepository) GetByID(ctx context.Context, id string) (*secondary.PassageRecord, error) {
	if passage, ok := m.passages[id]; ok {
		return passage, nil
	}
	return nil, fmt.Errorf("passage not found: %s", id)
}

func (m *mockPassageRepository) GetByDate(ctx context.Context, date string) (*secondary.PassageRecord, error) {
	for _, passage := range m.passages {
		if passage.Date == date {
			return passage, nil
		}
	}
	return nil, fmt.Errorf("no passage on %s", date)
}

func (m *mockPassageRepository) ListBySeries(ctx context.Context, seriesID string) ([]*secondary.PassageRecord, error) {
	var result []*secondary.PassageRecord
	for _, passage := range m.passages {
		if passage.SeriesID == seriesID {
			result = append(result, passage)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (m *mockPassageRepository) NextAfter(ctx context.Context, date string) (*secondary.PassageRecord, error) {
	var next *secondary.PassageRecord
	for _, passage := range m.passages {
		if passage.Date <= date {
			continue
		}
		if next == nil || passage.Date < next.Date {
			next = passage
		}
	}
	if next == nil {
		return nil, fmt.Errorf("no passage after %s", date)
	}
	return next, nil
}

func (m *mockPassageRepository) GetNextID(ctx context.Context) (string, error) {
	return coreseries.GeneratePassageID(len(m.passages)), nil
}

// mockMaterialRepository implements secondary.MaterialRepository for testing.
type mockMaterialRepository struct {
	materials map[string]*secondary.MaterialRecord // keyed by passage ID
	createErr error
}

func newMockMaterialRepository() *mockMaterialRepository {
	return &mockMaterialRepository{
		materials: make(map[string]*secondary.MaterialRecord),
	}
}

func (m *mockMaterialRepository) Create(ctx context.Context, material *secondary.MaterialRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.materials[material.PassageID]; ok {
		return errors.New("material already exists for passage")
	}
	m.materials[material.PassageID] = material
	return nil
}

func (m *mockMaterialRepository) Replace(ctx context.Context, material *secondary.MaterialRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if existing, ok := m.materials[material.PassageID]; ok {
		material.ID = existing.ID
	}
	m.materials[material.PassageID] = material
	return nil
}

func (m *mockMaterialRepository) GetByPassage(ctx context.Context, passageID string) (*secondary.MaterialRecord, error) {
	if material, ok := m.materials[passageID]; ok {
		return material, nil
	}
	return nil, fmt.Errorf("no material for passage %s", passageID)
}

func (m *mockMaterialRepository) ExistsForPassage(ctx context.Context, passageID string) (bool, error) {
	_, ok := m.materials[passageID]
	return ok, nil
}

func (m *mockMaterialRepository) ListBySeries(ctx context.Context, seriesID string) ([]*secondary.MaterialRecord, error) {
	var result []*secondary.MaterialRecord
	for _, material := range m.materials {
		result = append(result, material)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PassageID < result[j].PassageID })
	return result, nil
}

func (m *mockMaterialRepository) GetNextID(ctx context.Context) (string, error) {
	return studyguide.GenerateMaterialID(len(m.materials)), nil
}

// mockThemePackProvider implements secondary.ThemePackProvider for testing.
type mockThemePackProvider struct {
	packs   map[string][]secondary.ThemePassage
	loadErr error
}

func newMockThemePackProvider() *mockThemePackProvider {
	return &mockThemePackProvider{
		packs: make(map[string][]secondary.ThemePassage),
	}
}

func (m *mockThemePackProvider) LoadPack(ctx context.Context, theme string) ([]secondary.ThemePassage, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if pack, ok := m.packs[theme]; ok {
		return pack, nil
	}
	return nil, fmt.Errorf("unknown theme: %s", theme)
}

func (m *mockThemePackProvider) KnownThemes(ctx context.Context) ([]string, error) {
	var themes []string
	for theme := range m.packs {
		themes = append(themes, theme)
	}
	sort.Strings(themes)
	return themes, nil
}

func (m *mockThemePackProvider) EnsureDefaults(ctx context.Context) error {
	return nil
}

// mockTextGenerator implements secondary.TextGenerator for testing.
type mockTextGenerator struct {
	response string
	err      error
	prompts  []string
}

func (m *mockTextGenerator) Invoke(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// mockGuideStore implements secondary.GuideStore for testing.
type mockGuideStore struct {
	files    map[string][]byte
	writeErr error
}

func newMockGuideStore() *mockGuideStore {
	return &mockGuideStore{files: make(map[string][]byte)}
}

func (m *mockGuideStore) WriteGuide(ctx context.Context, fileName string, content []byte) (string, error) {
	if m.writeErr != nil {
		return "", m.writeErr
	}
	m.files[fileName] = content
	return "/tmp/guides/" + fileName, nil
}

// mockMinutesWriter implements secondary.MinutesWriter for testing.
type mockMinutesWriter struct {
	files    map[string][]byte
	writeErr error
}

func newMockMinutesWriter() *mockMinutesWriter {
	return &mockMinutesWriter{files: make(map[string][]byte)}
}

func (m *mockMinutesWriter) WriteMinutes(ctx context.Context, fileName string, content []byte) (string, error) {
	if m.writeErr != nil {
		return "", m.writeErr
	}
	m.files[fileName] = content
	return "/tmp/minutes/" + fileName, nil
}

// mockMessageSender implements secondary.MessageSender for testing.
type mockMessageSender struct {
	sent    []*secondary.ReminderMessage
	sendErr error
	failFor map[string]error // member ID -> per-recipient failure
}

func newMockMessageSender() *mockMessageSender {
	return &mockMessageSender{failFor: make(map[string]error)}
}

func (m *mockMessageSender) Send(ctx context.Context, msg *secondary.ReminderMessage) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	if err, ok := m.failFor[msg.MemberID]; ok {
		return err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// ============================================================================
// Seed Helpers
// ============================================================================

// seedTestMember stores a ready-made active member record.
func seedTestMember(repo *mockMemberRepository, id, name string, roles ...string) *secondary.MemberRecord {
	if len(roles) == 0 {
		roles = []string{"prayer_lead", "scripture_reader", "sharing_lead"}
	}
	record := &secondary.MemberRecord{
		ID:       id,
		Name:     name,
		Phone:    "07120000" + id[len(id)-2:],
		Active:   true,
		JoinedAt: "2026-01-01",
		Roles:    roles,
	}
	repo.members[id] = record
	return record
}

// seedTestSession stores a ready-made planned session record.
func seedTestSession(repo *mockSessionRepository, id, date string) *secondary.SessionRecord {
	record := &secondary.SessionRecord{
		ID:     id,
		Date:   date,
		Status: "planned",
	}
	repo.sessions[id] = record
	return record
}
