package service

import (
	"context"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"
)

// In-memory repository doubles shared by the service tests.

type fakeStatusRow struct {
	row    *entity.UpcomingAppointment
	status entity.AppointmentStatus
}

type fakeAppointmentRepo struct {
	rows        []fakeStatusRow
	byID        map[int64]*entity.Appointment
	statuses    map[int64]entity.AppointmentStatus
	lastFrom    time.Time
	lastTo      time.Time
	upcomingErr error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		byID:     make(map[int64]*entity.Appointment),
		statuses: make(map[int64]entity.AppointmentStatus),
	}
}

func (f *fakeAppointmentRepo) addUpcoming(row *entity.UpcomingAppointment, status entity.AppointmentStatus) {
	f.rows = append(f.rows, fakeStatusRow{row: row, status: status})
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	a.ID = int64(len(f.byID) + 1)
	a.Status = entity.AppointmentStatusScheduled
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, entity.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetByPatient(ctx context.Context, patientID int64) ([]*entity.AppointmentDetails, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) GetByDoctor(ctx context.Context, doctorID int64) ([]*entity.AppointmentDetails, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status entity.AppointmentStatus) error {
	a, ok := f.byID[id]
	if !ok {
		return entity.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

// GetUpcoming mirrors the production query: SCHEDULED only, slot date inside
// the window.
func (f *fakeAppointmentRepo) GetUpcoming(ctx context.Context, from, to time.Time) ([]*entity.UpcomingAppointment, error) {
	if f.upcomingErr != nil {
		return nil, f.upcomingErr
	}
	f.lastFrom, f.lastTo = from, to

	var matched []*entity.UpcomingAppointment
	for _, r := range f.rows {
		if r.status != entity.AppointmentStatusScheduled {
			continue
		}
		if r.row.SlotDate.Before(from) || r.row.SlotDate.After(to) {
			continue
		}
		matched = append(matched, r.row)
	}
	return matched, nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
	nextID        int64
	createErrFor  map[int64]error // keyed by user id
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{createErrFor: make(map[int64]error)}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if err := f.createErrFor[n.UserID]; err != nil {
		return err
	}
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	copied := *n
	f.notifications = append(f.notifications, &copied)
	return nil
}

func (f *fakeNotificationRepo) GetByUser(ctx context.Context, userID int64, limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for i := len(f.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if f.notifications[i].UserID == userID {
			out = append(out, f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnreadByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID int64) error {
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return entity.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id, userID int64) error {
	for i, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return entity.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) GetStats(ctx context.Context) (*entity.NotificationStats, error) {
	stats := &entity.NotificationStats{}
	for _, n := range f.notifications {
		stats.Total++
		if !n.IsRead {
			stats.Unread++
		}
		if n.Type == entity.NotificationTypeReminder {
			stats.Reminders++
		}
	}
	return stats, nil
}

func (f *fakeNotificationRepo) ofUser(userID int64) []*entity.Notification {
	var out []*entity.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeLocker struct {
	held     bool
	acquires int
	releases int
}

func (f *fakeLocker) Acquire(ctx context.Context) (bool, error) {
	f.acquires++
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLocker) Release(ctx context.Context) error {
	f.releases++
	f.held = false
	return nil
}

type fakeCache struct {
	values      map[int64]int64
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[int64]int64)}
}

func (f *fakeCache) GetUnread(ctx context.Context, userID int64) (int64, bool) {
	v, ok := f.values[userID]
	return v, ok
}

func (f *fakeCache) SetUnread(ctx context.Context, userID, count int64) error {
	f.values[userID] = count
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, userID int64) error {
	f.invalidated++
	delete(f.values, userID)
	return nil
}

type fakeSlotRepo struct {
	slots map[int64]*entity.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[int64]*entity.Slot)}
}

func (f *fakeSlotRepo) Create(ctx context.Context, s *entity.Slot) error {
	s.ID = int64(len(f.slots) + 1)
	f.slots[s.ID] = s
	return nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*entity.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, entity.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSlotRepo) GetAvailable(ctx context.Context) ([]*entity.Slot, error) {
	var out []*entity.Slot
	for _, s := range f.slots {
		if s.IsAvailable {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) GetByDoctor(ctx context.Context, doctorID int64) ([]*entity.Slot, error) {
	var out []*entity.Slot
	for _, s := range f.slots {
		if s.DoctorID == doctorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) SetAvailability(ctx context.Context, id int64, available bool) error {
	s, ok := f.slots[id]
	if !ok {
		return entity.ErrSlotNotFound
	}
	s.IsAvailable = available
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id int64) error {
	s, ok := f.slots[id]
	if !ok {
		return entity.ErrSlotNotFound
	}
	if !s.IsAvailable {
		return entity.ErrSlotBooked
	}
	delete(f.slots, id)
	return nil
}

type fakePatientRepo struct {
	patients map[int64]*entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[int64]*entity.Patient)}
}

func (f *fakePatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	p.ID = int64(len(f.patients) + 1)
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id int64) (*entity.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, entity.ErrPatientNotFound
	}
	return p, nil
}

func (f *fakePatientRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Patient, error) {
	for _, p := range f.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, entity.ErrPatientNotFound
}

func (f *fakePatientRepo) GetAll(ctx context.Context) ([]*entity.Patient, error) {
	var out []*entity.Patient
	for _, p := range f.patients {
		out = append(out, p)
	}
	return out, nil
}

type fakeDoctorRepo struct {
	doctors map[int64]*entity.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[int64]*entity.Doctor)}
}

func (f *fakeDoctorRepo) Create(ctx context.Context, d *entity.Doctor) error {
	d.ID = int64(len(f.doctors) + 1)
	f.doctors[d.ID] = d
	return nil
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id int64) (*entity.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, entity.ErrDoctorNotFound
	}
	return d, nil
}

func (f *fakeDoctorRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Doctor, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, entity.ErrDoctorNotFound
}

func (f *fakeDoctorRepo) GetAll(ctx context.Context) ([]*entity.Doctor, error) {
	var out []*entity.Doctor
	for _, d := range f.doctors {
		out = append(out, d)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return entity.ErrUserAlreadyExists
		}
	}
	u.ID = int64(len(f.users) + 1)
	u.IsActive = true
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return entity.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return entity.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}
