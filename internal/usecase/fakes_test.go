package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
)

// In-memory stand-ins for the mongo repositories. They reproduce the
// conditional-write semantics the usecases rely on, guarded by a mutex
// so the concurrency tests exercise real contention.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*model.Account)}
}

func accountKey(role model.Role, email string) string {
	return string(role) + "/" + strings.ToLower(email)
}

func (r *fakeAccountRepo) add(account *model.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account.ID.IsZero() {
		account.ID = bson.NewObjectID()
	}
	r.accounts[accountKey(account.Role, account.Email)] = account
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, role model.Role, email string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[accountKey(role, email)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, role model.Role, id string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Role == role && account.ID.Hex() == id {
			copied := account.Sanitized()
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeAccountRepo) UpdatePasswordHash(_ context.Context, role model.Role, id string, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Role == role && account.ID.Hex() == id {
			account.PasswordHash = hash
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeAccountRepo) digest(role model.Role, email string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[accountKey(role, email)]
	if !ok {
		return ""
	}
	return account.PasswordHash
}

type fakeOTPRepo struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[bson.ObjectID]*model.OTP
}

func newFakeOTPRepo(ttl time.Duration) *fakeOTPRepo {
	return &fakeOTPRepo{ttl: ttl, records: make(map[bson.ObjectID]*model.OTP)}
}

func (r *fakeOTPRepo) Replace(_ context.Context, otp *model.OTP) (*model.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records {
		if rec.Email == otp.Email && rec.Role == otp.Role {
			delete(r.records, id)
		}
	}
	otp.ID = bson.NewObjectID()
	otp.CreatedAt = time.Now()
	otp.UpdatedAt = otp.CreatedAt
	copied := *otp
	r.records[otp.ID] = &copied
	return otp, nil
}

func (r *fakeOTPRepo) FindActive(_ context.Context, email string, role model.Role, code string) (*model.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-r.ttl)
	for _, rec := range r.records {
		if rec.Email == email && rec.Role == role && rec.Code == code && !rec.Verified && rec.CreatedAt.After(cutoff) {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeOTPRepo) Consume(_ context.Context, id bson.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.Verified {
		return false, nil
	}
	rec.Verified = true
	return true, nil
}

func (r *fakeOTPRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-r.ttl)
	var deleted int64
	for id, rec := range r.records {
		if !rec.CreatedAt.After(cutoff) {
			delete(r.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeOTPRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeResetRepo struct {
	mu      sync.Mutex
	records map[bson.ObjectID]*model.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{records: make(map[bson.ObjectID]*model.PasswordReset)}
}

func (r *fakeResetRepo) Create(_ context.Context, reset *model.PasswordReset) (*model.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reset.ID.IsZero() {
		reset.ID = bson.NewObjectID()
	}
	reset.CreatedAt = time.Now()
	reset.UpdatedAt = reset.CreatedAt
	copied := *reset
	r.records[reset.ID] = &copied
	return reset, nil
}

func (r *fakeResetRepo) FindValid(_ context.Context, email string, role model.Role, token string) (*model.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, rec := range r.records {
		if rec.Email == email && rec.Role == role && rec.Token == token && !rec.Used && rec.ExpiresAt.After(now) {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeResetRepo) Consume(_ context.Context, id bson.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.Used || !rec.ExpiresAt.After(time.Now()) {
		return false, nil
	}
	rec.Used = true
	rec.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeResetRepo) DeleteUnused(_ context.Context, email string, role model.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, rec := range r.records {
		if rec.Email == email && rec.Role == role && !rec.Used {
			delete(r.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeResetRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var deleted int64
	for id, rec := range r.records {
		if !rec.ExpiresAt.After(now) {
			delete(r.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeResetRepo) ListUsed(_ context.Context, limit int64) ([]*model.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var used []*model.PasswordReset
	for _, rec := range r.records {
		if rec.Used {
			copied := *rec
			used = append(used, &copied)
		}
	}
	sort.Slice(used, func(i, j int) bool { return used[i].UpdatedAt.After(used[j].UpdatedAt) })
	if limit > 0 && int64(len(used)) > limit {
		used = used[:limit]
	}
	return used, nil
}

func (r *fakeResetRepo) insert(rec *model.PasswordReset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID.IsZero() {
		rec.ID = bson.NewObjectID()
	}
	r.records[rec.ID] = rec
}

func (r *fakeResetRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []string
	failed bool
}

func (m *fakeMailer) SendHTML(_ []string, _ string, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, htmlBody)
	if m.failed {
		return errors.New("smtp unreachable")
	}
	return nil
}

func (m *fakeMailer) lastBody() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1]
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[bson.ObjectID]*model.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[bson.ObjectID]*model.Student)}
}

func (r *fakeStudentRepo) CreateStudent(_ context.Context, student *model.Student) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if student.ID.IsZero() {
		student.ID = bson.NewObjectID()
	}
	copied := *student
	r.students[student.ID] = &copied
	return student, nil
}

func (r *fakeStudentRepo) GetStudent(_ context.Context, id string) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	student, ok := r.students[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *student
	copied.FeePayments = append([]model.FeePayment(nil), student.FeePayments...)
	return &copied, nil
}

func (r *fakeStudentRepo) ListStudents(_ context.Context, params repository.FilterStudentsParams) ([]*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Student
	for _, student := range r.students {
		if params.StudentID != nil && student.StudentID != *params.StudentID {
			continue
		}
		if params.Email != nil && student.Email != *params.Email {
			continue
		}
		copied := *student
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeStudentRepo) UpdateStudent(_ context.Context, id string, params repository.UpdateStudentParams) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	student, ok := r.students[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if params.RoomID != nil {
		roomID := *params.RoomID
		student.RoomID = &roomID
	}
	if params.FeeStatus != nil {
		student.FeeStatus = *params.FeeStatus
	}
	if params.FeeAmount != nil {
		student.FeeAmount = *params.FeeAmount
	}
	if params.Status != nil {
		student.Status = *params.Status
	}
	copied := *student
	return &copied, nil
}

func (r *fakeStudentRepo) AddFeePayment(_ context.Context, id string, payment model.FeePayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	student, ok := r.students[objectID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	student.FeePayments = append(student.FeePayments, payment)
	return nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[bson.ObjectID]*model.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[bson.ObjectID]*model.Room)}
}

func (r *fakeRoomRepo) CreateRoom(_ context.Context, room *model.Room) (*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room.ID.IsZero() {
		room.ID = bson.NewObjectID()
	}
	copied := *room
	r.rooms[room.ID] = &copied
	return room, nil
}

func (r *fakeRoomRepo) GetRoom(_ context.Context, id string) (*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	room, ok := r.rooms[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *room
	return &copied, nil
}

func (r *fakeRoomRepo) ListRooms(_ context.Context) ([]*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Room
	for _, room := range r.rooms {
		copied := *room
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRoomRepo) ListAvailableRooms(_ context.Context) ([]*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Room
	for _, room := range r.rooms {
		if room.CurrentOccupancy < room.Capacity {
			copied := *room
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRoomRepo) UpdateRoom(_ context.Context, id string, params repository.UpdateRoomParams) (*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	room, ok := r.rooms[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if params.Capacity != nil {
		room.Capacity = *params.Capacity
	}
	if params.Status != nil {
		room.Status = *params.Status
	}
	if params.Rent != nil {
		room.Rent = *params.Rent
	}
	copied := *room
	return &copied, nil
}

func (r *fakeRoomRepo) AddOccupant(_ context.Context, roomID, studentID bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	room.Students = append(room.Students, studentID)
	room.CurrentOccupancy++
	return nil
}

func (r *fakeRoomRepo) RemoveOccupant(_ context.Context, roomID, studentID bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for i, id := range room.Students {
		if id == studentID {
			room.Students = append(room.Students[:i], room.Students[i+1:]...)
			room.CurrentOccupancy--
			break
		}
	}
	return nil
}

type fakeVisitorRepo struct {
	mu       sync.Mutex
	visitors map[bson.ObjectID]*model.Visitor
}

func newFakeVisitorRepo() *fakeVisitorRepo {
	return &fakeVisitorRepo{visitors: make(map[bson.ObjectID]*model.Visitor)}
}

func (r *fakeVisitorRepo) CreateVisitor(_ context.Context, visitor *model.Visitor) (*model.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if visitor.ID.IsZero() {
		visitor.ID = bson.NewObjectID()
	}
	copied := *visitor
	r.visitors[visitor.ID] = &copied
	return visitor, nil
}

func (r *fakeVisitorRepo) GetVisitor(_ context.Context, id string) (*model.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	visitor, ok := r.visitors[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *visitor
	return &copied, nil
}

func (r *fakeVisitorRepo) ListVisitors(_ context.Context) ([]*model.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Visitor
	for _, visitor := range r.visitors {
		copied := *visitor
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeVisitorRepo) ListVisitorsByStudent(_ context.Context, studentID bson.ObjectID) ([]*model.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Visitor
	for _, visitor := range r.visitors {
		if visitor.StudentID == studentID {
			copied := *visitor
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeVisitorRepo) CheckOut(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}
	visitor, ok := r.visitors[objectID]
	if !ok {
		return false, mongo.ErrNoDocuments
	}
	if visitor.Status != model.VisitorStatusCheckedIn {
		return false, nil
	}
	now := time.Now()
	visitor.Status = model.VisitorStatusCheckedOut
	visitor.CheckOutTime = &now
	return true, nil
}

var (
	_ repository.AccountRepository       = (*fakeAccountRepo)(nil)
	_ repository.OTPRepository           = (*fakeOTPRepo)(nil)
	_ repository.PasswordResetRepository = (*fakeResetRepo)(nil)
	_ repository.StudentRepository       = (*fakeStudentRepo)(nil)
	_ repository.RoomRepository         = (*fakeRoomRepo)(nil)
	_ repository.VisitorRepository       = (*fakeVisitorRepo)(nil)
	_ EmailSender                        = (*fakeMailer)(nil)
)
