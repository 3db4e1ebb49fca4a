package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/snackswap/snackswap/internal/dbx"
	"github.com/snackswap/snackswap/internal/server/models"
	foodsrepo "github.com/snackswap/snackswap/internal/server/repositories/foods"
	messagesrepo "github.com/snackswap/snackswap/internal/server/repositories/messages"
	refreshtokensrepo "github.com/snackswap/snackswap/internal/server/repositories/refreshtokens"
	swapsrepo "github.com/snackswap/snackswap/internal/server/repositories/swaps"
	usersrepo "github.com/snackswap/snackswap/internal/server/repositories/users"
	verificationsrepo "github.com/snackswap/snackswap/internal/server/repositories/verifications"
)

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byID    *models.User
	byIDErr error

	byUsername    *models.User
	byUsernameErr error

	byEmail    *models.User
	byEmailErr error

	usernameTaken bool
	existsErr     error

	lastPasswordHash string
	updatePassErr    error

	profileUpd models.ProfileUpdate
	prefsUpd   models.NotificationPrefs
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-new"
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.byID, f.byIDErr
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.byUsername, f.byUsernameErr
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.byEmail, f.byEmailErr
}

func (f *fakeUsersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return f.usernameTaken, f.existsErr
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) error {
	f.profileUpd = upd
	return nil
}

func (f *fakeUsersRepo) UpdatePreferences(ctx context.Context, id string, prefs models.NotificationPrefs) error {
	f.prefsUpd = prefs
	return nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id string, hash string) error {
	f.lastPasswordHash = hash
	return f.updatePassErr
}

type fakeFoodsRepo struct {
	createOut *models.Food
	createErr error

	byID    *models.Food
	byIDErr error

	listOut []*models.FoodWithOwner
	listErr error

	lastFilter foodsrepo.Filter
	updateErr  error
	deleteErr  error
	deleted    []string
}

func (f *fakeFoodsRepo) Create(ctx context.Context, food *models.Food) (*models.Food, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	food.ID = "f-new"
	food.Status = models.FoodStatusAvailable
	return food, nil
}

func (f *fakeFoodsRepo) GetByID(ctx context.Context, id string) (*models.Food, error) {
	return f.byID, f.byIDErr
}

func (f *fakeFoodsRepo) ListAvailable(ctx context.Context, flt foodsrepo.Filter) ([]*models.FoodWithOwner, error) {
	f.lastFilter = flt
	return f.listOut, f.listErr
}

func (f *fakeFoodsRepo) Update(ctx context.Context, id string, upd models.FoodUpdate) error {
	return f.updateErr
}

func (f *fakeFoodsRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type fakeSwapsRepo struct {
	createOut *models.Swap
	createErr error

	byID    *models.Swap
	byIDErr error

	lastStatus  string
	updateErr   error
	receivedOut []*models.SwapWithDetails
	sentOut     []*models.SwapWithDetails
}

func (f *fakeSwapsRepo) Create(ctx context.Context, swap *models.Swap) (*models.Swap, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	swap.ID = "s-new"
	swap.Status = models.SwapStatusPending
	return swap, nil
}

func (f *fakeSwapsRepo) GetByID(ctx context.Context, id string) (*models.Swap, error) {
	return f.byID, f.byIDErr
}

func (f *fakeSwapsRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	f.lastStatus = status
	return f.updateErr
}

func (f *fakeSwapsRepo) ListReceived(ctx context.Context, userID string) ([]*models.SwapWithDetails, error) {
	return f.receivedOut, nil
}

func (f *fakeSwapsRepo) ListSent(ctx context.Context, userID string) ([]*models.SwapWithDetails, error) {
	return f.sentOut, nil
}

type fakeMessagesRepo struct {
	created   []*models.Message
	createErr error

	listOut []*models.Message
	listErr error

	markedSwap   string
	markedReader string
	markReadN    int64
	markReadErr  error

	unread    int
	unreadErr error
}

func (f *fakeMessagesRepo) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	msg.ID = "m-new"
	f.created = append(f.created, msg)
	return msg, nil
}

func (f *fakeMessagesRepo) ListBySwap(ctx context.Context, swapID string) ([]*models.Message, error) {
	return f.listOut, f.listErr
}

func (f *fakeMessagesRepo) MarkRead(ctx context.Context, swapID string, readerID string) (int64, error) {
	f.markedSwap, f.markedReader = swapID, readerID
	return f.markReadN, f.markReadErr
}

func (f *fakeMessagesRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	return f.unread, f.unreadErr
}

type fakeVerificationsRepo struct {
	emailCodes   map[string]string
	emailCodeErr error
	findCodeErr  error
	deletedFor   []string

	resetOTP     *models.ResetOTP
	findOTPErr   error
	verifiedIDs  []string
	verifiedOut  *models.ResetOTP
	verifiedErr  error
	deletedOTPID string
}

func (f *fakeVerificationsRepo) CreateEmailCode(ctx context.Context, email, code string, validity time.Duration) error {
	if f.emailCodes == nil {
		f.emailCodes = map[string]string{}
	}
	f.emailCodes[email] = code
	return f.emailCodeErr
}

func (f *fakeVerificationsRepo) FindEmailCode(ctx context.Context, email, code string) (*models.VerificationCode, error) {
	if f.findCodeErr != nil {
		return nil, f.findCodeErr
	}
	return &models.VerificationCode{ID: "c-1", Email: email, Code: code}, nil
}

func (f *fakeVerificationsRepo) DeleteEmailCodes(ctx context.Context, email string) error {
	f.deletedFor = append(f.deletedFor, email)
	return nil
}

func (f *fakeVerificationsRepo) CreateResetOTP(ctx context.Context, email, otp string, validity time.Duration) error {
	f.resetOTP = &models.ResetOTP{ID: "o-1", Email: email, OTP: otp}
	return nil
}

func (f *fakeVerificationsRepo) FindResetOTP(ctx context.Context, email, otp string) (*models.ResetOTP, error) {
	if f.findOTPErr != nil {
		return nil, f.findOTPErr
	}
	return f.resetOTP, nil
}

func (f *fakeVerificationsRepo) MarkResetOTPVerified(ctx context.Context, id string) error {
	f.verifiedIDs = append(f.verifiedIDs, id)
	return nil
}

func (f *fakeVerificationsRepo) FindVerifiedResetOTP(ctx context.Context, email string) (*models.ResetOTP, error) {
	if f.verifiedErr != nil {
		return nil, f.verifiedErr
	}
	return f.verifiedOut, nil
}

func (f *fakeVerificationsRepo) DeleteResetOTP(ctx context.Context, id string) error {
	f.deletedOTPID = id
	return nil
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error
	deleted   []string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return f.delErr
}

// --- fake repomanager ---

type fakeRepoManager struct {
	u  *fakeUsersRepo
	f  *fakeFoodsRepo
	s  *fakeSwapsRepo
	m  *fakeMessagesRepo
	v  *fakeVerificationsRepo
	rt *fakeRefreshRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u:  &fakeUsersRepo{},
		f:  &fakeFoodsRepo{},
		s:  &fakeSwapsRepo{},
		m:  &fakeMessagesRepo{},
		v:  &fakeVerificationsRepo{},
		rt: &fakeRefreshRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Foods(db dbx.DBTX) foodsrepo.Repository       { return m.f }
func (m *fakeRepoManager) Swaps(db dbx.DBTX) swapsrepo.Repository       { return m.s }
func (m *fakeRepoManager) Messages(db dbx.DBTX) messagesrepo.Repository { return m.m }
func (m *fakeRepoManager) Verifications(db dbx.DBTX) verificationsrepo.Repository {
	return m.v
}
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.rt
}

// --- fake email sender and notifier ---

type fakeSender struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to       string
	template string
	code     string
}

func (f *fakeSender) SendCode(ctx context.Context, to, template, code string) error {
	f.sent = append(f.sent, sentMail{to: to, template: template, code: code})
	return f.err
}

type fakeNotifier struct {
	published []publishedEvent
}

type publishedEvent struct {
	userID string
	event  any
}

func (f *fakeNotifier) Publish(userID string, event any) {
	f.published = append(f.published, publishedEvent{userID: userID, event: event})
}
