package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lucidbank/lcbridge/internal/config"
	"github.com/lucidbank/lcbridge/internal/errHandler"
	"github.com/lucidbank/lcbridge/internal/helper"
	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/lucidbank/lcbridge/internal/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOfficerRepo implements OfficerRepository but only mocks the needed methods.
type MockOfficerRepo struct {
	mock.Mock
}

func (m *MockOfficerRepo) Insert(officer *models.Officer) (string, error) {
	return "", nil
}

func (m *MockOfficerRepo) GetOne(id string) (*models.Officer, bool, error) {
	return nil, false, nil
}

func (m *MockOfficerRepo) GetByEmail(email string) (*models.Officer, bool, error) {
	args := m.Called(email)
	return args.Get(0).(*models.Officer), args.Bool(1), args.Error(2)
}

func (m *MockOfficerRepo) SetStatus(id, status string) error {
	return nil
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Insert(app *models.LCApplication) (string, error) {
	return "app-1", nil
}

func (m *MockApplicationRepo) GetOne(id string) (*models.LCApplication, bool, error) {
	return nil, false, nil
}

func (m *MockApplicationRepo) GetByReference(reference string) (*models.LCApplication, bool, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.LCApplication), args.Bool(1), args.Error(2)
}

func (m *MockApplicationRepo) List(status string) ([]models.LCApplication, error) {
	return nil, nil
}

func (m *MockApplicationRepo) UpdateCompliance(app *models.LCApplication) error {
	return nil
}

func (m *MockApplicationRepo) UpdateDecision(app *models.LCApplication, tx *sqlx.Tx) error {
	return nil
}

func (m *MockApplicationRepo) UpdateDraft(id, lcNumber, draftText string, at time.Time) error {
	return nil
}

func (m *MockApplicationRepo) UpdateDraftPDFPath(id, path string) error {
	return nil
}

func (m *MockApplicationRepo) UpdateMT700(id, mt700 string, at time.Time) error {
	return nil
}

func (m *MockApplicationRepo) UpdateStatus(id, status string) error {
	return nil
}

func (m *MockApplicationRepo) AmendColumn(id, column, value string, tx *sqlx.Tx) error {
	return nil
}

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Insert(log *repository.ActivityLog, tx *sqlx.Tx) (string, error) {
	return "log-1", nil
}

func (m *MockActivityRepo) GetAllByEntity(entity, entityID string) ([]repository.ActivityLog, error) {
	return nil, nil
}

// MockDatabase wires the repo mocks behind the Database interface.
type MockDatabase struct {
	OfficerRepo     *MockOfficerRepo
	ApplicationRepo *MockApplicationRepo
	ActivityRepo    *MockActivityRepo
}

func (m *MockDatabase) Officer() repository.OfficerRepository         { return m.OfficerRepo }
func (m *MockDatabase) Application() repository.ApplicationRepository { return m.ApplicationRepo }
func (m *MockDatabase) Activity() repository.ActivityRepository       { return m.ActivityRepo }
func (m *MockDatabase) Presentation() repository.PresentationRepository {
	return nil
}
func (m *MockDatabase) Discrepancy() repository.DiscrepancyRepository { return nil }
func (m *MockDatabase) Amendment() repository.AmendmentRepository     { return nil }
func (m *MockDatabase) Close() error                                  { return nil }
func (m *MockDatabase) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return nil, nil
}

func testRouteHandler(db *MockDatabase) *RouteHandler {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	errorHandler := errHandler.New("", nil, logger)

	baseURL := "http://localhost"
	var wg sync.WaitGroup

	cfg := &config.Config{BaseURL: baseURL}
	cfg.Jwt.SecretKey = "test_secret"

	return NewRouteHandler(&RouteHandler{
		DB:         db,
		ErrHandler: errorHandler,
		Helper:     helper.New(&baseURL, &wg, errorHandler),
		Config:     cfg,
	})
}

func TestHandleAuthLogin_ValidCredentials(t *testing.T) {
	mockOfficerRepo := new(MockOfficerRepo)
	db := &MockDatabase{
		OfficerRepo:  mockOfficerRepo,
		ActivityRepo: new(MockActivityRepo),
	}

	testOfficer := &models.Officer{
		ID:             "123",
		Email:          "officer@example.com",
		HashedPassword: "$2a$10$oiIYEECpY/GRNs9Fi7Yh1.o4Dw2fTD26eu5z48KYgXkMuOiWlSvqG",
		Status:         models.OfficerActiveStatus,
	}

	mockOfficerRepo.On("GetByEmail", "officer@example.com").Return(testOfficer, true, nil)

	h := testRouteHandler(db)

	requestBody, _ := json.Marshal(map[string]string{
		"email":    "officer@example.com",
		"password": "correctpassword",
	})

	req := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()

	h.HandleAuthLogin(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response map[string]any
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	require.NoError(t, err)

	data, ok := response["data"].(map[string]any)
	require.True(t, ok, "Expected response['data'] to be a map")

	require.Contains(t, data, "auth_token")
	require.Contains(t, data, "token_expires_at")
	require.NotEmpty(t, data["auth_token"])

	mockOfficerRepo.AssertExpectations(t)
}

func TestHandleAuthLogin_WrongPassword(t *testing.T) {
	mockOfficerRepo := new(MockOfficerRepo)
	db := &MockDatabase{
		OfficerRepo:  mockOfficerRepo,
		ActivityRepo: new(MockActivityRepo),
	}

	testOfficer := &models.Officer{
		ID:             "123",
		Email:          "officer@example.com",
		HashedPassword: "$2a$10$oiIYEECpY/GRNs9Fi7Yh1.o4Dw2fTD26eu5z48KYgXkMuOiWlSvqG",
		Status:         models.OfficerActiveStatus,
	}

	mockOfficerRepo.On("GetByEmail", "officer@example.com").Return(testOfficer, true, nil)

	h := testRouteHandler(db)

	requestBody, _ := json.Marshal(map[string]string{
		"email":    "officer@example.com",
		"password": "not-the-password",
	})

	req := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(requestBody))
	rr := httptest.NewRecorder()

	h.HandleAuthLogin(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandleApplicationValidate_ReportsMissingFields(t *testing.T) {
	mockAppRepo := new(MockApplicationRepo)
	db := &MockDatabase{
		ApplicationRepo: mockAppRepo,
		ActivityRepo:    new(MockActivityRepo),
	}

	app := &models.LCApplication{
		Reference:        "LC-2026-00042",
		ApplicantName:    "Sunrise Textiles Pvt Ltd",
		IssuingBank:      "Lucid Bank Ltd",
		Currency:         "USD",
		Amount:           100000,
		ExpiryDate:       "2026-06-30",
		PortOfLoading:    "Shanghai",
		PortOfDischarge:  "Nhava Sheva",
		GoodsDescription: "Cotton fabric",
		PaymentTerms:     "Sight",
		// BeneficiaryName deliberately blank
	}

	mockAppRepo.On("GetByReference", "LC-2026-00042").Return(app, true, nil)

	h := testRouteHandler(db)

	req := httptest.NewRequest("GET", "/applications/LC-2026-00042/validate", nil)
	req.SetPathValue("reference", "LC-2026-00042")
	rr := httptest.NewRecorder()

	h.HandleApplicationValidate(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Beneficiary Name")

	mockAppRepo.AssertExpectations(t)
}

func TestHandleApplicationGet_UnknownReference(t *testing.T) {
	mockAppRepo := new(MockApplicationRepo)
	db := &MockDatabase{
		ApplicationRepo: mockAppRepo,
		ActivityRepo:    new(MockActivityRepo),
	}

	mockAppRepo.On("GetByReference", "LC-9999-00000").Return(nil, false, nil)

	h := testRouteHandler(db)

	req := httptest.NewRequest("GET", "/applications/LC-9999-00000", nil)
	req.SetPathValue("reference", "LC-9999-00000")
	rr := httptest.NewRecorder()

	h.HandleApplicationGet(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleApplicationCreate_DuplicateReference(t *testing.T) {
	mockAppRepo := new(MockApplicationRepo)
	db := &MockDatabase{
		ApplicationRepo: mockAppRepo,
		ActivityRepo:    new(MockActivityRepo),
	}

	existing := &models.LCApplication{Reference: "LC-2026-00042"}
	mockAppRepo.On("GetByReference", "LC-2026-00042").Return(existing, true, nil)

	h := testRouteHandler(db)

	requestBody, _ := json.Marshal(map[string]any{
		"reference":        "LC-2026-00042",
		"applicant_name":   "Sunrise Textiles Pvt Ltd",
		"beneficiary_name": "Hangzhou Weaving Co Ltd",
	})

	req := httptest.NewRequest("POST", "/applications", bytes.NewBuffer(requestBody))
	rr := httptest.NewRecorder()

	h.HandleApplicationCreate(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
}
