package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/lucidbank/lcbridge/internal/repository"
	"github.com/lucidbank/lcbridge/internal/request"
	"github.com/lucidbank/lcbridge/internal/response"
	"github.com/lucidbank/lcbridge/internal/validator"

	"github.com/cradoe/gopass"
	"github.com/pascaldekloe/jwt"
)

// Officer accounts are provisioned by the desk head; this endpoint does the
// basic input validation, hashes the password and emails a welcome note.
func (h *RouteHandler) HandleAuthRegister(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email     string              `json:"email"`
		Password  string              `json:"password"`
		FirstName string              `json:"first_name"`
		LastName  string              `json:"last_name"`
		Role      string              `json:"role"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	// password strength gate before anything else
	_, errs := gopass.Validate(input.Password)
	if errs != nil {
		h.ErrHandler.FailedValidation(w, r, errs)
		return
	}

	_, found, err := h.DB.Officer().GetByEmail(input.Email)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	input.Validator.Check(validator.NotBlank(input.Email), "Email is required")
	input.Validator.Check(validator.IsEmail(input.Email), "Must be a valid email address")
	input.Validator.Check(!found, "Email is already in use")

	input.Validator.Check(validator.NotBlank(input.FirstName), "First name is required")
	input.Validator.Check(validator.NotBlank(input.LastName), "Last name is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	hashedPassword, err := gopass.Hash(input.Password)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	role := input.Role
	if role == "" {
		role = "trade-finance-officer"
	}

	officer := &models.Officer{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Role:           role,
		HashedPassword: hashedPassword,
	}

	officerID, err := h.DB.Officer().Insert(officer)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	h.Helper.BackgroundTask(func() error {
		_, err := h.DB.Activity().Insert(&repository.ActivityLog{
			OfficerID:   officerID,
			Entity:      repository.ActivityLogOfficerEntity,
			EntityId:    officerID,
			Description: ActivityLogRegistrationDescription,
		}, nil)

		if err != nil {
			log.Printf("Error logging officer registration: %v", err)
			return err
		}

		return nil
	})

	h.Helper.BackgroundTask(func() error {
		emailData := h.Helper.NewEmailData()
		emailData["FirstName"] = officer.FirstName

		err := h.Mailer.Send(officer.Email, emailData, "welcome-officer.tmpl")
		if err != nil {
			log.Printf("Error sending welcome email: %v", err)
			return err
		}

		return nil
	})

	message := "Account created successfully"

	err = response.JSONCreatedResponse(w, nil, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email     string              `json:"email"`
		Password  string              `json:"password"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	officer, found, err := h.DB.Officer().GetByEmail(input.Email)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	input.Validator.Check(validator.NotBlank(input.Email), "Email is required")
	input.Validator.Check(validator.IsEmail(input.Email), "Must be a valid email address")
	input.Validator.Check(found, "Incorrect email/password")

	if found {
		if officer.Status == models.OfficerLockedStatus {
			h.ErrHandler.FailedValidation(w, r, []string{"Account has been locked. Please contact support"})
			return
		}

		passwordMatches, err := gopass.ComparePasswordAndHash(input.Password, officer.HashedPassword)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
			return
		}

		input.Validator.Check(validator.NotBlank(input.Password), "Password is required")
		input.Validator.Check(passwordMatches, "Incorrect email/password")

		if !passwordMatches {
			h.Helper.BackgroundTask(func() error {
				_, err := h.DB.Activity().Insert(&repository.ActivityLog{
					OfficerID:   officer.ID,
					Entity:      repository.ActivityLogOfficerEntity,
					EntityId:    officer.ID,
					Description: ActivityLogFailedLoginDescription,
				}, nil)

				if err != nil {
					log.Printf("Error logging failed login: %v", err)
					return err
				}

				return nil
			})
		}
	}

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	var claims jwt.Claims
	claims.Subject = officer.ID

	expiry := time.Now().Add(24 * time.Hour)
	claims.Issued = jwt.NewNumericTime(time.Now())
	claims.NotBefore = jwt.NewNumericTime(time.Now())
	claims.Expires = jwt.NewNumericTime(expiry)

	claims.Issuer = h.Config.BaseURL
	claims.Audiences = []string{h.Config.BaseURL}

	jwtBytes, err := claims.HMACSign(jwt.HS256, []byte(h.Config.Jwt.SecretKey))
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := map[string]any{
		"AuthToken":      string(jwtBytes),
		"TokenExpiresAt": expiry.Format(time.RFC3339),
	}

	err = response.JSONOkResponse(w, data, "Login successful", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
