// internal/app/features/account/register.go
package account

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/inputval"
	"github.com/dalemusser/studyhub/internal/app/system/passwords"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.uber.org/zap"
)

type registerInput struct {
	Name          string `json:"name" validate:"required,max=100" label:"Name"`
	Email         string `json:"email" validate:"required,email" label:"Email"`
	ContactNumber string `json:"contactNumber" validate:"max=30" label:"Contact number"`
	Password      string `json:"password" validate:"required,min=6" label:"Password"`
}

// HandleRegister handles POST /register. New accounts always get the user role.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if !apierrors.DecodeJSON(w, r, &in) {
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}

	hash, err := passwords.Hash(in.Password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Registration failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).Create(ctx, models.User{
		Name:          in.Name,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
		PasswordHash:  hash,
		Role:          models.RoleUser,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		apierrors.BadRequest(w, "User already exists")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Registration failed", err)
		return
	}

	h.Log.Info("user registered", zap.String("user_id", u.ID.Hex()))
	h.Audit.UserRegistered(ctx, r, u.ID, u.Email)
	apierrors.Message(w, http.StatusCreated, "User registered successfully")
}
