package handlers

import (
	"errors"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/auth"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/form"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/view"
	"github.com/nfrund/learnhub/web/src/templates/pages"
	"github.com/nfrund/learnhub/web/src/templates/partials"
	g "maragu.dev/gomponents"
)

const (
	msgUnexpected = "Something went wrong. Please try again."
	msgLoggedOut  = "You have been logged out."
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	service *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// redirectSignedIn sends an already signed-in user to their home page.
func redirectSignedIn(c echo.Context) (bool, error) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return false, nil
	}
	return true, c.Redirect(http.StatusSeeOther, auth.HomePath(user.Role))
}

// presentFlash routes the first flashed error onto its field. A routed
// message is shown under the field only, not again in the flash area.
func presentFlash(m *form.Model, table form.ErrorTable, flashes view.FlashData) view.FlashData {
	msg := flashes.FirstError()
	if form.Present(m, table, msg) != "" {
		flashes.Error = slices.Delete(slices.Clone(flashes.Error), 0, 1)
	}
	return flashes
}

// postedModel loads the posted form into a model over fields.
func postedModel(c echo.Context, fields []form.Field) (*form.Model, error) {
	params, err := c.FormParams()
	if err != nil {
		return nil, err
	}
	m := form.NewModel(fields)
	m.Load(params)
	return m, nil
}

// RegisterGet renders the registration page. The flashed error is presented
// first, then the values from the failed attempt are restored, then the
// submit state is computed.
func (h *AuthHandler) RegisterGet(c echo.Context) error {
	if done, err := redirectSignedIn(c); done {
		return err
	}
	logger := middleware.FromContext(c.Request().Context())
	store := view.NewFormSession(c)

	m := form.NewModel(form.RegisterFields)
	m.SetValue(form.RoleField, string(domain.RoleStudent))
	flashes := presentFlash(m, form.RegisterErrors, view.GetFlashData(c))

	carrier, err := form.NewCarrier(store, form.KeySignUpInfo, form.RegisterBindings...)
	if err != nil {
		logger.Error("Failed to build sign-up carrier", "error", err)
	} else {
		carrier.Restore(m)
	}
	form.NewWatcher(m, form.RegisterFields, form.RoleField).Evaluate()

	return RenderPage(c, "Register", flashes, pages.Register(m))
}

// RegisterPost creates the account. Failures flash the message, keep the
// non-sensitive values for the next render and redirect back.
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var in auth.RegisterInput
	if err := c.Bind(&in); err != nil {
		view.SetFlashError(c, msgUnexpected)
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	user, err := h.service.Register(c.Request().Context(), in)
	if err != nil {
		var verr *auth.ValidationError
		if errors.As(err, &verr) {
			view.SetFlashError(c, verr.Message)
		} else {
			logger.Error("Error creating user", "error", err)
			view.SetFlashError(c, msgUnexpected)
		}
		h.captureSignUp(c)
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	// Pre-fill the login page with the new address.
	m := form.NewModel(form.LoginFields)
	m.SetValue("form-email", user.Email)
	if vc, err := form.NewValueCarrier(view.NewFormSession(c), form.KeyEmail, "form-email"); err == nil {
		if err := vc.Capture(m); err != nil {
			logger.Warn("Failed to keep email for login", "error", err)
		}
	}

	view.SetFlashSuccess(c, auth.MsgRegistered)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) captureSignUp(c echo.Context) {
	logger := middleware.FromContext(c.Request().Context())
	m, err := postedModel(c, form.RegisterFields)
	if err != nil {
		return
	}
	carrier, err := form.NewCarrier(view.NewFormSession(c), form.KeySignUpInfo, form.RegisterBindings...)
	if err != nil {
		logger.Error("Failed to build sign-up carrier", "error", err)
		return
	}
	if err := carrier.Capture(m); err != nil {
		logger.Warn("Failed to keep sign-up values", "error", err)
	}
}

// RegisterValidate is the htmx endpoint behind the register inputs. It
// returns the submit button in its new state and clears the changed
// field's error slot out of band.
func (h *AuthHandler) RegisterValidate(c echo.Context) error {
	return validateForm(c, form.RegisterFields, form.RoleField, pages.RegisterSubmitID, "Register")
}

// LoginValidate is the htmx endpoint behind the login inputs.
func (h *AuthHandler) LoginValidate(c echo.Context) error {
	return validateForm(c, form.LoginFields, "", pages.LoginSubmitID, "Login")
}

func validateForm(c echo.Context, fields []form.Field, roleField, submitID, label string) error {
	m, err := postedModel(c, fields)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	w := form.NewWatcher(m, fields, roleField)
	changed := c.FormValue("changed")

	nodes := g.Group{}
	switch f, ok := m.Field(changed); {
	case roleField != "" && changed == roleField:
		role := domain.ParseRole(m.Value(roleField))
		w.SetRole(string(role))
		if grade, ok := m.FieldByName("grade"); ok {
			nodes = append(nodes, pages.GradeField(m, grade, role, true))
		}
	case ok:
		w.Changed(f.ID)
		nodes = append(nodes, partials.ErrorSlot(f.ErrorID, "", true))
	default:
		w.Evaluate()
	}
	nodes = append(g.Group{partials.SubmitButton(submitID, label, m.SubmitEnabled())}, nodes...)
	return c.Render(http.StatusOK, "", nodes)
}

// LoginGet renders the login page. Leftover sign-up values are discarded
// and the email from the last attempt is restored.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	if done, err := redirectSignedIn(c); done {
		return err
	}
	store := view.NewFormSession(c)
	form.Discard(store, form.KeySignUpInfo)

	m := form.NewModel(form.LoginFields)
	flashes := presentFlash(m, form.LoginErrors, view.GetFlashData(c))
	if vc, err := form.NewValueCarrier(store, form.KeyEmail, "form-email"); err == nil {
		vc.Restore(m)
	}
	form.NewWatcher(m, form.LoginFields, "").Evaluate()

	return RenderPage(c, "Login", flashes, pages.Login(m))
}

// LoginPost signs the user in and sends them to their home page.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		view.SetFlashError(c, msgUnexpected)
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		var verr *auth.ValidationError
		if errors.As(err, &verr) {
			logger.Info("Sign-in refused", "reason", verr.Err)
			view.SetFlashError(c, verr.Message)
		} else {
			logger.Error("Error signing in", "error", err)
			view.SetFlashError(c, msgUnexpected)
		}
		m := form.NewModel(form.LoginFields)
		m.SetValue("form-email", req.Email)
		if vc, err := form.NewValueCarrier(view.NewFormSession(c), form.KeyEmail, "form-email"); err == nil {
			_ = vc.Capture(m)
		}
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	if err := middleware.StartSession(c, user, req.Remember); err != nil {
		logger.Error("Failed to start session", "error", err)
		view.SetFlashError(c, msgUnexpected)
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	view.SetFlashSuccess(c, auth.MsgLoggedIn)
	return c.Redirect(http.StatusSeeOther, auth.HomePath(user.Role))
}

// LoginHTML keeps the old page address working.
func (h *AuthHandler) LoginHTML(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/login")
}

// Logout ends the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := middleware.EndSession(c); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to end session", "error", err)
	}
	view.SetFlashSuccess(c, msgLoggedOut)
	return c.Redirect(http.StatusSeeOther, "/login")
}
