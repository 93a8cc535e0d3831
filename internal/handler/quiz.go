package handler

import (
	"bytes"
	"io"
	"net/url"
	"time"

	"mcq-checker/internal/domain"
	"mcq-checker/internal/dto"
	"mcq-checker/internal/logger"
	"mcq-checker/internal/middleware"
	"mcq-checker/internal/service"
	"mcq-checker/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PageRenderer renders the quiz page for one request.
type PageRenderer interface {
	Render(w io.Writer, v *dto.ThemeView) error
}

// QuizHandler handles the quiz page and its JSON API
type QuizHandler struct {
	service   service.QuizService
	forget    service.ForgetSignalService
	renderer  PageRenderer
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, forget service.ForgetSignalService, renderer PageRenderer) *QuizHandler {
	return &QuizHandler{
		service:   quizService,
		forget:    forget,
		renderer:  renderer,
		validator: validation.NewValidator(),
	}
}

// Index serves GET / and POST /. A POST carrying delete_answer is answered
// with a redirect and never reaches reconciliation.
func (h *QuizHandler) Index(c *fiber.Ctx) error {
	themeID := c.Query(dto.FieldTheme)

	var form dto.AnswerForm
	if c.Method() == fiber.MethodPost {
		form = dto.ParseAnswerForm(formValues(c))
		if form.IsDelete() {
			return h.redirectAfterDelete(c, form)
		}
		if themeID == "" {
			themeID = form.Theme
		}
	}

	view := h.service.ThemeView(c.UserContext(), form.ReconcileInput(themeID))
	if c.Method() == fiber.MethodGet {
		view.Forget = h.consumeForgetSignal(c, themeID)
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, view); err != nil {
		return domain.NewInternalError("failed to render page", err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *QuizHandler) redirectAfterDelete(c *fiber.Ctx, form dto.AnswerForm) error {
	themeID := form.Theme
	if themeID == "" {
		themeID = c.Query(dto.FieldTheme)
	}

	token, err := h.forget.Issue(themeID, form.DeleteAnswer)
	if err != nil {
		logger.Get().Error("Failed to issue delete signal",
			zap.String("theme", themeID),
			zap.String("question_id", form.DeleteAnswer),
			zap.Error(err),
		)
	} else {
		c.Cookie(&fiber.Cookie{
			Name:     service.ForgetCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(h.forget.TTL() / time.Second),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	logger.Get().Info("Answer delete requested",
		zap.String("theme", themeID),
		zap.String("question_id", form.DeleteAnswer),
	)
	return c.Redirect(themeLocation(themeID), fiber.StatusSeeOther)
}

// consumeForgetSignal reads the delete signal left by a previous redirect.
// A signal for another theme is left for that theme's page.
func (h *QuizHandler) consumeForgetSignal(c *fiber.Ctx, themeID string) []string {
	raw := c.Cookies(service.ForgetCookieName)
	if raw == "" {
		return nil
	}

	claims, err := h.forget.Verify(raw)
	if err != nil {
		logger.Get().Warn("Discarding invalid delete signal", zap.Error(err))
		c.ClearCookie(service.ForgetCookieName)
		return nil
	}
	if claims.Theme != themeID {
		return nil
	}

	c.ClearCookie(service.ForgetCookieName)
	return []string{claims.QuestionID}
}

// GetThemes godoc
// @Summary List themes
// @Description Returns every available theme identifier, sorted
// @Tags themes
// @Produce json
// @Success 200 {object} dto.ThemesResponse
// @Router /themes [get]
func (h *QuizHandler) GetThemes(c *fiber.Ctx) error {
	return c.JSON(h.service.Themes(c.UserContext()))
}

// GetQuestions godoc
// @Summary List questions of a theme
// @Description Returns the questions of a theme in order. Correct letters are not included.
// @Tags themes
// @Produce json
// @Param theme path string true "Theme identifier"
// @Success 200 {object} dto.QuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /themes/{theme}/questions [get]
func (h *QuizHandler) GetQuestions(c *fiber.Ctx) error {
	return c.JSON(h.service.Questions(c.UserContext(), themeParam(c)))
}

// CheckAnswers godoc
// @Summary Reconcile and grade answers
// @Description Merges saved answers with at most one fresh choice. Only the submitted question is graded.
// @Tags answers
// @Accept json
// @Produce json
// @Param theme path string true "Theme identifier"
// @Param request body dto.CheckAnswersRequest true "Saved answers and the fresh choice"
// @Success 200 {object} dto.CheckAnswersResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /themes/{theme}/answers [post]
func (h *QuizHandler) CheckAnswers(c *fiber.Ctx) error {
	themeID := themeParam(c)

	var req dto.CheckAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse answer request", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateAnswerRequest(themeID, req.QuestionID, req.Saved); len(errs) > 0 {
		return errs
	}

	return c.JSON(h.service.CheckAnswers(c.UserContext(), themeID, &req))
}

// themeParam prefers the theme checked by the validation middleware.
func themeParam(c *fiber.Ctx) string {
	if theme, ok := c.Locals(middleware.ValidatedThemeKey).(string); ok {
		return theme
	}
	return c.Params("theme")
}

func themeLocation(themeID string) string {
	if themeID == "" {
		return "/"
	}
	return "/?" + url.Values{dto.FieldTheme: {themeID}}.Encode()
}

// formValues flattens either body encoding the page may post.
func formValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	if form, err := c.MultipartForm(); err == nil {
		for key, vs := range form.Value {
			values[key] = append(values[key], vs...)
		}
		return values
	}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}
